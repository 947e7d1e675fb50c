package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"

	"github.com/Gassandrid/DARS/internal/agent"
	"github.com/Gassandrid/DARS/internal/transcript"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	proxyAddr := cli.StringP("proxy", "p", "", "Socks proxy address for the OpenAI API")
	model := cli.StringP("model", "m", "", "Chat model override")
	vaultDir := cli.String("vault", "", "Note vault directory")
	todoDir := cli.String("todos", "", "Todo directory")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	godotenv.Load(*envFile)
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Error("OPENAI_API_KEY not set")
		os.Exit(1)
	}

	dars, err := agent.New(agent.Config{
		APIKey:    apiKey,
		Model:     openai.ChatModel(*model),
		ProxyAddr: *proxyAddr,
		VaultDir:  *vaultDir,
		TodoDir:   *todoDir,
	})
	if err != nil {
		log.Error("Failed to init agent", "err", err)
		os.Exit(1)
	}

	log.Info("Boot up - successful")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "quit", "exit":
			return
		}

		natural, function, err := dars.ProcessMessage(context.Background(), input)
		if err != nil {
			log.Error("Turn failed", "err", err)
			fmt.Println("DARS says:", transcript.Apology)
			continue
		}

		if function != "" {
			fmt.Println("Function:", function)
		}
		if natural != "" {
			fmt.Println("DARS says:", natural)
		}
	}
}
