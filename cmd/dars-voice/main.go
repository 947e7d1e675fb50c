package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"

	"github.com/Gassandrid/DARS/internal/agent"
	"github.com/Gassandrid/DARS/internal/audio"
	"github.com/Gassandrid/DARS/internal/ipc"
	"github.com/Gassandrid/DARS/internal/transcript"
	"github.com/Gassandrid/DARS/internal/tts"
	"github.com/Gassandrid/DARS/pkg/audioconv"
	"github.com/Gassandrid/DARS/pkg/stt"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

const greeting = "DARS online. How can I help?"

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	proxyAddr := cli.StringP("proxy", "p", "", "Socks proxy address for the OpenAI API")
	whisperModel := cli.StringP("whisper", "w", "third_party/whisper.cpp/models/ggml-base.en.bin", "Whisper model path")
	audioFile := cli.StringP("file", "f", "", "Transcribe an audio file instead of the mic")
	chime := cli.String("chime", "", "Acknowledgment sound played before listening")
	pushToTalk := cli.Bool("push-to-talk", false, "Record between two darsctl triggers instead of auto endpointing")
	streamTTS := cli.Bool("stream-tts", false, "Use the websocket streaming TTS endpoint")
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
	elevenKey := os.Getenv("ELEVENLABS_API_KEY")
	if elevenKey == "" {
		log.Error("ELEVENLABS_API_KEY not set")
		os.Exit(1)
	}

	dars, err := agent.New(agent.Config{
		APIKey:    apiKey,
		Model:     openai.ChatModel(os.Getenv("DARS_MODEL")),
		ProxyAddr: *proxyAddr,
	})
	if err != nil {
		log.Error("Failed to init agent", "err", err)
		os.Exit(1)
	}

	voice, err := tts.NewClient(tts.Config{APIKey: elevenKey})
	if err != nil {
		log.Error("Failed to init voice", "err", err)
		os.Exit(1)
	}

	whisper, err := stt.NewTranscriber(*whisperModel)
	if err != nil {
		log.Error("Failed to init whisper", "err", err)
		os.Exit(1)
	}
	defer whisper.Close()

	s := &session{
		dars:      dars,
		voice:     voice,
		whisper:   whisper,
		rec:       audio.NewRecorder(),
		ducker:    audio.NewDucker([]string{"DARS"}, 20),
		chime:     *chime,
		streamTTS: *streamTTS,
	}

	if *audioFile != "" {
		s.runFile(*audioFile)
		return
	}

	if err := s.rec.Init(); err != nil {
		log.Error("Failed to init audio", "err", err)
		os.Exit(1)
	}
	defer s.rec.Close()

	log.Info("Boot up - successful")
	s.speak(greeting)

	if *pushToTalk {
		s.runPushToTalk()
		return
	}
	s.runLoop()
}

type session struct {
	dars      *agent.Agent
	voice     *tts.Client
	whisper   *stt.Transcriber
	rec       *audio.Recorder
	ducker    *audio.Ducker
	chime     string
	streamTTS bool
}

// runLoop is the hands-free mode: endpointed capture, one turn per
// utterance, spoken quit/exit ends the session.
func (s *session) runLoop() {
	for {
		s.ack()

		pcm, err := s.rec.RecordAuto()
		if err != nil {
			log.Error("Failed to record", "err", err)
			continue
		}
		if len(pcm) == 0 {
			continue
		}

		text, ok := s.transcribe(pcm)
		if !ok {
			continue
		}

		switch strings.ToLower(strings.TrimSpace(text)) {
		case "quit", "exit", "quit.", "exit.":
			s.speak("Going offline. Goodbye.")
			return
		}

		s.turn(text)
	}
}

// runPushToTalk records between two darsctl triggers.
func (s *session) runPushToTalk() {
	trigger := make(chan struct{}, 1)
	quit := make(chan struct{})

	err := ipc.StartServer(func(msg ipc.ControlMessage) {
		switch msg.Cmd {
		case ipc.CmdTrigger:
			select {
			case trigger <- struct{}{}:
			default:
			}
		case ipc.CmdQuit:
			close(quit)
		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
		}
	})
	if err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}

	log.Info("Push-to-talk ready", "socket", ipc.SocketPath)

	for {
		select {
		case <-quit:
			return
		case <-trigger:
		}

		s.ack()
		log.Info("Recording until next trigger")

		stop := make(chan struct{})
		go func() {
			select {
			case <-trigger:
			case <-quit:
			}
			close(stop)
		}()

		pcm, err := s.rec.RecordUntil(stop, 30*time.Second)
		if err != nil {
			log.Error("Failed to record", "err", err)
			continue
		}

		if text, ok := s.transcribe(pcm); ok {
			s.turn(text)
		}
	}
}

// runFile transcribes an audio file and runs the result as one turn.
func (s *session) runFile(path string) {
	pcm, err := audioconv.ConvertFile(path, audioconv.Options{})
	if err != nil {
		log.Error("Failed to decode audio file", "path", path, "err", err)
		os.Exit(1)
	}

	if text, ok := s.transcribe(pcm); ok {
		s.turn(text)
	}
}

func (s *session) transcribe(pcm []float32) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	res, err := s.whisper.TranscribePCM(ctx, pcm, stt.Options{Language: "auto"})
	if err != nil {
		log.Error("Failed to transcribe", "err", err)
		return "", false
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		return "", false
	}

	log.Info("Transcribed", "text", text, "lang", res.Language)
	return text, true
}

func (s *session) turn(text string) {
	natural, function, err := s.dars.ProcessMessage(context.Background(), text)
	if err != nil {
		log.Error("Turn failed", "err", err)
		s.speak(transcript.Apology)
		return
	}

	if function != "" {
		log.Info("Function", "output", function)
	}
	s.speak(natural)
}

func (s *session) speak(text string) {
	ctx := context.Background()

	if err := s.ducker.Duck(ctx, 0.3, 150*time.Millisecond); err != nil {
		log.Debug("Duck failed", "err", err)
	}
	defer func() {
		if err := s.ducker.Unduck(ctx, 150*time.Millisecond); err != nil {
			log.Debug("Unduck failed", "err", err)
		}
	}()

	speak := s.voice.Speak
	if s.streamTTS {
		speak = s.voice.StreamSpeak
	}
	if err := speak(ctx, text); err != nil {
		log.Error("Failed to voice out", "err", err)
	}
}

func (s *session) ack() {
	if s.chime == "" {
		return
	}
	if err := audio.PlayFile(s.chime); err != nil {
		log.Warn("Failed to play chime", "err", err)
	}
}
