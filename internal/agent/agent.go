// Package agent runs the DARS dialogue: direct-command shortcuts first,
// otherwise a chat-completion turn whose captured transcript is partitioned
// into tool output and conversational reply.
package agent

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/Gassandrid/DARS/internal/humor"
	"github.com/Gassandrid/DARS/internal/proxy"
	"github.com/Gassandrid/DARS/internal/todo"
	"github.com/Gassandrid/DARS/internal/tools"
	"github.com/Gassandrid/DARS/internal/transcript"
	"github.com/Gassandrid/DARS/internal/vault"
)

type Agent struct {
	client   openai.Client
	cfg      Config
	humor    *humor.Level
	registry *tools.Registry
	history  []openai.ChatCompletionMessageParamUnion
}

func New(cfg Config) (*Agent, error) {
	cfg.applyDefaults()

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not provided")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.ProxyAddr != "" {
		httpClient, err := proxy.NewSocksClient(cfg.ProxyAddr)
		if err != nil {
			return nil, fmt.Errorf("dial socks proxy %s: %w", cfg.ProxyAddr, err)
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	if cfg.VaultDir == "" {
		dir, err := vault.DefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.VaultDir = dir
	}
	if cfg.TodoDir == "" {
		dir, err := todo.DefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.TodoDir = dir
	}

	notes, err := vault.NewStore(cfg.VaultDir)
	if err != nil {
		return nil, err
	}
	todos, err := todo.NewStore(cfg.TodoDir)
	if err != nil {
		return nil, err
	}

	lvl := humor.NewLevel()
	return &Agent{
		client: openai.NewClient(opts...),
		cfg:    cfg,
		humor:  lvl,
		registry: &tools.Registry{
			Humor: lvl,
			Notes: notes,
			Todos: todos,
		},
	}, nil
}

// HumorLevel exposes the session's current setting.
func (a *Agent) HumorLevel() int { return a.humor.Value() }

var (
	numberRe     = regexp.MustCompile(`-?\d+`)
	changeVerbs  = []string{"set", "change", "adjust"}
	queryMarkers = []string{"level", "setting", "what", "how"}
)

// ProcessMessage handles one turn and returns the natural-language reply
// plus the function output, empty when no side effect occurred.
func (a *Agent) ProcessMessage(ctx context.Context, message string) (natural, function string, err error) {
	lowerMsg := strings.ToLower(message)

	if containsAny(lowerMsg, changeVerbs) && strings.Contains(lowerMsg, "humor") {
		if num := numberRe.FindString(message); num != "" {
			return a.setHumorDirect(num)
		}
	}

	if strings.Contains(lowerMsg, "humor") && containsAny(lowerMsg, queryMarkers) {
		return fmt.Sprintf("My humor level is currently set to %d/100, making me %s.",
			a.humor.Value(), a.humor.Tier()), "", nil
	}

	raw, err := a.runTurn(ctx, message)
	if err != nil {
		return "", "", err
	}

	natural, function, ok := transcript.Parse(transcript.Partition(raw))
	if !ok {
		// Delimiter parse found no tool output; try the side-effect table.
		if n, f, matched := transcript.ExtractSideEffect(natural); matched {
			return n, f, nil
		}
	}
	return natural, function, nil
}

// setHumorDirect bypasses the model entirely for "set humor to N".
func (a *Agent) setHumorDirect(num string) (string, string, error) {
	level, err := strconv.Atoi(num)
	if err != nil {
		return "I couldn't understand the humor level value. Please provide a number between 0 and 100.", "", nil
	}
	if err := a.humor.Set(level); err != nil {
		return "Please provide a humor level between 0 and 100.", "", nil
	}
	return fmt.Sprintf("I've adjusted my personality to be %s. You should notice a difference in how I communicate now.", a.humor.Tier()),
		fmt.Sprintf("Humor level changed to: %d/100", level), nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
