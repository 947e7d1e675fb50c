package agent

import (
	"context"
	"fmt"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"

	"github.com/Gassandrid/DARS/internal/tools"
	"github.com/Gassandrid/DARS/internal/transcript"
)

// A turn allows at most this many completion rounds, so a misbehaving
// model cannot loop on tool calls forever.
const maxToolRounds = 4

// runTurn drives one chat-completion exchange, executing tool calls and
// capturing the whole thing as a raw transcript for the partitioner.
func (a *Agent) runTurn(ctx context.Context, message string) (string, error) {
	col := transcript.NewCollector()
	col.User(message)

	a.history = append(a.history, openai.UserMessage(message))

	params := openai.ChatCompletionNewParams{
		Model:               a.cfg.Model,
		Temperature:         openai.Float(a.cfg.Temperature),
		MaxCompletionTokens: openai.Int(a.cfg.MaxTokens),
		Tools:               tools.Definitions(),
	}
	params.Messages = append(params.Messages,
		openai.SystemMessage(a.systemPrompt()))
	params.Messages = append(params.Messages, a.history...)

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no choices in response")
		}

		msg := resp.Choices[0].Message
		col.Stats(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

		if len(msg.ToolCalls) == 0 {
			if msg.Content != "" {
				col.Assistant(msg.Content)
				a.history = append(a.history, openai.AssistantMessage(msg.Content))
			}
			return col.String(), nil
		}

		assistant := msg.ToParam()
		params.Messages = append(params.Messages, assistant)
		a.history = append(a.history, assistant)

		for _, tc := range msg.ToolCalls {
			out := a.execToolCall(tc.Function.Name, tc.Function.Arguments)
			col.Tool(out)

			result := openai.ToolMessage(out, tc.ID)
			params.Messages = append(params.Messages, result)
			a.history = append(a.history, result)
		}
	}

	log.Warn("Turn exceeded tool round limit", "rounds", maxToolRounds)
	return col.String(), nil
}

func (a *Agent) execToolCall(name, args string) string {
	call, err := tools.Decode(name, args)
	if err != nil {
		log.Warn("Rejected tool call", "tool", name, "err", err)
		return fmt.Sprintf("FUNC: Error: %v\nSorry, I couldn't complete that action.", err)
	}

	log.Debug("Dispatching tool call", "tool", name)
	return a.registry.Dispatch(call)
}
