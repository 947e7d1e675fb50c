package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Gassandrid/DARS/internal/audio"
)

type streamFrame struct {
	Text                 string `json:"text"`
	XIAPIKey             string `json:"xi_api_key,omitempty"`
	TryTriggerGeneration bool   `json:"try_trigger_generation,omitempty"`
}

type streamChunk struct {
	Audio   string `json:"audio"`
	IsFinal bool   `json:"isFinal"`
}

// StreamSpeak synthesizes over the websocket stream-input endpoint and
// plays the result. Audio arrives as base64 chunks; playback starts once
// the final chunk lands, so the audible behavior matches Speak.
func (c *Client) StreamSpeak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s/stream-input?model_id=%s",
		wsBase(c.cfg.BaseURL), c.cfg.VoiceID, c.cfg.ModelID)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial stream-input: %w", err)
	}
	defer conn.Close()

	// Handshake frame carries the key, then the text, then an empty text
	// frame flushes and closes the generation.
	frames := []streamFrame{
		{Text: " ", XIAPIKey: c.cfg.APIKey},
		{Text: text + " ", TryTriggerGeneration: true},
		{Text: ""},
	}
	for _, f := range frames {
		if err := conn.WriteJSON(f); err != nil {
			return fmt.Errorf("write stream frame: %w", err)
		}
	}

	var mp3 []byte
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				break
			}
			return fmt.Errorf("read stream chunk: %w", err)
		}

		var chunk streamChunk
		if err := json.Unmarshal(msg, &chunk); err != nil {
			return fmt.Errorf("decode stream chunk: %w", err)
		}
		if chunk.Audio != "" {
			data, err := base64.StdEncoding.DecodeString(chunk.Audio)
			if err != nil {
				return fmt.Errorf("decode audio chunk: %w", err)
			}
			mp3 = append(mp3, data...)
		}
		if chunk.IsFinal {
			break
		}
	}

	if len(mp3) == 0 {
		return fmt.Errorf("stream produced no audio")
	}
	return audio.PlayMP3(mp3)
}

func wsBase(httpBase string) string {
	switch {
	case strings.HasPrefix(httpBase, "https://"):
		return "wss://" + strings.TrimPrefix(httpBase, "https://")
	case strings.HasPrefix(httpBase, "http://"):
		return "ws://" + strings.TrimPrefix(httpBase, "http://")
	}
	return httpBase
}
