// Package tts speaks through the ElevenLabs API: text in, mp3 out, played
// on the local speaker.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Gassandrid/DARS/internal/audio"
)

const (
	DefaultVoiceID = "VuHE5LKSRPThk7ENDoDX"
	DefaultModelID = "eleven_multilingual_v2"

	defaultBaseURL = "https://api.elevenlabs.io"
)

type Config struct {
	APIKey  string
	VoiceID string
	ModelID string
	BaseURL string
	HTTP    *http.Client
}

type Client struct {
	cfg Config
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY not provided")
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoiceID
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelID
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTP == nil {
		cfg.HTTP = http.DefaultClient
	}
	return &Client{cfg: cfg}, nil
}

type convertRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Convert synthesizes text and returns the mp3 bytes.
func (c *Client) Convert(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(convertRequest{Text: text, ModelID: c.cfg.ModelID})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.cfg.BaseURL, c.cfg.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.cfg.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text-to-speech request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("text-to-speech: status %d: %s", resp.StatusCode, msg)
	}

	return io.ReadAll(resp.Body)
}

// Speak synthesizes and plays text, blocking until playback finishes.
// Empty text is a no-op.
func (c *Client) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	data, err := c.Convert(ctx, text)
	if err != nil {
		return err
	}
	return audio.PlayMP3(data)
}
