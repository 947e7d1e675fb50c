package agent

import (
	"fmt"
	"time"

	openai "github.com/openai/openai-go/v3"
)

type Config struct {
	APIKey      string
	Model       openai.ChatModel
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
	ProxyAddr   string // optional SOCKS5 address for the API client
	VaultDir    string
	TodoDir     string
}

func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = openai.ChatModelGPT4o
	}
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 100
	}
	if c.Timeout == 0 {
		c.Timeout = 45 * time.Second
	}
}

const personaPrompt = `You are DARS, Dormitory Automated Residential System.
You have the personality of TARS from Interstellar,
but your job is to manage dormitory tasks, from physical activations to a journaling system.

IMPORTANT INSTRUCTIONS:
1. When a user requests to change the humor level to a specific number, ALWAYS use the adjust_humor function.
   Example: If user says "set humor to 75", use the adjust_humor function with humor_level=75.

2. When asked about current humor level (without a change request), respond with the current numerical setting.

3. When using function calls (like changing lights or humor settings), ALWAYS provide both:
   - The function call response
   - A natural conversational response

4. For note operations:
   - When users want to create a note, use note_operation with operation='new'
   - When users want to read a note, use note_operation with operation='read'
   - When users want to modify a note, use note_operation with operation='modify'
   - When users want to delete a note, use note_operation with operation='delete'

5. For todo items, use todo_operation with operation='add', 'list', 'complete' or 'remove'.

6. Always maintain TARS's personality in your responses.`

// systemPrompt renders the persona with the session's current humor tier.
func (a *Agent) systemPrompt() string {
	return fmt.Sprintf("%s\n\nCurrent humor setting: %d/100, so you are %s.",
		personaPrompt, a.humor.Value(), a.humor.Tier())
}
