package transcript

import (
	"fmt"
	"strings"
)

// Collector accumulates the raw text of one turn: frame markers, stats
// banners and the actual model/tool lines. Partition strips the former.
type Collector struct {
	lines []string
}

func NewCollector() *Collector {
	return &Collector{}
}

// User records the incoming utterance frame.
func (c *Collector) User(msg string) {
	c.lines = append(c.lines, ">>> You: "+msg)
}

// Assistant records the model's conversational text.
func (c *Collector) Assistant(text string) {
	c.lines = append(c.lines, "<<< DARS:", text)
}

// Tool records a tool handler's output verbatim, FUNC: line included.
func (c *Collector) Tool(out string) {
	c.lines = append(c.lines, out)
}

// Stats records a token-usage banner for the turn.
func (c *Collector) Stats(promptTokens, completionTokens int64) {
	c.lines = append(c.lines,
		fmt.Sprintf("Stats: prompt=%d completion=%d", promptTokens, completionTokens))
}

// String returns the raw transcript collected so far.
func (c *Collector) String() string {
	return strings.Join(c.lines, "\n")
}
