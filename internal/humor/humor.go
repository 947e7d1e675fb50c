// Package humor tracks the persona humor setting on a 0..100 scale.
package humor

import "fmt"

const (
	Min     = 0
	Max     = 100
	Default = 50
)

// Level is the humor setting of one agent session. Owned by the agent,
// not shared between sessions.
type Level struct {
	value int
}

func NewLevel() *Level {
	return &Level{value: Default}
}

func (l *Level) Value() int { return l.value }

// Set replaces the level. Out-of-range input is rejected and leaves the
// stored value unchanged.
func (l *Level) Set(n int) error {
	if n < Min || n > Max {
		return fmt.Errorf("humor level %d out of range [%d,%d]", n, Min, Max)
	}
	l.value = n
	return nil
}

// Tier maps the current level to its descriptive band.
func (l *Level) Tier() string {
	return TierFor(l.value)
}

// TierFor maps any level to one of the five fixed bands. Boundaries are
// closed at 20/40/60/80.
func TierFor(n int) string {
	switch {
	case n <= 20:
		return "very serious"
	case n <= 40:
		return "mostly serious"
	case n <= 60:
		return "balanced"
	case n <= 80:
		return "quite humorous"
	default:
		return "extremely humorous"
	}
}
