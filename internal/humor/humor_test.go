package humor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		level int
		tier  string
	}{
		{0, "very serious"},
		{20, "very serious"},
		{21, "mostly serious"},
		{40, "mostly serious"},
		{41, "balanced"},
		{60, "balanced"},
		{61, "quite humorous"},
		{80, "quite humorous"},
		{81, "extremely humorous"},
		{100, "extremely humorous"},
	}
	for _, c := range cases {
		assert.Equal(t, c.tier, TierFor(c.level), "level %d", c.level)
	}
}

func TestSetRejectsOutOfRange(t *testing.T) {
	l := NewLevel()
	assert.Equal(t, Default, l.Value())

	assert.Error(t, l.Set(150))
	assert.Equal(t, Default, l.Value())

	assert.Error(t, l.Set(-5))
	assert.Equal(t, Default, l.Value())

	assert.NoError(t, l.Set(75))
	assert.Equal(t, 75, l.Value())
	assert.Equal(t, "quite humorous", l.Tier())
}
