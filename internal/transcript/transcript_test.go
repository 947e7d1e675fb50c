package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1;32mhello\x1b[0m world"
	assert.Equal(t, "hello world", StripANSI(in))
}

func TestPartitionNoFunctionLine(t *testing.T) {
	raw := strings.Join([]string{
		">>> You: hello",
		"Stats: prompt=10 completion=5",
		"",
		"Hello there.",
		"WARNING: cached response",
		"How can I help?",
		"Bye, hope this was useful!",
	}, "\n")

	got := Partition(raw)
	assert.Equal(t, "Hello there.\nHow can I help?", got)

	natural, function, ok := Parse(got)
	assert.False(t, ok)
	assert.Empty(t, function)
	assert.Equal(t, "Hello there.\nHow can I help?", natural)
}

func TestPartitionSingleFunctionLine(t *testing.T) {
	raw := strings.Join([]string{
		"<<< DARS:",
		"FUNC: Humor level changed to: 75/100",
		"I've adjusted my personality to be quite humorous.",
		"Stats: prompt=20 completion=12",
	}, "\n")

	combined := Partition(raw)
	require.Contains(t, combined, "FUNCTION_OUTPUT:")
	require.Contains(t, combined, "NATURAL_OUTPUT:")

	natural, function, ok := Parse(combined)
	require.True(t, ok)
	assert.Equal(t, "Humor level changed to: 75/100", function)
	assert.Equal(t, "I've adjusted my personality to be quite humorous.", natural)
}

func TestParseEmptyFallsBackToApology(t *testing.T) {
	natural, function, ok := Parse("   \n  ")
	assert.False(t, ok)
	assert.Empty(t, function)
	assert.Equal(t, Apology, natural)
}

func TestParseEmptyNaturalSegment(t *testing.T) {
	combined := "FUNCTION_OUTPUT:FUNC: Note created: My_Plan.md\nNATURAL_OUTPUT:"
	natural, function, ok := Parse(combined)
	assert.False(t, ok)
	assert.Empty(t, function)
	assert.Equal(t, Apology, natural)
}

func TestParseFunctionLineWithoutNaturalText(t *testing.T) {
	natural, function, ok := Parse(Partition("FUNC: RGB lights changed to: #FF0000"))
	assert.False(t, ok)
	assert.Empty(t, function)
	assert.Equal(t, Apology, natural)
}

func TestParseNoteContentMarker(t *testing.T) {
	body := "some note body here"
	combined := "FUNCTION_OUTPUT:FUNC: NOTE_CONTENT_FOR_PROCESSING\n" + body +
		"\nNATURAL_OUTPUT:Here is your note."
	natural, function, ok := Parse(combined)
	require.True(t, ok)
	assert.Equal(t, "Here is your note.", natural)
	assert.Contains(t, function, "Note content retrieved:")
	assert.Contains(t, function, "characters")
}

func TestExtractSideEffectFirstMatchWins(t *testing.T) {
	text := "The room should feel calmer now.\nRGB lights changed to: #0000FF\nHumor level changed to: 10/100"
	natural, function, ok := ExtractSideEffect(text)
	require.True(t, ok)
	assert.Equal(t, "RGB lights changed to: #0000FF", function)
	assert.NotContains(t, natural, "RGB lights")
	// Only the first pattern is excised per call.
	assert.Contains(t, natural, "Humor level changed to: 10/100")
}

func TestExtractSideEffectPassthrough(t *testing.T) {
	natural, function, ok := ExtractSideEffect("Nothing happened here.")
	assert.False(t, ok)
	assert.Empty(t, function)
	assert.Equal(t, "Nothing happened here.", natural)
}

func TestCollectorRoundTrip(t *testing.T) {
	c := NewCollector()
	c.User("turn on the lights")
	c.Assistant("Done.")
	c.Tool("FUNC: RGB lights changed to: #FFFFFF")
	c.Stats(42, 7)

	natural, function, ok := Parse(Partition(c.String()))
	require.True(t, ok)
	assert.Equal(t, "RGB lights changed to: #FFFFFF", function)
	assert.Equal(t, "Done.", natural)
}
