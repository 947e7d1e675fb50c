package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	a, err := New(Config{
		APIKey:   "test-key",
		VaultDir: t.TempDir(),
		TodoDir:  t.TempDir(),
	})
	require.NoError(t, err)
	return a
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestDirectHumorChange(t *testing.T) {
	a := newTestAgent(t)

	natural, function, err := a.ProcessMessage(context.Background(), "please set humor to 75")
	require.NoError(t, err)
	assert.Equal(t, "Humor level changed to: 75/100", function)
	assert.Contains(t, natural, "quite humorous")
	assert.Equal(t, 75, a.HumorLevel())
}

func TestDirectHumorChangeOutOfRange(t *testing.T) {
	a := newTestAgent(t)

	natural, function, err := a.ProcessMessage(context.Background(), "change humor to 150")
	require.NoError(t, err)
	assert.Empty(t, function)
	assert.Contains(t, natural, "between 0 and 100")
	assert.Equal(t, 50, a.HumorLevel())

	natural, function, err = a.ProcessMessage(context.Background(), "adjust humor to -5")
	require.NoError(t, err)
	assert.Empty(t, function)
	assert.Contains(t, natural, "between 0 and 100")
	assert.Equal(t, 50, a.HumorLevel())
}

func TestHumorQuery(t *testing.T) {
	a := newTestAgent(t)

	natural, function, err := a.ProcessMessage(context.Background(), "what is your humor level?")
	require.NoError(t, err)
	assert.Empty(t, function)
	assert.Contains(t, natural, "50/100")
	assert.Contains(t, natural, "balanced")
}

func TestSystemPromptCarriesTier(t *testing.T) {
	a := newTestAgent(t)

	require.NoError(t, a.humor.Set(10))
	assert.Contains(t, a.systemPrompt(), "10/100")
	assert.Contains(t, a.systemPrompt(), "very serious")
}
