package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	s.now = func() time.Time {
		return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestResolveDue(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, "2026-08-24", s.ResolveDue("today"))
	assert.Equal(t, "2026-08-25", s.ResolveDue("Tomorrow"))
	assert.Equal(t, "2026-08-31", s.ResolveDue("next week"))
	assert.Equal(t, "2026-09-15", s.ResolveDue("2026-09-15"))
	assert.Equal(t, "2026-08-24", s.ResolveDue("whenever"))
	assert.Equal(t, "2026-08-24", s.ResolveDue(""))
}

func TestAddAndList(t *testing.T) {
	s := newTestStore(t)

	item, err := s.Add("buy groceries", "tomorrow")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-25", item.DueDate)
	assert.False(t, item.Completed)

	_, err = s.Add("clean room", "today")
	require.NoError(t, err)

	items, err := s.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "buy groceries", items[0].Name)
	assert.Equal(t, "clean room", items[1].Name)
}

func TestCompleteByPartialName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("buy groceries", "tomorrow")
	require.NoError(t, err)
	_, err = s.Add("clean room", "today")
	require.NoError(t, err)

	done, err := s.Complete("GROCERIES")
	require.NoError(t, err)
	assert.True(t, done.Completed)

	items, err := s.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Completed)
	assert.False(t, items[1].Completed)
	assert.Equal(t, "clean room", items[1].Name)
	assert.Equal(t, "2026-08-24", items[1].DueDate)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("buy groceries", "")
	require.NoError(t, err)

	removed, err := s.Remove("groc")
	require.NoError(t, err)
	assert.Equal(t, "buy groceries", removed.Name)

	items, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMissingNameAndNoMatch(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("", "today")
	assert.Error(t, err)

	_, err = s.Complete("")
	assert.Error(t, err)

	_, err = s.Complete("nothing here")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = s.Remove("nothing here")
	assert.Error(t, err)
}
