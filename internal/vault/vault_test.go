package vault

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
	return s
}

func TestSanitizeTitle(t *testing.T) {
	assert.Equal(t, "My_Plan", SanitizeTitle("My Plan"))
	assert.Equal(t, "groceries-list", SanitizeTitle("groceries-list!?"))
	assert.Equal(t, "a_b", SanitizeTitle("  a b  "))
}

func TestCreateReadDelete(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Create("My Plan", "world domination, gently")
	require.NoError(t, err)
	assert.Equal(t, "My_Plan.md", name)

	content, err := s.Read("My Plan")
	require.NoError(t, err)
	assert.Contains(t, content, "world domination, gently")
	assert.Contains(t, content, "title: My Plan")
	assert.Contains(t, content, "date: "+time.Now().Format("2006-01-02"))

	require.NoError(t, s.Delete("My Plan"))

	_, err = s.Read("My Plan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestModifyPreservesHeader(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create("Journal", "day one")
	require.NoError(t, err)

	require.NoError(t, s.Modify("Journal", "day two"))

	content, err := s.Read("Journal")
	require.NoError(t, err)
	assert.Contains(t, content, "title: Journal")
	assert.Contains(t, content, "day two")
	assert.NotContains(t, content, "day one")
}

func TestModifyEmptyContentKeepsBody(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create("Journal", "day one")
	require.NoError(t, err)

	err = s.Modify("Journal", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")

	content, err := s.Read("Journal")
	require.NoError(t, err)
	assert.Contains(t, content, "day one")
}

func TestMissingTitleErrors(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Read("")
	assert.Error(t, err)
	assert.Error(t, s.Modify("", "x"))
	assert.Error(t, s.Delete(""))
	assert.Error(t, s.Modify("nope", "x"))
	assert.Error(t, s.Delete("nope"))
}

func TestListReadsFrontMatter(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create("Alpha", "a")
	require.NoError(t, err)
	_, err = s.Create("Beta", "b")
	require.NoError(t, err)

	metas, err := s.List()
	require.NoError(t, err)
	require.Len(t, metas, 2)

	titles := []string{metas[0].Title, metas[1].Title}
	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, titles)
}
