package game

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EMCSquare12/live-bingo/models"
)

func TestDirectoryCodesUniqueAndWellFormed(t *testing.T) {
	dir := NewDirectory()
	codeFormat := regexp.MustCompile(`^[0-9A-F]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s := dir.Create(testConfig(), "Hilda", 1, models.FullCardPattern(), "", &fakeConn{})
		require.Regexp(t, codeFormat, s.Code)
		require.False(t, seen[s.Code], "room code collision")
		seen[s.Code] = true
	}
	assert.Equal(t, 50, dir.Count())
}

func TestDirectoryLookupIsCaseInsensitive(t *testing.T) {
	dir := NewDirectory()
	s := dir.Create(testConfig(), "Hilda", 1, models.FullCardPattern(), "", &fakeConn{})

	got, ok := dir.Get(s.Code)
	require.True(t, ok)
	assert.Same(t, s, got)

	got, ok = dir.Get(strings.ToLower(s.Code))
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestDirectoryRemoveIsIdempotent(t *testing.T) {
	dir := NewDirectory()
	s := dir.Create(testConfig(), "Hilda", 1, models.FullCardPattern(), "", &fakeConn{})

	dir.Remove(s.Code)
	dir.Remove(s.Code)

	_, ok := dir.Get(s.Code)
	assert.False(t, ok)
	assert.Zero(t, dir.Count())
}

func TestCreateAppliesDefaults(t *testing.T) {
	dir := NewDirectory()
	s := dir.Create(testConfig(), "Hilda", 0, models.WinningPattern{}, "", &fakeConn{})

	state := s.Snapshot()
	assert.Equal(t, 1, state.CardCount, "card count floors at one")
	assert.Len(t, state.Pattern.Index, 25, "empty pattern falls back to full card")
}
