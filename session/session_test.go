package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tokenlens/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]registry.Model{
		{ID: "first", Name: "First", Provider: "P", Strategy: registry.StrategyApprox, Scale: 4},
		{ID: "second", Name: "Second", Provider: "P", Strategy: registry.StrategyApprox, Scale: 4, ContextLimit: 1000},
	})
	require.NoError(t, err)
	return reg
}

func TestNewDefaultsWhenNoPreference(t *testing.T) {
	s := New(testRegistry(t), NewMemPrefs(), "second")
	assert.Equal(t, "second", s.ModelID())
}

func TestNewUsesPersistedSelection(t *testing.T) {
	prefs := NewMemPrefs()
	require.NoError(t, prefs.Set(PrefKeySelectedModel, "second"))

	s := New(testRegistry(t), prefs, "first")
	assert.Equal(t, "second", s.ModelID())
}

func TestNewIgnoresUnknownPersistedSelection(t *testing.T) {
	prefs := NewMemPrefs()
	require.NoError(t, prefs.Set(PrefKeySelectedModel, "long-gone-model"))

	s := New(testRegistry(t), prefs, "first")
	assert.Equal(t, "first", s.ModelID())
}

func TestNewFallsBackToFirstModel(t *testing.T) {
	s := New(testRegistry(t), NewMemPrefs(), "also-unknown")
	assert.Equal(t, "first", s.ModelID())
}

func TestSetModelPersists(t *testing.T) {
	prefs := NewMemPrefs()
	s := New(testRegistry(t), prefs, "first")

	require.NoError(t, s.SetModel("second"))
	assert.Equal(t, "second", s.ModelID())

	m := s.Model()
	require.NotNil(t, m)
	assert.Equal(t, 1000, m.ContextLimit)

	stored, ok := prefs.Get(PrefKeySelectedModel)
	assert.True(t, ok)
	assert.Equal(t, "second", stored)
}

func TestSetModelRejectsUnknown(t *testing.T) {
	s := New(testRegistry(t), NewMemPrefs(), "first")

	err := s.SetModel("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownModel))
	assert.Equal(t, "first", s.ModelID(), "failed SetModel must not change the selection")
}

func TestFilePrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	p, err := NewFilePrefs(path)
	require.NoError(t, err)

	_, ok := p.Get("anything")
	assert.False(t, ok, "missing file is an empty store")

	require.NoError(t, p.Set(PrefKeySelectedModel, "gpt-4o"))

	// A fresh store reads what the first one wrote.
	p2, err := NewFilePrefs(path)
	require.NoError(t, err)
	v, ok := p2.Get(PrefKeySelectedModel)
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o", v)
}

func TestFilePrefsRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("][ not yaml"), 0o644))

	_, err := NewFilePrefs(path)
	assert.Error(t, err)
}
