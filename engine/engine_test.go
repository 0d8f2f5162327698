package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tokenlens/engine"
	"github.com/randalmurphal/tokenlens/registry"
	"github.com/randalmurphal/tokenlens/session"
	"github.com/randalmurphal/tokenlens/tokens"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]registry.Model{
		{ID: "m-exact", Name: "Exact", Provider: "P", Strategy: registry.StrategyExact, Encoding: "cl100k_base", Scale: 1.0},
		{ID: "m-approx", Name: "Approx", Provider: "P", Strategy: registry.StrategyApprox, Scale: 4.0, ContextLimit: 1000},
	})
	require.NoError(t, err)
	return reg
}

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(engine.Config{
		Registry:     testRegistry(t),
		Prefs:        session.NewMemPrefs(),
		DefaultModel: "m-approx",
	})
}

func TestCountText(t *testing.T) {
	eng := newTestEngine(t)

	assert.Equal(t, 1, eng.CountText("aaaa", "m-approx"))
	assert.Equal(t, 0, eng.CountText("", "m-approx"))

	// Empty model id counts with the selection.
	assert.Equal(t, 1, eng.CountText("aaaa", ""))
}

func TestCountTextUnknownModelFallsBack(t *testing.T) {
	eng := newTestEngine(t)

	text := strings.Repeat("x", 10)
	assert.Equal(t, 3, eng.CountText(text, "never-heard-of-it"), "unknown model uses ceil(len/4)")
}

func TestCountTextSelectionSubstring(t *testing.T) {
	eng := newTestEngine(t)

	document := strings.Repeat("a", 400)
	selection := document[:40]

	assert.Equal(t, 100, eng.CountText(document, "m-approx"))
	assert.Equal(t, 10, eng.CountText(selection, "m-approx"),
		"a selection counts only the selected substring")
}

func TestSelectionLifecycle(t *testing.T) {
	prefs := session.NewMemPrefs()
	cfg := engine.Config{
		Registry:     testRegistry(t),
		Prefs:        prefs,
		DefaultModel: "m-approx",
	}

	eng := engine.New(cfg)
	assert.Equal(t, "m-approx", eng.ModelID())

	require.NoError(t, eng.SetModel("m-exact"))
	assert.Equal(t, "m-exact", eng.ModelID())
	assert.Error(t, eng.SetModel("bogus"))

	// A new engine over the same prefs resumes the persisted selection.
	eng2 := engine.New(cfg)
	assert.Equal(t, "m-exact", eng2.ModelID())
}

func TestClassify(t *testing.T) {
	eng := newTestEngine(t)

	u := eng.Classify(800, "m-approx")
	assert.Equal(t, tokens.StatusWarning, u.Status)
	assert.Equal(t, 80.0, u.Percent)
	assert.True(t, u.HasLimit)

	u = eng.Classify(500, "m-exact")
	assert.Equal(t, tokens.StatusOK, u.Status)
	assert.False(t, u.HasLimit, "m-exact has no context limit")
}

func TestModelsAndProviders(t *testing.T) {
	eng := newTestEngine(t)

	models := eng.Models()
	require.Len(t, models, 2)
	assert.Equal(t, "m-exact", models[0].ID)
	assert.Equal(t, []string{"P"}, eng.Providers())
}

func TestCountDirAndBuildTree(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("a.txt", strings.Repeat("a", 40))        // 10 tokens
	write("b.png", "binary")                       // skipped
	write("sub/c.txt", strings.Repeat("c", 20))    // 5 tokens

	eng := newTestEngine(t)
	res, err := eng.CountDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 15, res.Total)

	root := eng.BuildTree(res.Files)
	assert.Equal(t, 15, root.Tokens)

	// The tree is rooted at the absolute path's segments; walk down to
	// the temp dir's node.
	node := root
	for _, seg := range strings.Split(strings.Trim(filepath.ToSlash(dir), "/"), "/") {
		node = node.Child(seg)
		require.NotNil(t, node, "missing tree node %q", seg)
	}
	require.NotNil(t, node.Child("a.txt"))
	assert.Equal(t, 10, node.Child("a.txt").Tokens)
	require.NotNil(t, node.Child("sub"))
	assert.Equal(t, 5, node.Child("sub").Tokens)
	require.NotNil(t, node.Child("b.png"))
	assert.NotEmpty(t, node.Child("b.png").SkipReason)
}

func TestCountProjectAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte(strings.Repeat("a", 40)), 0o644))

	eng := newTestEngine(t)

	total, err := eng.CountProject(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	again, err := eng.CountProject(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, total, again)

	eng.InvalidateCache()
	afterInvalidate, err := eng.CountProject(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, total, afterInvalidate)
}
