package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tokenlens/scan"
	"github.com/randalmurphal/tokenlens/tokens"
)

// readCountingFS counts ReadFile calls so tests can prove the cache
// avoided re-reading (and therefore re-encoding) unchanged files.
type readCountingFS struct {
	scan.FS
	mu    sync.Mutex
	reads int
}

func (f *readCountingFS) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	f.reads++
	f.mu.Unlock()
	return f.FS.ReadFile(path)
}

func (f *readCountingFS) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func newProjectCounter(fs scan.FS) *scan.ProjectCounter {
	return scan.NewProjectCounter(
		scan.NewScanner(tokens.NewCounter(), fourCharModel, scan.WithFS(fs)),
	)
}

func TestProjectCountIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), strings.Repeat("a", 40))        // 10 tokens
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), strings.Repeat("b", 20)) // 5 tokens
	writeFile(t, filepath.Join(dir, "node_modules", "x.js"), "never counted")
	writeFile(t, filepath.Join(dir, "c.png"), strings.Repeat("p", 400)) // binary, skipped

	fs := &readCountingFS{FS: scan.OSFS{}}
	pc := newProjectCounter(fs)

	first, err := pc.Count(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 15, first)

	readsAfterFirst := fs.readCount()
	assert.Equal(t, 2, readsAfterFirst, "only the two text files are read")

	second, err := pc.Count(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, readsAfterFirst, fs.readCount(), "unchanged tree must be served entirely from cache")
}

func TestProjectCountRecomputesOnMtimeChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, strings.Repeat("a", 40)) // 10 tokens

	fs := &readCountingFS{FS: scan.OSFS{}}
	pc := newProjectCounter(fs)

	total, err := pc.Count(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	// Rewrite with different content and force a distinct mtime so the
	// test doesn't depend on filesystem timestamp granularity.
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", 80)), 0o644))
	newTime := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, newTime, newTime))

	readsBefore := fs.readCount()
	total, err = pc.Count(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 20, total, "changed file must be recounted")
	assert.Equal(t, readsBefore+1, fs.readCount())
}

func TestProjectCountInvalidateAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), strings.Repeat("a", 40))

	fs := &readCountingFS{FS: scan.OSFS{}}
	pc := newProjectCounter(fs)

	_, err := pc.Count(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, pc.CacheSize())

	pc.InvalidateAll()
	assert.Equal(t, 0, pc.CacheSize())

	readsBefore := fs.readCount()
	_, err = pc.Count(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, readsBefore+1, fs.readCount(), "invalidation forces a full recount")
}

func TestProjectCountMissingRoot(t *testing.T) {
	pc := newProjectCounter(scan.OSFS{})
	_, err := pc.Count(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestProjectCountCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "aaaa")
	writeFile(t, filepath.Join(dir, "b.txt"), "bbbb")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pc := newProjectCounter(scan.OSFS{})
	total, err := pc.Count(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 0, total, "cancelled before any entry")
}
