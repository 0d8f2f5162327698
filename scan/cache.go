package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

// cacheEntry is one cached per-file count, valid while the file's
// modification time is unchanged.
type cacheEntry struct {
	tokens  int
	modTime time.Time
}

// ProjectCounter counts a whole project tree incrementally. Per-file
// counts are cached keyed by absolute path and modification time, so
// repeated counts of an unchanged tree re-encode nothing. The cache lives
// for the process lifetime; InvalidateAll clears it wholesale.
type ProjectCounter struct {
	scanner *Scanner

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewProjectCounter creates a project counter over the given scanner.
func NewProjectCounter(scanner *Scanner) *ProjectCounter {
	return &ProjectCounter{
		scanner: scanner,
		cache:   make(map[string]cacheEntry),
	}
}

// Count walks every file under root (honoring the scanner's skip rules)
// and returns the project total. Files whose cached modification time
// matches the current one are served from the cache; everything else is
// recounted and the cache updated. Cancellation returns the partial total
// accumulated so far. Only a failure to list root itself is an error.
func (p *ProjectCounter) Count(ctx context.Context, root string) (int, error) {
	total, err := p.countDir(ctx, root, true)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (p *ProjectCounter) countDir(ctx context.Context, dir string, top bool) (int, error) {
	entries, err := p.scanner.fs.ReadDir(dir)
	if err != nil {
		if top {
			return 0, fmt.Errorf("list %s: %w", dir, err)
		}
		p.scanner.log.Warn("skipping unlistable directory", "path", dir, "error", err)
		return 0, nil
	}

	total := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			return total, nil
		}
		if skipEntry(e) {
			continue
		}
		full := filepath.Join(dir, e.Name)
		if p.scanner.ignored(full) {
			continue
		}

		if e.IsDir {
			sub, _ := p.countDir(ctx, full, false)
			total += sub
			continue
		}
		total += p.countFile(full)
	}
	return total, nil
}

// countFile returns the file's token contribution, from cache when the
// stored modification time still matches.
func (p *ProjectCounter) countFile(path string) int {
	info, err := p.scanner.fs.Stat(path)
	if err != nil {
		// Unstattable files contribute nothing; any stale entry for the
		// path must not be reused either.
		p.mu.Lock()
		delete(p.cache, path)
		p.mu.Unlock()
		return 0
	}

	p.mu.Lock()
	entry, ok := p.cache[path]
	p.mu.Unlock()
	if ok && entry.modTime.Equal(info.ModTime) {
		return entry.tokens
	}

	fc := p.scanner.CountFile(path)

	// Re-validate before storing: if the file changed while being read,
	// the count belongs to neither version, so don't cache it. The next
	// Count recomputes it.
	cur, err := p.scanner.fs.Stat(path)
	if err == nil && cur.ModTime.Equal(info.ModTime) {
		p.mu.Lock()
		p.cache[path] = cacheEntry{tokens: fc.Tokens, modTime: cur.ModTime}
		p.mu.Unlock()
	}
	return fc.Tokens
}

// InvalidateAll clears every cache entry. Called on structural changes
// such as deletions, where individual pruning is not worthwhile.
func (p *ProjectCounter) InvalidateAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]cacheEntry)
}

// CacheSize reports how many files currently have a cached count.
func (p *ProjectCounter) CacheSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cache)
}
