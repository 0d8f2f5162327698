package scan

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/randalmurphal/tokenlens/registry"
	"github.com/randalmurphal/tokenlens/tokens"
)

// FileCount is the outcome for one file: a processed token count, or a
// skip with a reason. A processed empty file has Tokens == 0 and
// Skipped == false, which is distinct from any skip.
type FileCount struct {
	Path       string
	Tokens     int
	Skipped    bool
	SkipReason string
}

// DirResult is the outcome of counting one directory tree. Complete is
// false when cancellation stopped the walk early; Files then holds the
// entries visited up to that point.
type DirResult struct {
	Total    int
	Files    []FileCount
	Complete bool
}

// MultiResult merges counts over a mixed list of file and directory
// paths. Completed < Requested means cancellation stopped the run early.
type MultiResult struct {
	Total     int
	Processed []FileCount
	Skipped   []FileCount
	Requested int
	Completed int
}

// ModelSource supplies the model to count with. It is consulted per file,
// so a selection change mid-scan affects later files, matching the
// process-wide selection semantics.
type ModelSource func() *registry.Model

// Scanner aggregates token counts over files and directories.
type Scanner struct {
	fs      FS
	counter tokens.TextCounter
	model   ModelSource
	log     *slog.Logger

	gitignore  *ignore.GitIgnore
	ignoreBase string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithFS replaces the filesystem surface (default OSFS).
func WithFS(fs FS) Option {
	return func(s *Scanner) { s.fs = fs }
}

// WithLogger sets the logger for downgraded errors.
func WithLogger(log *slog.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// NewScanner creates a scanner counting with counter under the model
// supplied by model. A nil model source counts with the universal
// heuristic.
func NewScanner(counter tokens.TextCounter, model ModelSource, opts ...Option) *Scanner {
	s := &Scanner{
		fs:      OSFS{},
		counter: counter,
		model:   model,
		log:     slog.Default(),
	}
	if s.model == nil {
		s.model = func() *registry.Model { return nil }
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UseIgnoreFile layers a .gitignore file over the fixed skip tables.
// Patterns match paths relative to the ignore file's directory.
func (s *Scanner) UseIgnoreFile(path string) error {
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return fmt.Errorf("compile ignore file %s: %w", path, err)
	}
	s.gitignore = gi
	s.ignoreBase = filepath.Dir(path)
	return nil
}

// CountFile counts one file. Binary extensions and read errors are
// reported as skips, never as errors.
func (s *Scanner) CountFile(path string) FileCount {
	if IsBinaryPath(path) {
		return FileCount{Path: path, Skipped: true, SkipReason: SkipReasonBinary}
	}
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return FileCount{Path: path, Skipped: true, SkipReason: fmt.Sprintf("read error: %v", err)}
	}
	return FileCount{Path: path, Tokens: s.counter.Count(string(data), s.model())}
}

// CountDir recursively counts a directory tree depth-first, in listing
// order. Hidden entries, IgnoredDirs, and gitignored paths are skipped
// silently. The context is checked before each entry; on cancellation the
// partial result is returned with Complete == false. Only a failure to
// list the top-level directory is returned as an error.
func (s *Scanner) CountDir(ctx context.Context, path string) (DirResult, error) {
	res := DirResult{Complete: true}
	if err := s.walkDir(ctx, path, &res); err != nil {
		return DirResult{}, err
	}
	return res, nil
}

func (s *Scanner) walkDir(ctx context.Context, dir string, res *DirResult) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}

	for _, e := range entries {
		if ctx.Err() != nil {
			res.Complete = false
			return nil
		}
		if skipEntry(e) {
			continue
		}
		full := filepath.Join(dir, e.Name)
		if s.ignored(full) {
			continue
		}

		if e.IsDir {
			if err := s.walkDir(ctx, full, res); err != nil {
				// A nested listing failure skips that subtree only.
				s.log.Warn("skipping unlistable directory", "path", full, "error", err)
				res.Files = append(res.Files, FileCount{
					Path:       full,
					Skipped:    true,
					SkipReason: fmt.Sprintf("list error: %v", err),
				})
			}
			if !res.Complete {
				return nil
			}
			continue
		}

		fc := s.CountFile(full)
		res.Files = append(res.Files, fc)
		res.Total += fc.Tokens
	}
	return nil
}

// CountPaths counts a mixed list of file and directory paths. Every
// failure is downgraded to a skip record. Processing stops at the first
// cancellation check that fires; Completed reports how many of the
// requested paths finished.
func (s *Scanner) CountPaths(ctx context.Context, paths []string) MultiResult {
	res := MultiResult{Requested: len(paths)}

	for _, p := range paths {
		if ctx.Err() != nil {
			break
		}

		info, err := s.fs.Stat(p)
		if err != nil {
			res.Skipped = append(res.Skipped, FileCount{
				Path:       p,
				Skipped:    true,
				SkipReason: fmt.Sprintf("read error: %v", err),
			})
			res.Completed++
			continue
		}

		if info.IsDir {
			dr, err := s.CountDir(ctx, p)
			if err != nil {
				res.Skipped = append(res.Skipped, FileCount{
					Path:       p,
					Skipped:    true,
					SkipReason: fmt.Sprintf("list error: %v", err),
				})
				res.Completed++
				continue
			}
			res.merge(dr.Files)
			if !dr.Complete {
				break
			}
			res.Completed++
			continue
		}

		fc := s.CountFile(p)
		res.merge([]FileCount{fc})
		res.Completed++
	}
	return res
}

func (r *MultiResult) merge(files []FileCount) {
	for _, fc := range files {
		if fc.Skipped {
			r.Skipped = append(r.Skipped, fc)
			continue
		}
		r.Processed = append(r.Processed, fc)
		r.Total += fc.Tokens
	}
}

// ignored reports whether the gitignore layer excludes the path.
func (s *Scanner) ignored(path string) bool {
	if s.gitignore == nil {
		return false
	}
	rel, err := filepath.Rel(s.ignoreBase, path)
	if err != nil {
		return false
	}
	return s.gitignore.MatchesPath(rel)
}
