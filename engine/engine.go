package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/tokenlens/filetree"
	"github.com/randalmurphal/tokenlens/registry"
	"github.com/randalmurphal/tokenlens/scan"
	"github.com/randalmurphal/tokenlens/session"
	"github.com/randalmurphal/tokenlens/tokens"
)

// DefaultModelID is the selection used when the preference store holds
// nothing.
const DefaultModelID = "gpt-4o"

// Config wires an Engine. Zero fields get working defaults.
type Config struct {
	// Registry of known models; registry.Default() when nil.
	Registry *registry.Registry

	// Prefs persists the selected model id; in-memory when nil.
	Prefs session.PrefStore

	// DefaultModel is the initial selection when no preference is
	// stored; DefaultModelID when empty.
	DefaultModel string

	// FS is the filesystem surface; the OS filesystem when nil.
	FS scan.FS

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Engine is the host-facing surface of tokenlens.
type Engine struct {
	reg     *registry.Registry
	sess    *session.Session
	counter *tokens.Counter
	scanner *scan.Scanner
	project *scan.ProjectCounter
	log     *slog.Logger
}

// New builds an engine from the config.
func New(cfg Config) *Engine {
	reg := cfg.Registry
	if reg == nil {
		reg = registry.Default()
	}
	prefs := cfg.Prefs
	if prefs == nil {
		prefs = session.NewMemPrefs()
	}
	defaultModel := cfg.DefaultModel
	if defaultModel == "" {
		defaultModel = DefaultModelID
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	var fs scan.FS = scan.OSFS{}
	if cfg.FS != nil {
		fs = cfg.FS
	}

	sess := session.New(reg, prefs, defaultModel).WithLogger(log)
	counter := tokens.NewCounter().WithLogger(log)
	scanner := scan.NewScanner(counter, sess.Model,
		scan.WithFS(fs), scan.WithLogger(log))

	return &Engine{
		reg:     reg,
		sess:    sess,
		counter: counter,
		scanner: scanner,
		project: scan.NewProjectCounter(scanner),
		log:     log,
	}
}

// CountText counts text under the named model. An empty modelID uses the
// session's selection; an unknown id counts with the universal heuristic.
func (e *Engine) CountText(text, modelID string) int {
	return e.counter.Count(text, e.resolve(modelID))
}

// Models returns the full catalogue in display order.
func (e *Engine) Models() []registry.Model {
	return e.reg.Models()
}

// Providers returns provider names in catalogue order.
func (e *Engine) Providers() []string {
	return e.reg.Providers()
}

// ModelID returns the selected model id.
func (e *Engine) ModelID() string {
	return e.sess.ModelID()
}

// SetModel selects and persists a model by id.
func (e *Engine) SetModel(id string) error {
	return e.sess.SetModel(id)
}

// Classify reports context-window usage of a count under the named model
// (empty means the selection).
func (e *Engine) Classify(tokenCount int, modelID string) tokens.Usage {
	return tokens.Classify(tokenCount, e.resolve(modelID))
}

// CountFile counts one file with the selected model.
func (e *Engine) CountFile(path string) scan.FileCount {
	return e.scanner.CountFile(path)
}

// CountDir counts a directory tree; see scan.Scanner.CountDir.
func (e *Engine) CountDir(ctx context.Context, path string) (scan.DirResult, error) {
	return e.scanner.CountDir(ctx, path)
}

// CountPaths counts a mixed list of files and directories; see
// scan.Scanner.CountPaths.
func (e *Engine) CountPaths(ctx context.Context, paths []string) scan.MultiResult {
	return e.scanner.CountPaths(ctx, paths)
}

// CountProject counts the whole tree under root through the incremental
// cache.
func (e *Engine) CountProject(ctx context.Context, root string) (int, error) {
	return e.project.Count(ctx, root)
}

// InvalidateCache clears the project-count cache.
func (e *Engine) InvalidateCache() {
	e.project.InvalidateAll()
}

// BuildTree shapes flat count records into a hierarchy with folder
// subtotals.
func (e *Engine) BuildTree(records []scan.FileCount) *filetree.Node {
	return filetree.Build(records)
}

// UseIgnoreFile layers a .gitignore over the scanner's fixed skip rules.
func (e *Engine) UseIgnoreFile(path string) error {
	return e.scanner.UseIgnoreFile(path)
}

// Watch starts filesystem watching over the given roots: deletions clear
// the project cache and every change kicks onProject after delay of
// quiet. Close the returned watcher to stop.
func (e *Engine) Watch(delay time.Duration, onProject func(), roots ...string) (*session.Watcher, error) {
	project := session.NewDebouncer(delay, onProject)
	w, err := session.NewWatcher(e.project, project, nil, e.log)
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		if err := w.Add(root); err != nil {
			w.Close()
			return nil, err
		}
	}
	return w, nil
}

// resolve maps a model id to its descriptor: empty means the session's
// selection, unknown means nil (heuristic counting).
func (e *Engine) resolve(modelID string) *registry.Model {
	if modelID == "" {
		return e.sess.Model()
	}
	m, ok := e.reg.Lookup(modelID)
	if !ok {
		e.log.Debug("unknown model id, using heuristic", "id", modelID)
		return nil
	}
	return &m
}
