// Package tokenlens estimates LLM token usage for text, files, and whole
// project trees, without calling any model provider.
//
// tokenlens is the counting engine behind an editor integration. Each
// subpackage can be used independently:
//
//   - registry: catalogue of supported models and their counting strategy
//   - tokens: dual-mode token counting and context-window classification
//   - scan: file/directory/project aggregation with an incremental cache
//   - filetree: shaping flat per-file results into a hierarchical tree
//   - session: model selection state, preferences, debounce, file watching
//   - truncate: token-aware truncation into a model's context window
//   - engine: the single facade an editor host talks to
//
// # Quick Start
//
// Counting a string against a catalogue model:
//
//	reg := registry.Default()
//	counter := tokens.NewCounter()
//	m, _ := reg.Lookup("gpt-4o")
//	count := counter.Count("Hello, World!", &m)
//
// Counting a whole directory:
//
//	eng, _ := engine.New(engine.Config{Prefs: session.NewMemPrefs()})
//	res, _ := eng.CountDir(ctx, "/path/to/project")
//	tree := eng.BuildTree(res.Files)
//
// # Design Philosophy
//
//   - Exact sub-word counts delegate to tiktoken; everything degrades to a
//     chars-per-token heuristic rather than failing
//   - One file's read error never aborts the files around it
//   - Cancellation returns partial results, never an error
//   - Interfaces for the host editor's surfaces (filesystem, preferences),
//     concrete types for everything else
package tokenlens
