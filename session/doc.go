// Package session holds the process-wide state of a running tokenlens
// instance: which model is selected, where that choice is persisted, and
// the timers and file watching that drive refreshes.
//
// # Selection
//
// Session owns the selected model id. It is initialized from a PrefStore
// at construction and changed only through SetModel, which validates the
// id against the registry and persists it:
//
//	sess := session.New(registry.Default(), prefs, "gpt-4o")
//	if err := sess.SetModel("claude-3-5-sonnet"); err != nil { ... }
//
// FilePrefs is a small YAML-backed PrefStore; MemPrefs keeps everything
// in memory for tests.
//
// # Debounce
//
// Each refresh kind (file status, project recount) owns a single
// Debouncer: every Trigger discards the pending timer and starts a fresh
// delay, so a burst of edits produces one refresh after the burst ends.
// The clock is injectable so tests can drive time by hand.
//
// # Watching
//
// Watcher bridges fsnotify to the rest of the engine: deletes and renames
// clear the project-count cache (stale entries for removed paths cannot
// be pruned individually), and every event kicks the debouncers.
package session
