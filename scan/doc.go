// Package scan walks files, directories, and whole project trees and
// aggregates their token counts.
//
// The scanner reads through an FS abstraction so editor hosts can supply
// their own filesystem surface; OSFS covers the common case. Per-file
// outcomes are FileCount records: either a processed count or a skip with
// a reason (binary extension, read error). One file's failure never
// aborts its siblings.
//
//	scanner := scan.NewScanner(counter, func() *registry.Model { return &m })
//	res, err := scanner.CountDir(ctx, "/path/to/project")
//
// Cancellation is cooperative: the context is checked before each
// directory entry and each top-level path, and whatever has been counted
// so far is returned (DirResult.Complete / MultiResult.Completed tell the
// caller it stopped early).
//
// ProjectCounter adds an incremental layer for repeated whole-project
// counts: per-file counts are cached keyed by modification time, so an
// unchanged tree costs one stat per file and no re-encoding. The cache
// lives for the process lifetime and is cleared wholesale by
// InvalidateAll, typically on file deletion events.
//
// Binary detection is purely extension-based (BinaryExtensions); the
// ignored-directory set (IgnoredDirs) and the hidden-file dot prefix are
// fixed tables shared by every operation. A project .gitignore can be
// layered on with UseIgnoreFile.
package scan
