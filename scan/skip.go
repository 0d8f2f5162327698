package scan

import (
	"path/filepath"
	"strings"
)

// SkipReasonBinary marks files skipped because their extension is in
// BinaryExtensions. Read failures use a "read error: ..." reason instead,
// so callers can tell the two apart.
const SkipReasonBinary = "binary file"

// BinaryExtensions is the fixed set of file suffixes treated as binary
// and skipped without reading. Matching is case-insensitive on the
// extension. Content sniffing is deliberately not performed.
var BinaryExtensions = map[string]bool{
	// Images
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".ico": true, ".webp": true, ".tiff": true,

	// Archives
	".zip": true, ".tar": true, ".gz": true, ".tgz": true,
	".bz2": true, ".xz": true, ".rar": true, ".7z": true,

	// Executables and compiled artifacts
	".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".bin": true, ".o": true, ".a": true, ".obj": true,
	".class": true, ".pyc": true, ".wasm": true,

	// Office documents
	".pdf": true, ".doc": true, ".docx": true,
	".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,

	// Media
	".mp3": true, ".wav": true, ".flac": true, ".ogg": true,
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".webm": true,

	// Databases
	".db": true, ".sqlite": true, ".sqlite3": true, ".mdb": true,

	// Fonts
	".ttf": true, ".otf": true, ".woff": true, ".woff2": true, ".eot": true,

	// Lock artifacts
	".lock": true,
}

// IgnoredDirs is the fixed set of directory names never descended into:
// dependency caches, build output, version-control and editor metadata.
var IgnoredDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	"__pycache__":  true,
	"coverage":     true,
	".git":         true,
	".svn":         true,
	".hg":          true,
	".next":        true,
	".idea":        true,
	".vscode":      true,
}

// IsBinaryPath reports whether the path's extension is in
// BinaryExtensions.
func IsBinaryPath(path string) bool {
	return BinaryExtensions[strings.ToLower(filepath.Ext(path))]
}

// skipEntry reports whether a directory entry is ignored outright:
// hidden names and the ignored-directory set.
func skipEntry(e DirEntry) bool {
	if strings.HasPrefix(e.Name, ".") {
		return true
	}
	return e.IsDir && IgnoredDirs[e.Name]
}
