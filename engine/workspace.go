package engine

import (
	"path/filepath"
	"strings"
)

// WorkspaceRoot returns the first root that contains path, for
// relative-path display. Empty when no root contains it.
func WorkspaceRoot(roots []string, path string) string {
	for _, root := range roots {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)) {
			return root
		}
	}
	return ""
}

// DisplayPath returns path relative to its workspace root, or the path
// unchanged when it belongs to none.
func DisplayPath(roots []string, path string) string {
	root := WorkspaceRoot(roots, path)
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
