package filetree

import (
	"path/filepath"
	"strings"

	"github.com/randalmurphal/tokenlens/scan"
)

// Node is one file or folder in the built tree. For folders, Tokens is
// the sum of all descendant file counts (skipped files count as zero).
// Children keep first-insertion order.
type Node struct {
	Name       string
	Path       string
	IsFile     bool
	Tokens     int
	SkipReason string
	Children   []*Node

	index map[string]*Node
}

// Build constructs a tree from flat count records under a synthetic root.
// Records may arrive in any order; intermediate folders are created on
// demand and folder totals are computed in one explicit pass afterwards.
func Build(records []scan.FileCount) *Node {
	root := &Node{index: make(map[string]*Node)}

	for _, rec := range records {
		segments := splitPath(rec.Path)
		if len(segments) == 0 {
			continue
		}

		node := root
		for i, seg := range segments {
			child := node.child(seg)
			if i == len(segments)-1 {
				child.IsFile = true
				child.Path = rec.Path
				child.SkipReason = rec.SkipReason
				if !rec.Skipped {
					child.Tokens = rec.Tokens
				}
			}
			node = child
		}
	}

	computeTotals(root)
	return root
}

// child returns the named child, creating it in insertion order.
func (n *Node) child(name string) *Node {
	if c, ok := n.index[name]; ok {
		return c
	}
	c := &Node{Name: name, index: make(map[string]*Node)}
	n.index[name] = c
	n.Children = append(n.Children, c)
	return c
}

// Child returns the named direct child, or nil.
func (n *Node) Child(name string) *Node {
	return n.index[name]
}

// computeTotals fills every folder's Tokens bottom-up. Runs exactly once,
// after the tree is complete.
func computeTotals(n *Node) int {
	if n.IsFile {
		return n.Tokens
	}
	sum := 0
	for _, c := range n.Children {
		sum += computeTotals(c)
	}
	n.Tokens = sum
	return sum
}

// splitPath breaks a path into its segments, tolerating both separators
// and leading volume/root markers.
func splitPath(path string) []string {
	clean := filepath.ToSlash(path)
	if vol := filepath.VolumeName(path); vol != "" {
		clean = strings.TrimPrefix(clean, filepath.ToSlash(vol))
	}
	clean = strings.Trim(clean, "/")
	if clean == "" {
		return nil
	}
	return strings.Split(clean, "/")
}
