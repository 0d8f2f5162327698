package filetree

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// Render writes an indented text listing of the tree: folders with their
// subtotals, files with their counts, skipped files with their reason.
func Render(w io.Writer, root *Node) error {
	for _, c := range root.Children {
		if err := renderNode(w, c, 0); err != nil {
			return err
		}
	}
	return nil
}

// RenderString renders the tree to a string.
func RenderString(root *Node) string {
	var sb strings.Builder
	_ = Render(&sb, root)
	return sb.String()
}

func renderNode(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)

	var line string
	switch {
	case n.IsFile && n.SkipReason != "":
		line = fmt.Sprintf("%s%s  [skipped: %s]", indent, n.Name, n.SkipReason)
	case n.IsFile:
		line = fmt.Sprintf("%s%s  %s tokens", indent, n.Name, humanize.Comma(int64(n.Tokens)))
	default:
		line = fmt.Sprintf("%s%s/  %s tokens", indent, n.Name, humanize.Comma(int64(n.Tokens)))
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	for _, c := range n.Children {
		if err := renderNode(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
