// Package filetree shapes flat per-file count records into a hierarchy
// with folder subtotals.
//
// Build decomposes each record's path into segments, lazily creating
// intermediate folder nodes, then computes folder totals in a single
// depth-first pass once the whole tree exists. Totals are never computed
// during insertion, because a record's ancestors may be created out of
// order. Skipped files appear in the tree with their reason and
// contribute zero to every ancestor.
//
// The tree is a pure projection: build it fresh from the latest records
// whenever the display needs one.
//
//	root := filetree.Build(result.Files)
//	fmt.Print(filetree.RenderString(root))
package filetree
