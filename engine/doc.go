// Package engine is the single facade an editor host talks to: text and
// file counting, model selection, context classification, tree shaping,
// and cache control, wired over the registry, tokens, scan, filetree,
// and session packages.
//
//	eng := engine.New(engine.Config{Prefs: prefs})
//	count := eng.CountText(selectedText, "")
//	usage := eng.Classify(count, "")
//
//	res, err := eng.CountDir(ctx, root)
//	tree := eng.BuildTree(res.Files)
//
// The engine counts with the session's selected model unless a call
// names one explicitly. Unknown model ids are not errors: counting falls
// back to the universal heuristic, matching the rest of the module's
// degrade-don't-fail posture.
package engine
