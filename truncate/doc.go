// Package truncate cuts text down to a token budget under a model's own
// counting strategy.
//
// A Truncator pairs a truncation strategy (end, middle, start) with a
// token counter and a marker suffix. The suffix's own tokens are
// reserved, so results genuinely fit the budget:
//
//	tr := truncate.NewFromEnd()
//	m, _ := registry.Default().Lookup("gpt-4o")
//	fitted, truncated := tr.Truncate(text, &m, 4000)
//
// FitContext truncates straight to the model's context window, which is
// what an editor wants before pasting a whole file into a prompt:
//
//	fitted, truncated := tr.FitContext(text, &m)
//
// Models without a known context limit are returned unchanged.
package truncate
