// Package tokens counts tokens for text under a model's counting strategy
// and classifies totals against the model's context window.
//
// Two strategies exist. Exact models delegate to a tiktoken sub-word
// encoding and apply the model's calibration scale to the raw count.
// Approximation models divide the character length by a chars-per-token
// ratio. Every failure path degrades to the universal heuristic of
// roughly 4 characters per token instead of returning an error:
//
//	counter := tokens.NewCounter()
//	m, _ := registry.Default().Lookup("gpt-4o")
//	count := counter.Count("Hello, world!", &m)
//
// Encoders are expensive to build, so they are memoized process-wide per
// encoding name. A failed initialization is retried on the next call
// rather than poisoning the cache.
//
// # Classification
//
// Classify reports context-window usage with fixed thresholds: warning at
// 80% and error at 100%:
//
//	usage := tokens.Classify(count, &m)
//	if usage.Status == tokens.StatusError {
//	    // over the context window
//	}
package tokens
