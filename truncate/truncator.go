package truncate

import (
	"github.com/randalmurphal/tokenlens/registry"
	"github.com/randalmurphal/tokenlens/tokens"
)

// Strategy defines where content is removed from.
type Strategy int

const (
	// FromEnd removes content from the end (default).
	FromEnd Strategy = iota

	// FromMiddle removes content from the middle, keeping start and end.
	FromMiddle

	// FromStart removes content from the start.
	FromStart
)

// Default truncation markers per strategy.
const (
	DefaultEndSuffix    = "..."
	DefaultMiddleSuffix = "\n...[content truncated]...\n"
	DefaultStartSuffix  = "..."
)

// Truncator truncates text to fit a token budget, counting with the
// model the text is destined for.
type Truncator struct {
	counter  tokens.TextCounter
	strategy Strategy
	suffix   string
}

// New creates a truncator with the given strategy and the default
// counter.
func New(strategy Strategy) *Truncator {
	suffix := DefaultEndSuffix
	if strategy == FromMiddle {
		suffix = DefaultMiddleSuffix
	}
	return &Truncator{
		counter:  tokens.NewCounter(),
		strategy: strategy,
		suffix:   suffix,
	}
}

// NewFromEnd creates a truncator that removes content from the end.
func NewFromEnd() *Truncator {
	return New(FromEnd)
}

// NewFromMiddle creates a truncator that removes content from the middle.
func NewFromMiddle() *Truncator {
	return New(FromMiddle)
}

// NewFromStart creates a truncator that removes content from the start.
func NewFromStart() *Truncator {
	return New(FromStart)
}

// WithCounter sets a custom token counter.
func (t *Truncator) WithCounter(counter tokens.TextCounter) *Truncator {
	if counter != nil {
		t.counter = counter
	}
	return t
}

// WithSuffix sets a custom truncation marker.
func (t *Truncator) WithSuffix(suffix string) *Truncator {
	t.suffix = suffix
	return t
}

// Truncate reduces text to at most maxTokens under the model's counting
// strategy. Returns the (possibly unchanged) text and whether truncation
// occurred. A nil model counts with the universal heuristic.
func (t *Truncator) Truncate(text string, m *registry.Model, maxTokens int) (string, bool) {
	if t.fits(text, m, maxTokens) {
		return text, false
	}

	switch t.strategy {
	case FromMiddle:
		return t.truncateMiddle(text, m, maxTokens), true
	case FromStart:
		return t.truncateStart(text, m, maxTokens), true
	default:
		return t.truncateEnd(text, m, maxTokens), true
	}
}

// FitContext truncates text to the model's context window. Text for a
// model with no known limit is returned unchanged.
func (t *Truncator) FitContext(text string, m *registry.Model) (string, bool) {
	if m == nil || m.ContextLimit <= 0 {
		return text, false
	}
	return t.Truncate(text, m, m.ContextLimit)
}

// Strategy returns the truncator's strategy.
func (t *Truncator) Strategy() Strategy {
	return t.strategy
}

// Suffix returns the truncation marker.
func (t *Truncator) Suffix() string {
	return t.suffix
}

func (t *Truncator) fits(text string, m *registry.Model, limit int) bool {
	return t.counter.Count(text, m) <= limit
}
