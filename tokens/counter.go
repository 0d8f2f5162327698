package tokens

import (
	"fmt"
	"log/slog"
	"math"
	"unicode/utf8"

	"github.com/randalmurphal/tokenlens/registry"
)

// DefaultCharsPerToken is the universal fallback ratio, roughly right for
// English text under GPT-style tokenizers.
const DefaultCharsPerToken = 4.0

// TextCounter counts tokens for text under a model. A nil model selects
// the universal heuristic.
type TextCounter interface {
	Count(text string, m *registry.Model) int
}

// Counter is the default TextCounter. The zero value is not usable; use
// NewCounter.
type Counter struct {
	log *slog.Logger
}

// NewCounter creates a counter logging through slog.Default.
func NewCounter() *Counter {
	return &Counter{log: slog.Default()}
}

// WithLogger sets the logger used for encoder-failure warnings.
func (c *Counter) WithLogger(log *slog.Logger) *Counter {
	if log != nil {
		c.log = log
	}
	return c
}

// Count returns the estimated token count of text under the model's
// strategy. A nil model falls back to Estimate. Encoder failures are
// logged and fall back to Estimate for that call only. The result is
// always >= 0, and empty text is always 0.
func (c *Counter) Count(text string, m *registry.Model) int {
	if text == "" {
		return 0
	}
	if m == nil {
		return Estimate(text)
	}

	switch m.Strategy {
	case registry.StrategyApprox:
		return ceilDiv(utf8.RuneCountInString(text), m.Scale)

	case registry.StrategyExact:
		n, err := c.exactCount(text, m)
		if err != nil {
			c.log.Warn("exact encoding failed, falling back to estimate",
				"model", m.ID, "encoding", m.Encoding, "error", err)
			return Estimate(text)
		}
		return n

	default:
		return Estimate(text)
	}
}

// exactCount runs the model's tiktoken encoding and applies the
// calibration scale.
func (c *Counter) exactCount(text string, m *registry.Model) (n int, err error) {
	enc, err := encoderFor(m.Encoding)
	if err != nil {
		return 0, err
	}

	// tiktoken panics rather than erroring on some malformed input;
	// treat that the same as an encoder error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("encode with %s: %v", m.Encoding, r)
		}
	}()

	raw := len(enc.Encode(text, nil, nil))
	return int(math.Ceil(float64(raw) * m.Scale)), nil
}

// Estimate is the universal heuristic: ceil(characters / 4). It is the
// fallback for unknown models and encoder failures.
func Estimate(text string) int {
	return ceilDiv(utf8.RuneCountInString(text), DefaultCharsPerToken)
}

func ceilDiv(n int, divisor float64) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(float64(n) / divisor))
}
