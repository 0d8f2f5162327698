package tokens

import "github.com/randalmurphal/tokenlens/registry"

// Context-usage thresholds, in percent. These are fixed policy, not
// per-model configuration.
const (
	WarnThresholdPercent  = 80.0
	ErrorThresholdPercent = 100.0
)

// Status is the three-level context-usage classification.
type Status int

// Classification levels.
const (
	StatusOK Status = iota
	StatusWarning
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Usage describes how a token count relates to a model's context window.
// Percent and Limit are only meaningful when HasLimit is true.
type Usage struct {
	Percent  float64
	Limit    int
	HasLimit bool
	Status   Status
}

// Classify computes context-window usage for a token count. Models with
// no known limit (nil model or zero ContextLimit) always classify ok.
func Classify(tokenCount int, m *registry.Model) Usage {
	if m == nil || m.ContextLimit <= 0 {
		return Usage{Status: StatusOK}
	}

	percent := 100 * float64(tokenCount) / float64(m.ContextLimit)
	status := StatusOK
	switch {
	case percent >= ErrorThresholdPercent:
		status = StatusError
	case percent >= WarnThresholdPercent:
		status = StatusWarning
	}

	return Usage{
		Percent:  percent,
		Limit:    m.ContextLimit,
		HasLimit: true,
		Status:   status,
	}
}
