package registry

import (
	"errors"
	"fmt"
)

// Strategy selects how a model's token count is computed.
type Strategy string

// Counting strategies.
const (
	// StrategyExact delegates to a sub-word encoder (tiktoken) and applies
	// the model's Scale as a calibration multiplier on the raw count.
	StrategyExact Strategy = "exact"

	// StrategyApprox divides the text's character length by Scale, which
	// is then read as "characters per token".
	StrategyApprox Strategy = "approx"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyExact || s == StrategyApprox
}

// Model describes one catalogue entry. Models are immutable; the registry
// hands out copies.
type Model struct {
	// ID is the unique, stable identifier used for lookup and persistence.
	ID string `toml:"id" json:"id"`

	// Name is the human-readable display name.
	Name string `toml:"name" json:"name"`

	// Provider groups models for display ("OpenAI", "Anthropic", ...).
	Provider string `toml:"provider" json:"provider"`

	// Strategy selects exact encoding or character approximation.
	Strategy Strategy `toml:"strategy" json:"strategy"`

	// Encoding names the tiktoken encoding to use. Only meaningful when
	// Strategy is StrategyExact.
	Encoding string `toml:"encoding,omitempty" json:"encoding,omitempty"`

	// Scale must be > 0. For StrategyExact it multiplies the raw encoder
	// count (1.0 for a native encoding, >1.0 when a donor vocabulary
	// under-counts for this model). For StrategyApprox it is the average
	// characters per token.
	Scale float64 `toml:"scale" json:"scale"`

	// ContextLimit is the model's context window in tokens. Zero means
	// the limit is unknown and classification always reports ok.
	ContextLimit int `toml:"context,omitempty" json:"context,omitempty"`
}

// Sentinel errors for catalogue validation.
var (
	// ErrDuplicateID indicates two catalogue entries share an id.
	ErrDuplicateID = errors.New("duplicate model id")

	// ErrInvalidScale indicates a model's scale is zero or negative.
	ErrInvalidScale = errors.New("model scale must be positive")

	// ErrMissingEncoding indicates an exact-strategy model without an
	// encoding name.
	ErrMissingEncoding = errors.New("exact model missing encoding")

	// ErrInvalidStrategy indicates an unknown counting strategy.
	ErrInvalidStrategy = errors.New("unknown counting strategy")

	// ErrEmptyCatalog indicates a catalogue with no models.
	ErrEmptyCatalog = errors.New("catalog contains no models")
)

// Registry is an immutable, ordered collection of models.
type Registry struct {
	models []Model
	byID   map[string]int
}

// New builds a registry from the given models, preserving their order.
// The models are validated: ids must be unique, scales positive, exact
// models must name an encoding.
func New(models []Model) (*Registry, error) {
	if len(models) == 0 {
		return nil, ErrEmptyCatalog
	}

	byID := make(map[string]int, len(models))
	for i, m := range models {
		if err := validate(m); err != nil {
			return nil, err
		}
		if _, exists := byID[m.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, m.ID)
		}
		byID[m.ID] = i
	}

	return &Registry{
		models: append([]Model(nil), models...),
		byID:   byID,
	}, nil
}

func validate(m Model) error {
	if !m.Strategy.Valid() {
		return fmt.Errorf("%w: %s (model %s)", ErrInvalidStrategy, m.Strategy, m.ID)
	}
	if m.Scale <= 0 {
		return fmt.Errorf("%w: %s has scale %g", ErrInvalidScale, m.ID, m.Scale)
	}
	if m.Strategy == StrategyExact && m.Encoding == "" {
		return fmt.Errorf("%w: %s", ErrMissingEncoding, m.ID)
	}
	return nil
}

// Models returns all models in catalogue order. The slice is a copy.
func (r *Registry) Models() []Model {
	return append([]Model(nil), r.models...)
}

// Lookup returns the model with the given id.
func (r *Registry) Lookup(id string) (Model, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Model{}, false
	}
	return r.models[i], true
}

// Len returns the number of models in the registry.
func (r *Registry) Len() int {
	return len(r.models)
}

// Providers returns provider names in first-appearance order.
func (r *Registry) Providers() []string {
	seen := make(map[string]bool, 8)
	var providers []string
	for _, m := range r.models {
		if !seen[m.Provider] {
			seen[m.Provider] = true
			providers = append(providers, m.Provider)
		}
	}
	return providers
}

// ByProvider returns the models belonging to one provider, in catalogue
// order.
func (r *Registry) ByProvider(provider string) []Model {
	var models []Model
	for _, m := range r.models {
		if m.Provider == provider {
			models = append(models, m)
		}
	}
	return models
}

// WithOverrides layers extra models over this registry: entries with a
// known id replace the original in place, new ids are appended. The
// receiver is not modified.
func (r *Registry) WithOverrides(overrides []Model) (*Registry, error) {
	merged := append([]Model(nil), r.models...)
	index := make(map[string]int, len(merged))
	for i, m := range merged {
		index[m.ID] = i
	}
	for _, m := range overrides {
		if i, ok := index[m.ID]; ok {
			merged[i] = m
		} else {
			index[m.ID] = len(merged)
			merged = append(merged, m)
		}
	}
	return New(merged)
}
