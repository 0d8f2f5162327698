package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/randalmurphal/tokenlens/registry"
)

// PrefKeySelectedModel is the preference key the selected model id is
// stored under.
const PrefKeySelectedModel = "selectedModel"

// ErrUnknownModel indicates a model id not present in the registry.
var ErrUnknownModel = errors.New("unknown model id")

// Session owns the process-wide model selection. The selection is loaded
// from the preference store once at construction and survives until
// changed by SetModel; it is the default model for every counting
// operation.
type Session struct {
	reg   *registry.Registry
	prefs PrefStore
	log   *slog.Logger

	mu      sync.RWMutex
	modelID string
}

// New creates a session over the registry. The initial selection is the
// persisted preference when it names a known model, then defaultID, then
// the registry's first model.
func New(reg *registry.Registry, prefs PrefStore, defaultID string) *Session {
	s := &Session{
		reg:   reg,
		prefs: prefs,
		log:   slog.Default(),
	}

	if stored, ok := prefs.Get(PrefKeySelectedModel); ok {
		if _, known := reg.Lookup(stored); known {
			s.modelID = stored
			return s
		}
		s.log.Warn("ignoring persisted selection of unknown model", "id", stored)
	}
	if _, known := reg.Lookup(defaultID); known {
		s.modelID = defaultID
		return s
	}
	s.modelID = reg.Models()[0].ID
	return s
}

// WithLogger sets the session's logger.
func (s *Session) WithLogger(log *slog.Logger) *Session {
	if log != nil {
		s.log = log
	}
	return s
}

// ModelID returns the selected model id.
func (s *Session) ModelID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelID
}

// Model returns the selected model.
func (s *Session) Model() *registry.Model {
	s.mu.RLock()
	id := s.modelID
	s.mu.RUnlock()

	m, ok := s.reg.Lookup(id)
	if !ok {
		return nil
	}
	return &m
}

// SetModel selects a model by id and persists the choice. Unknown ids
// are rejected and leave the selection unchanged.
func (s *Session) SetModel(id string) error {
	if _, ok := s.reg.Lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownModel, id)
	}

	s.mu.Lock()
	s.modelID = id
	s.mu.Unlock()

	if err := s.prefs.Set(PrefKeySelectedModel, id); err != nil {
		return fmt.Errorf("persist selection: %w", err)
	}
	return nil
}

// Registry returns the registry the session selects from.
func (s *Session) Registry() *registry.Registry {
	return s.reg
}
