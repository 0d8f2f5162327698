package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// PrefStore is the host's persistent key-value preference surface.
type PrefStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemPrefs is an in-memory PrefStore.
type MemPrefs struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemPrefs creates an empty in-memory store.
func NewMemPrefs() *MemPrefs {
	return &MemPrefs{values: make(map[string]string)}
}

// Get returns the stored value for key.
func (m *MemPrefs) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores a value.
func (m *MemPrefs) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// FilePrefs is a PrefStore backed by a single YAML file. The whole file
// is rewritten on every Set; preferences here are a handful of keys, not
// a database.
type FilePrefs struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// NewFilePrefs loads preferences from path. A missing file is an empty
// store, not an error.
func NewFilePrefs(path string) (*FilePrefs, error) {
	p := &FilePrefs{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	if err := yaml.Unmarshal(data, &p.values); err != nil {
		return nil, fmt.Errorf("parse prefs %s: %w", path, err)
	}
	return p, nil
}

// Get returns the stored value for key.
func (p *FilePrefs) Get(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.values[key]
	return v, ok
}

// Set stores a value and writes the file through.
func (p *FilePrefs) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values[key] = value
	data, err := yaml.Marshal(p.values)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
