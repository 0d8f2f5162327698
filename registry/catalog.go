package registry

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var builtinCatalog string

// Catalog is the on-disk shape of a model catalogue file.
type Catalog struct {
	Models []Model `toml:"models" json:"models"`
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the built-in catalogue, loading the embedded TOML on
// first use. It panics if the embedded catalogue is invalid, which only a
// build defect can cause.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(strings.NewReader(builtinCatalog))
		if err != nil {
			panic(fmt.Sprintf("registry: embedded catalog invalid: %v", err))
		}
		defaultReg = reg
	})
	return defaultReg
}

// Load parses a TOML catalogue and builds a validated registry from it.
func Load(r io.Reader) (*Registry, error) {
	var cat Catalog
	if _, err := toml.NewDecoder(r).Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(cat.Models)
}

// LoadFile reads a TOML catalogue from disk.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}
