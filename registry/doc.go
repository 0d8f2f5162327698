// Package registry holds the catalogue of models tokenlens knows how to
// count for.
//
// Every model is described by a Model entry: a stable id, a display name, a
// provider for grouping, and a counting strategy. Exact-strategy models name
// a tiktoken encoding and an optional calibration scale; approximation
// models carry a chars-per-token ratio instead.
//
// The built-in catalogue ships embedded in the binary as TOML and is loaded
// lazily by Default. A user-supplied catalogue in the same format can be
// loaded with LoadFile and layered over the defaults with WithOverrides:
//
//	reg := registry.Default()
//	user, err := registry.LoadFile("~/.config/tokenlens/models.toml")
//	if err == nil {
//	    reg, err = reg.WithOverrides(user.Models())
//	}
//
// CatalogSchema exposes a JSON Schema for the catalogue format so editor
// hosts can validate user catalogues before loading them.
//
// Registries are immutable after construction; the catalogue order (models
// grouped by provider in file order) is preserved for display.
package registry
