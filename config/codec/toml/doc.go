// Package toml provides a TOML codec implementation for the config package.
//
// This package uses github.com/pelletier/go-toml/v2. Tables decode to
// map[string]any, arrays to []any and integers to int64.
//
// TOML has no null. Encode fails with ErrNilValue, naming the path, when the
// tree holds nil anywhere, including the nil elements that config.Config.Set
// pads a sequence with when indexing past its end. Nothing is dropped
// silently.
package toml
