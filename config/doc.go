// Package config provides a path-addressable configuration tree backed by a Store.
//
// The package uses an interface-based design with two extension points:
//   - Store: reads and writes a whole tree (see config/store/file)
//   - Codec: converts between bytes and a tree (see config/codec/yaml and config/codec/toml)
//
// A tree is a map[string]any whose values are scalars, []any sequences or
// nested map[string]any mappings. Values passed to Set and Merge are copied
// into that form.
//
// # Paths
//
// Values are addressed by a Path, a list of keys. A key is either a mapping
// name or a sequence index:
//
//	cfg.Get(config.Name("servers"), config.Index(0), config.Name("host"))
//
// ParsePath accepts the same path written with colon (:) separators, where
// numeric segments become indexes:
//
//	"servers:0:host"  -> servers[0].host
//	"api:permissions" -> api.permissions
//
// # Lifecycle
//
// A Config reads its Store once, on first access, and merges the configured
// defaults over the top level. Changes stay in memory until Persist.
//
//	cfg := config.New(file.New("/home/me/.config/app/config.yml"),
//	    config.WithDefaults(map[string]any{"theme": "dark"}))
//	_, err := cfg.Set(config.Names("window", "width"), 1024)
//	err = cfg.Persist()
package config
