package config

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// ErrInvalidSet is returned when Set is called without a key to assign to.
var ErrInvalidSet = errors.New("config: Set accepts a mapping or key(s) and value")

// ErrIndexOutOfRange is returned when a negative sequence index points before the first element.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrInvalidPath is returned by ParsePath for malformed textual paths.
var ErrInvalidPath = errors.New("invalid path")

// Store persists a whole tree to a single location.
type Store interface {
	Path() string
	Read() (map[string]any, error)
	Write(tree map[string]any) error
}

// Codec converts between encoded bytes and a tree.
type Codec interface {
	Decode(data []byte) (map[string]any, error)
	Encode(tree map[string]any) ([]byte, error)
}

// ParseError reports a file whose contents could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config file %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Config is a path-addressable view over a tree loaded lazily from a Store.
//
// The tree is read from the Store on first access and kept in memory;
// mutations are not written back until Persist. Two Configs over the same
// file do not see each other's changes, and the last Persist wins. Call
// Load to re-read the Store explicitly.
//
// Values decoded from a YAML alias share the anchored node: after loading
// "prod: *base", setting prod:host also changes base:host, and Persist
// writes both copies.
//
// A Config is not safe for concurrent use.
type Config struct {
	store    Store
	defaults map[string]any
	logger   *slog.Logger
	tree     map[string]any
}

// Option configures a Config.
type Option func(*Config)

// WithDefaults sets values merged over the stored tree on load.
// The merge is shallow: a default replaces the whole top-level value it
// collides with, nested mappings are not merged.
func WithDefaults(defaults map[string]any) Option {
	return func(c *Config) {
		c.defaults = defaults
	}
}

// WithLogger sets the logger used for load and persist events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

// New creates a Config over store. No I/O happens until first access.
func New(store Store, opts ...Option) *Config {
	cfg := &Config{store: store}

	for _, apply := range opts {
		apply(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return cfg
}

// Path returns the location of the underlying Store.
func (c *Config) Path() string {
	return c.store.Path()
}

// Load reads the Store, merges the defaults on top and replaces the
// in-memory tree, discarding unsaved changes.
func (c *Config) Load() error {
	tree, err := c.store.Read()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if tree == nil {
		tree = make(map[string]any)
	}

	canonicalize(tree)

	for key, value := range c.defaults {
		tree[key] = normalize(value)
	}

	c.tree = tree

	c.logger.Debug("config loaded",
		slog.String("path", c.store.Path()),
		slog.Int("keys", len(tree)),
	)

	return nil
}

func (c *Config) ensureLoaded() error {
	if c.tree != nil {
		return nil
	}

	return c.Load()
}

// Get returns the value at path. Mappings are looked up by key and
// sequences by position; found is false when any segment is missing or
// steps into a scalar. An empty path returns the whole tree.
func (c *Config) Get(path ...Key) (value any, found bool, err error) {
	err = c.ensureLoaded()
	if err != nil {
		return nil, false, err
	}

	value, found = lookup(c.tree, path)

	return value, found, nil
}

// Set assigns value at path and returns the tree.
//
// Missing intermediate keys are created as mappings. An intermediate value
// that is not a container, or a sequence addressed by name, is replaced
// with a new mapping, losing its previous contents. Indexing past the end
// of a sequence grows it with nil elements.
func (c *Config) Set(path Path, value any) (map[string]any, error) {
	if len(path) == 0 {
		return nil, ErrInvalidSet
	}

	err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}

	_, err = assign(c.tree, path, normalize(value))
	if err != nil {
		return nil, fmt.Errorf("setting %q: %w", path.String(), err)
	}

	return c.tree, nil
}

// Merge copies values into the top level of the tree, replacing keys that
// already exist, and returns the tree.
func (c *Config) Merge(values map[string]any) (map[string]any, error) {
	err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}

	for key, value := range values {
		c.tree[key] = normalize(value)
	}

	return c.tree, nil
}

// Delete removes a top-level key. Deleting a missing key is a no-op.
func (c *Config) Delete(key string) error {
	err := c.ensureLoaded()
	if err != nil {
		return err
	}

	delete(c.tree, key)

	return nil
}

// Has reports whether key is present at the top level.
func (c *Config) Has(key string) (bool, error) {
	err := c.ensureLoaded()
	if err != nil {
		return false, err
	}

	_, ok := c.tree[key]

	return ok, nil
}

// All returns an iterator over top-level entries in key order.
// Values are read when the iterator runs.
func (c *Config) All() (iter.Seq2[string, any], error) {
	err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}

	return func(yield func(string, any) bool) {
		for _, key := range slices.Sorted(maps.Keys(c.tree)) {
			value, ok := c.tree[key]
			if !ok {
				continue
			}

			if !yield(key, value) {
				return
			}
		}
	}, nil
}

// Len returns the number of top-level keys.
func (c *Config) Len() (int, error) {
	err := c.ensureLoaded()
	if err != nil {
		return 0, err
	}

	return len(c.tree), nil
}

// Empty discards the in-memory tree without touching the Store.
// The Config stays loaded and is not re-read on next access.
func (c *Config) Empty() {
	c.tree = make(map[string]any)

	c.logger.Debug("config emptied", slog.String("path", c.store.Path()))
}

// Persist writes the whole tree to the Store, replacing its contents.
func (c *Config) Persist() error {
	err := c.ensureLoaded()
	if err != nil {
		return err
	}

	err = c.store.Write(c.tree)
	if err != nil {
		return fmt.Errorf("persisting config: %w", err)
	}

	c.logger.Debug("config persisted",
		slog.String("path", c.store.Path()),
		slog.Int("keys", len(c.tree)),
	)

	return nil
}

// Map returns a shallow copy of the tree. Nested containers are shared.
func (c *Config) Map() (map[string]any, error) {
	err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}

	return maps.Clone(c.tree), nil
}

// String renders the tree with Render. It returns an empty string if the
// tree cannot be loaded.
func (c *Config) String() string {
	err := c.ensureLoaded()
	if err != nil {
		c.logger.Error("rendering config", slog.String("path", c.store.Path()), slog.Any("error", err))

		return ""
	}

	return Render(c.tree)
}
