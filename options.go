package kefir

import (
	"log/slog"

	"github.com/0xalexb/kefir/config"

	"github.com/spf13/afero"
)

// DefaultConfigName is the file name used when WithConfigName is not given.
const DefaultConfigName = "config.yml"

// Resolver returns the base configuration directory for a namespace.
type Resolver func(namespace string) (string, error)

// Options holds the settings used to build a Config.
type Options struct {
	ConfigName    string
	Dir           string
	Defaults      map[string]any
	Resolver      Resolver
	Fs            afero.Fs
	Codec         config.Codec
	Logger        *slog.Logger
	LoadOnStart   bool
	PersistOnStop bool
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithConfigName sets the configuration file name. An absolute name is used
// as the full path and ignores the base directory.
func WithConfigName(name string) Option {
	return func(opts *Options) {
		opts.ConfigName = name
	}
}

// WithDir sets the base directory, bypassing the Resolver.
func WithDir(dir string) Option {
	return func(opts *Options) {
		opts.Dir = dir
	}
}

// WithDefaults sets values shallowly merged over the file contents on load.
func WithDefaults(defaults map[string]any) Option {
	return func(opts *Options) {
		opts.Defaults = defaults
	}
}

// WithResolver replaces the namespace to directory lookup.
// Defaults to paths.ConfigDir.
func WithResolver(resolver Resolver) Option {
	return func(opts *Options) {
		opts.Resolver = resolver
	}
}

// WithFs sets the filesystem the configuration file lives on.
func WithFs(fsys afero.Fs) Option {
	return func(opts *Options) {
		opts.Fs = fsys
	}
}

// WithCodec forces a codec instead of choosing one from the file extension.
func WithCodec(codec config.Codec) Option {
	return func(opts *Options) {
		opts.Codec = codec
	}
}

// WithLogger sets the logger passed to the Config.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithLoadOnStart makes Module load the file when the Fx app starts, so a
// malformed file fails startup.
func WithLoadOnStart() Option {
	return func(opts *Options) {
		opts.LoadOnStart = true
	}
}

// WithPersistOnStop makes Module persist the Config when the Fx app stops.
func WithPersistOnStop() Option {
	return func(opts *Options) {
		opts.PersistOnStop = true
	}
}
