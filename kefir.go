// Package kefir stores per-application configuration in a YAML file under the
// platform's configuration directory.
//
//	cfg, err := kefir.New("my-app", kefir.WithDefaults(map[string]any{"theme": "dark"}))
//	if err != nil {
//	    return err
//	}
//	_, err = cfg.Set(config.Names("user", "name"), "bob")
//	err = cfg.Persist()
package kefir

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/0xalexb/kefir/config"
	tomlcodec "github.com/0xalexb/kefir/config/codec/toml"
	yamlcodec "github.com/0xalexb/kefir/config/codec/yaml"
	"github.com/0xalexb/kefir/config/store/file"
	"github.com/0xalexb/kefir/paths"
)

// ErrMissingNamespace is returned when no namespace is supplied.
var ErrMissingNamespace = errors.New("you must supply a namespace for your configuration files")

// New returns a Config for namespace. The file is not read until the Config
// is first used.
func New(namespace string, opts ...Option) (*config.Config, error) {
	if namespace == "" {
		return nil, ErrMissingNamespace
	}

	options := applyOptions(opts)

	path, err := resolvePath(namespace, options)
	if err != nil {
		return nil, err
	}

	codec := options.Codec
	if codec == nil {
		codec = codecFor(path)
	}

	storeOpts := []file.Option{file.WithCodec(codec)}
	if options.Fs != nil {
		storeOpts = append(storeOpts, file.WithFs(options.Fs))
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return config.New(
		file.New(path, storeOpts...),
		config.WithDefaults(options.Defaults),
		config.WithLogger(logger.With(slog.String("namespace", namespace))),
	), nil
}

func applyOptions(opts []Option) Options {
	options := Options{
		ConfigName: DefaultConfigName,
		Resolver:   paths.ConfigDir,
	}

	for _, apply := range opts {
		apply(&options)
	}

	if options.ConfigName == "" {
		options.ConfigName = DefaultConfigName
	}

	if options.Resolver == nil {
		options.Resolver = paths.ConfigDir
	}

	return options
}

func resolvePath(namespace string, options Options) (string, error) {
	if filepath.IsAbs(options.ConfigName) {
		return filepath.Clean(options.ConfigName), nil
	}

	dir := options.Dir
	if dir == "" {
		resolved, err := options.Resolver(namespace)
		if err != nil {
			return "", fmt.Errorf("resolving config directory for %q: %w", namespace, err)
		}

		dir = resolved
	}

	path, err := filepath.Abs(filepath.Join(dir, options.ConfigName))
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}

	return path, nil
}

// codecFor picks a codec from the file extension. Unknown extensions use YAML.
func codecFor(path string) config.Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tomlcodec.NewCodec()
	default:
		return yamlcodec.NewCodec()
	}
}
