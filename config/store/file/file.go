package file

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/0xalexb/kefir/config"
	yamlcodec "github.com/0xalexb/kefir/config/codec/yaml"

	"github.com/spf13/afero"
)

const (
	dirPerm  fs.FileMode = 0o700
	filePerm fs.FileMode = 0o600
)

// ErrPathIsDirectory is returned when the store path points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Store implements config.Store for a single file.
type Store struct {
	path  string
	codec config.Codec
	fs    afero.Fs
}

// Option configures a Store.
type Option func(*Store)

// WithCodec sets the codec used to decode and encode the file. Defaults to YAML.
func WithCodec(codec config.Codec) Option {
	return func(s *Store) {
		s.codec = codec
	}
}

// WithFs sets the filesystem the store operates on. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// New creates a Store for the file at fpath. No I/O happens here.
func New(fpath string, opts ...Option) *Store {
	store := &Store{
		path: filepath.Clean(fpath),
	}

	for _, apply := range opts {
		apply(store)
	}

	if store.codec == nil {
		store.codec = yamlcodec.NewCodec()
	}

	if store.fs == nil {
		store.fs = afero.NewOsFs()
	}

	return store
}

// Path returns the file path.
func (s *Store) Path() string {
	return s.path
}

// Read decodes the file. A missing file returns an empty tree.
func (s *Store) Read() (map[string]any, error) {
	err := s.ensureDir()
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}

		return nil, s.wrapFileError("reading file", err)
	}

	tree, err := s.codec.Decode(data)
	if err != nil {
		return nil, &config.ParseError{Path: s.path, Err: err}
	}

	if tree == nil {
		tree = map[string]any{}
	}

	return tree, nil
}

// Write encodes tree and replaces the file contents.
func (s *Store) Write(tree map[string]any) error {
	err := s.ensureDir()
	if err != nil {
		return err
	}

	data, err := s.codec.Encode(tree)
	if err != nil {
		return fmt.Errorf("encoding file %q: %w", s.path, err)
	}

	err = afero.WriteFile(s.fs, s.path, data, filePerm)
	if err != nil {
		return s.wrapFileError("writing file", err)
	}

	return nil
}

func (s *Store) ensureDir() error {
	dir := filepath.Dir(s.path)

	err := s.fs.MkdirAll(dir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating directory %q: %w", dir, err)
	}

	return nil
}

func (s *Store) wrapFileError(action string, err error) error {
	isDir, statErr := afero.IsDir(s.fs, s.path)
	if statErr == nil && isDir {
		return fmt.Errorf("%s %q: %w", action, s.path, ErrPathIsDirectory)
	}

	return fmt.Errorf("%s %q: %w", action, s.path, err)
}
