package config

import (
	"fmt"
	"strconv"
	"strings"
)

// PathSeparator separates segments in textual paths accepted by ParsePath.
const PathSeparator = ":"

// Key is a single path segment: either a mapping key name or a sequence index.
//
// An index used against a mapping addresses the key spelled as its decimal
// value, so Index(0) on a mapping looks up "0".
type Key struct {
	name    string
	index   int
	isIndex bool
}

// Name returns a Key addressing a mapping entry.
func Name(name string) Key {
	return Key{name: name}
}

// Index returns a Key addressing a sequence position. Negative values count
// from the end of the sequence.
func Index(index int) Key {
	return Key{index: index, isIndex: true}
}

// IsIndex reports whether the key is a sequence index.
func (k Key) IsIndex() bool {
	return k.isIndex
}

// Index returns the sequence position and whether the key is an index.
func (k Key) Index() (int, bool) {
	return k.index, k.isIndex
}

// String returns the mapping key the Key addresses.
func (k Key) String() string {
	if k.isIndex {
		return strconv.Itoa(k.index)
	}

	return k.name
}

// Path is an ordered list of keys walked from the top of the tree.
type Path []Key

// Names builds a Path made only of mapping keys.
func Names(names ...string) Path {
	path := make(Path, 0, len(names))
	for _, name := range names {
		path = append(path, Name(name))
	}

	return path
}

// String joins the path with PathSeparator.
func (p Path) String() string {
	parts := make([]string, 0, len(p))
	for _, key := range p {
		parts = append(parts, key.String())
	}

	return strings.Join(parts, PathSeparator)
}

// ParsePath converts a colon-separated path into a Path.
// Segments made of digits (optionally prefixed by "-") become indexes:
//
//	"api:permissions"  -> Name("api"), Name("permissions")
//	"servers:0:host"   -> Name("servers"), Index(0), Name("host")
func ParsePath(path string) (Path, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	parts := strings.Split(path, PathSeparator)
	result := make(Path, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
		}

		if isIndexSegment(part) {
			index, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("%w: segment %q: %w", ErrInvalidPath, part, err)
			}

			result = append(result, Index(index))

			continue
		}

		result = append(result, Name(part))
	}

	return result, nil
}

func isIndexSegment(segment string) bool {
	digits := strings.TrimPrefix(segment, "-")
	if digits == "" {
		return false
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
