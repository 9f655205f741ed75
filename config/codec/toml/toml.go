package toml

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrNilValue is returned by Encode for a tree holding nil, which TOML
// cannot represent.
var ErrNilValue = errors.New("toml cannot encode a nil value")

// Codec implements config.Codec for TOML data.
type Codec struct{}

// NewCodec creates a new TOML codec instance.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode parses a TOML document into a tree.
func (c *Codec) Decode(data []byte) (map[string]any, error) {
	var tree map[string]any

	err := toml.Unmarshal(data, &tree)
	if err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, column := decodeErr.Position()

			return nil, fmt.Errorf("unmarshal error at line %d, column %d: %w", row, column, err)
		}

		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	if tree == nil {
		tree = map[string]any{}
	}

	return tree, nil
}

// Encode serializes a tree as a TOML document.
func (c *Codec) Encode(tree map[string]any) ([]byte, error) {
	if tree == nil {
		tree = map[string]any{}
	}

	err := findNil(tree, nil)
	if err != nil {
		return nil, err
	}

	data, err := toml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// findNil reports the first nil in value, in key order, with its
// colon-separated path.
func findNil(value any, path []string) error {
	switch typed := value.(type) {
	case nil:
		return fmt.Errorf("%w at %q", ErrNilValue, strings.Join(path, ":"))
	case map[string]any:
		for _, key := range slices.Sorted(maps.Keys(typed)) {
			err := findNil(typed[key], append(path, key))
			if err != nil {
				return err
			}
		}
	case []any:
		for i, element := range typed {
			err := findNil(element, append(path, strconv.Itoa(i)))
			if err != nil {
				return err
			}
		}
	}

	return nil
}
