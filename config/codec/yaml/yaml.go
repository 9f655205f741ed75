package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrNotMapping is returned when a document's top level is not a mapping.
var ErrNotMapping = errors.New("top level of document is not a mapping")

// Codec implements config.Codec for YAML data.
type Codec struct{}

// NewCodec creates a new YAML codec instance.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode parses a YAML document into a tree.
func (c *Codec) Decode(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var document any

	err := yaml.Unmarshal(data, &document)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	switch tree := document.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return tree, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, document)
	}
}

// Encode serializes a tree as a YAML document.
func (c *Codec) Encode(tree map[string]any) ([]byte, error) {
	if tree == nil {
		tree = map[string]any{}
	}

	data, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// ParseValue parses a single YAML value. Blank input is returned unchanged
// as a string.
func ParseValue(input string) (any, error) {
	if strings.TrimSpace(input) == "" {
		return input, nil
	}

	var value any

	err := yaml.Unmarshal([]byte(input), &value)
	if err != nil {
		return nil, fmt.Errorf("parsing value %q: %w", input, err)
	}

	return value, nil
}

// FormatValue renders a single value as YAML without a trailing newline.
func FormatValue(value any) (string, error) {
	data, err := yaml.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshal error: %w", err)
	}

	return strings.TrimSuffix(string(data), "\n"), nil
}
