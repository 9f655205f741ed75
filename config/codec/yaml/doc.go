// Package yaml provides a YAML codec implementation for the config package.
//
// This package uses github.com/goccy/go-yaml. Documents must be mappings at
// the top level; an empty or null document decodes to an empty tree.
//
// Usage:
//
//	codec := yaml.NewCodec()
//	tree, err := codec.Decode([]byte("name: test-app\n"))
//	data, err := codec.Encode(tree)
//
// ParseValue and FormatValue convert single values, for example command-line
// arguments:
//   - "8080"     -> 8080
//   - "true"     -> true
//   - "[a, b]"   -> []any{"a", "b"}
//   - "hello"    -> "hello"
package yaml
