package config

import (
	"fmt"
	"math"
	"reflect"
)

// lookup walks node along path. Mappings are indexed by key name, sequences
// by position. Anything else along the way ends the walk as not found.
func lookup(node any, path Path) (any, bool) {
	current := node

	for _, key := range path {
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[key.String()]
			if !ok {
				return nil, false
			}

			current = next
		case []any:
			index, isIndex := key.Index()
			if !isIndex {
				return nil, false
			}

			position, ok := resolveIndex(index, len(typed))
			if !ok || position >= len(typed) {
				return nil, false
			}

			current = typed[position]
		default:
			return nil, false
		}
	}

	return current, true
}

// assign stores value at path below node and returns the node that should
// replace it in its parent. Mappings are mutated in place. Sequences grow
// when indexed past their end. Scalars, nil and sequences addressed by name
// are replaced with a new mapping.
func assign(node any, path Path, value any) (any, error) {
	if len(path) == 0 {
		return value, nil
	}

	key, rest := path[0], path[1:]

	switch typed := node.(type) {
	case map[string]any:
		child, err := assign(typed[key.String()], rest, value)
		if err != nil {
			return nil, err
		}

		typed[key.String()] = child

		return typed, nil
	case []any:
		if index, isIndex := key.Index(); isIndex {
			position, ok := resolveIndex(index, len(typed))
			if !ok {
				return nil, fmt.Errorf("%w: index %d for sequence of length %d", ErrIndexOutOfRange, index, len(typed))
			}

			if position >= len(typed) {
				typed = append(typed, make([]any, position-len(typed)+1)...)
			}

			child, err := assign(typed[position], rest, value)
			if err != nil {
				return nil, err
			}

			typed[position] = child

			return typed, nil
		}
	}

	child, err := assign(nil, rest, value)
	if err != nil {
		return nil, err
	}

	return map[string]any{key.String(): child}, nil
}

// resolveIndex maps a possibly negative index onto a position. The returned
// position may be past the end of the sequence; negative indexes that do not
// land inside it are rejected.
func resolveIndex(index, length int) (int, bool) {
	if index >= 0 {
		return index, true
	}

	position := length + index
	if position < 0 {
		return 0, false
	}

	return position, true
}

// normalize converts arbitrary Go values into tree form: maps become
// map[string]any and slices or arrays become []any, recursively. Containers
// are always copied. Integers become int64, except unsigned values above
// math.MaxInt64 which stay uint64, and floats become float64, so a tree
// compares equal before and after a round trip through a Codec.
func normalize(value any) any {
	switch typed := value.(type) {
	case nil, string, bool, []byte, int64, float64:
		return typed
	case map[string]any:
		result := make(map[string]any, len(typed))
		for key, element := range typed {
			result[key] = normalize(element)
		}

		return result
	case []any:
		result := make([]any, len(typed))
		for i, element := range typed {
			result[i] = normalize(element)
		}

		return result
	}

	reflected := reflect.ValueOf(value)

	switch reflected.Kind() {
	case reflect.Map:
		result := make(map[string]any, reflected.Len())

		iter := reflected.MapRange()
		for iter.Next() {
			result[mapKeyString(iter.Key())] = normalize(iter.Value().Interface())
		}

		return result
	case reflect.Slice, reflect.Array:
		result := make([]any, reflected.Len())
		for i := range reflected.Len() {
			result[i] = normalize(reflected.Index(i).Interface())
		}

		return result
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflected.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		unsigned := reflected.Uint()
		if unsigned > math.MaxInt64 {
			return unsigned
		}

		return int64(unsigned)
	case reflect.Float32, reflect.Float64:
		return reflected.Float()
	default:
		return value
	}
}

// canonicalize applies normalize to the scalars of a decoded tree in place.
// Containers keep their identity, so a mapping or sequence reached through
// several keys, as YAML aliases decode, stays shared.
func canonicalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, element := range typed {
			typed[key] = canonicalize(element)
		}

		return typed
	case []any:
		for i, element := range typed {
			typed[i] = canonicalize(element)
		}

		return typed
	default:
		return normalize(value)
	}
}

func mapKeyString(key reflect.Value) string {
	if key.Kind() == reflect.String {
		return key.String()
	}

	return fmt.Sprint(key.Interface())
}
