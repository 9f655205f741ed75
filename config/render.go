package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Render returns a stable, human-readable rendering of a tree value.
// Mapping keys are sorted, strings are double-quoted and nil is "null":
//
//	{one: {two: "bar"}, list: [1, true, null]}
func Render(value any) string {
	var builder strings.Builder

	render(&builder, value)

	return builder.String()
}

func render(builder *strings.Builder, value any) {
	switch typed := value.(type) {
	case nil:
		builder.WriteString("null")
	case string:
		builder.WriteString(strconv.Quote(typed))
	case map[string]any:
		builder.WriteByte('{')

		for i, key := range slices.Sorted(maps.Keys(typed)) {
			if i > 0 {
				builder.WriteString(", ")
			}

			builder.WriteString(key)
			builder.WriteString(": ")
			render(builder, typed[key])
		}

		builder.WriteByte('}')
	case []any:
		builder.WriteByte('[')

		for i, element := range typed {
			if i > 0 {
				builder.WriteString(", ")
			}

			render(builder, element)
		}

		builder.WriteByte(']')
	default:
		fmt.Fprintf(builder, "%v", typed)
	}
}
