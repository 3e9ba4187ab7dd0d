package tree

import (
	"fmt"
	"strconv"
)

// Coerce sanitizes arbitrary nested input for use as attribute values.
//
// Maps lose entries whose value is nil, slices are coerced element-wise, and
// scalars become strings through CoerceValue. With killLists set, a slice is
// replaced by its first element (and an empty slice by nil).
func Coerce(data any, killLists bool) any {
	switch v := data.(type) {
	case nil:
		return nil
	case *string:
		if v == nil {
			return nil
		}
		return *v
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			if val == nil {
				continue
			}
			out[k] = Coerce(val, killLists)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	case []any:
		return coerceList(v, killLists)
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return coerceList(items, killLists)
	default:
		return CoerceValue(v)
	}
}

func coerceList(items []any, killLists bool) any {
	if killLists {
		if len(items) == 0 {
			return nil
		}
		// the first element is coerced without list killing
		return Coerce(items[0], false)
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = Coerce(item, false)
	}
	return out
}

// CoerceValue renders a scalar as a string. Booleans become "true" or
// "false"; floats use the shortest representation that round-trips.
func CoerceValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
