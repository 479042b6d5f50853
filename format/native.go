package format

import (
	"fmt"
	"time"

	hplist "howett.net/plist"

	"github.com/feather-lang/plist"
)

// toNative converts v into the types howett.net/plist marshals.
func toNative(v plist.Value) (any, error) {
	switch val := v.(type) {
	case plist.Bool:
		return bool(val), nil
	case plist.Integer:
		if val.Negative() {
			n, _ := val.Signed()
			return n, nil
		}
		n, _ := val.Unsigned()
		return n, nil
	case plist.Real:
		return float64(val), nil
	case plist.String:
		return string(val), nil
	case plist.Data:
		return []byte(val), nil
	case plist.Date:
		return val.Time(), nil
	case plist.UID:
		return hplist.UID(val), nil
	case plist.Array:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := toNative(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case *plist.Dict:
		out := make(map[string]any, val.Len())
		for k, item := range val.All() {
			n, err := toNative(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unsupported value %T", plist.ErrFormat, v)
}

// fromNative converts a value decoded by howett.net/plist. Dictionaries
// come back with sorted keys since the decoder yields Go maps.
func fromNative(v any) (plist.Value, error) {
	switch val := v.(type) {
	case bool:
		return plist.Bool(val), nil
	case int64:
		return plist.Int(val), nil
	case uint64:
		return plist.Uint(val), nil
	case float64:
		return plist.Real(val), nil
	case float32:
		return plist.Real(float64(val)), nil
	case string:
		return plist.String(val), nil
	case []byte:
		return append(plist.Data{}, val...), nil
	case time.Time:
		return plist.Date(val.UTC()), nil
	case hplist.UID:
		return plist.UID(val), nil
	case []any:
		out := make(plist.Array, len(val))
		for i, item := range val {
			n, err := fromNative(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := plist.NewDict()
		for k, item := range val {
			n, err := fromNative(item)
			if err != nil {
				return nil, err
			}
			out.Set(k, n)
		}
		out.SortKeys()
		return out, nil
	}
	return nil, fmt.Errorf("%w: unexpected decoded type %T", plist.ErrParse, v)
}
