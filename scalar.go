package plist

import (
	"bytes"
	"strings"
)

// Strict scalar accessors. Each fails with ErrWrongKind unless v has
// exactly the requested kind.

// AsBool returns the value of a Bool.
func AsBool(v Value) (bool, error) {
	if b, ok := v.(Bool); ok {
		return bool(b), nil
	}
	return false, ErrWrongKind
}

// AsInt returns an Integer as int64. A value above MaxInt64 fails with
// ErrNoCoercion.
func AsInt(v Value) (int64, error) {
	if i, ok := v.(Integer); ok {
		if n, ok := i.Signed(); ok {
			return n, nil
		}
		return 0, ErrNoCoercion
	}
	return 0, ErrWrongKind
}

// AsUint returns an Integer as uint64. A negative value fails with
// ErrNoCoercion.
func AsUint(v Value) (uint64, error) {
	if i, ok := v.(Integer); ok {
		if n, ok := i.Unsigned(); ok {
			return n, nil
		}
		return 0, ErrNoCoercion
	}
	return 0, ErrWrongKind
}

// AsReal returns the value of a Real.
func AsReal(v Value) (float64, error) {
	if r, ok := v.(Real); ok {
		return float64(r), nil
	}
	return 0, ErrWrongKind
}

// AsString returns the value of a String.
func AsString(v Value) (string, error) {
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return "", ErrWrongKind
}

// AsData returns a copy of the blob.
func AsData(v Value) ([]byte, error) {
	if d, ok := v.(Data); ok {
		return bytes.Clone(d), nil
	}
	return nil, ErrWrongKind
}

// AsUnixDate returns a Date as whole seconds since the Unix epoch.
func AsUnixDate(v Value) (int64, error) {
	if d, ok := v.(Date); ok {
		return d.Time().Unix(), nil
	}
	return 0, ErrWrongKind
}

// AsUID returns the value of a UID.
func AsUID(v Value) (uint64, error) {
	if u, ok := v.(UID); ok {
		return uint64(u), nil
	}
	return 0, ErrWrongKind
}

// Comparisons return -1, 0 or +1.

// CompareInt orders an Integer against x numerically.
func CompareInt(v Value, x int64) (int, error) {
	i, ok := v.(Integer)
	if !ok {
		return 0, ErrWrongKind
	}
	return i.Cmp(Int(x)), nil
}

// CompareUint orders an Integer against x numerically.
func CompareUint(v Value, x uint64) (int, error) {
	i, ok := v.(Integer)
	if !ok {
		return 0, ErrWrongKind
	}
	return i.Cmp(Uint(x)), nil
}

// CompareReal orders a Real against x.
func CompareReal(v Value, x float64) (int, error) {
	r, ok := v.(Real)
	if !ok {
		return 0, ErrWrongKind
	}
	switch {
	case float64(r) < x:
		return -1, nil
	case float64(r) > x:
		return 1, nil
	}
	return 0, nil
}

// CompareString orders a String against x bytewise.
func CompareString(v Value, x string) (int, error) {
	s, ok := v.(String)
	if !ok {
		return 0, ErrWrongKind
	}
	return strings.Compare(string(s), x), nil
}

// CompareUnixDate orders a Date against sec seconds since the epoch.
func CompareUnixDate(v Value, sec int64) (int, error) {
	d, ok := v.(Date)
	if !ok {
		return 0, ErrWrongKind
	}
	return cmp64(d.Time().Unix(), sec), nil
}

// CompareUID orders a UID against x.
func CompareUID(v Value, x uint64) (int, error) {
	u, ok := v.(UID)
	if !ok {
		return 0, ErrWrongKind
	}
	return Uint(uint64(u)).Cmp(Uint(x)), nil
}

// StringContains reports whether a String contains sub.
func StringContains(v Value, sub string) (bool, error) {
	s, ok := v.(String)
	if !ok {
		return false, ErrWrongKind
	}
	return strings.Contains(string(s), sub), nil
}

// DataContains reports whether a Data blob contains sub.
func DataContains(v Value, sub []byte) (bool, error) {
	d, ok := v.(Data)
	if !ok {
		return false, ErrWrongKind
	}
	return bytes.Contains(d, sub), nil
}
