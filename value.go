package plist

import (
	"bytes"
	"math"
	"strconv"
	"time"
)

// Kind is the node kind of a value. Values match libplist's plist_type.
type Kind int

const (
	KindNone Kind = iota - 1
	KindBoolean
	KindInt
	KindReal
	KindString
	KindArray
	KindDict
	KindDate
	KindData
	KindKey
	KindUID
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInt:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	case KindDate:
		return "date"
	case KindData:
		return "data"
	case KindKey:
		return "key"
	case KindUID:
		return "uid"
	case KindNull:
		return "null"
	default:
		return "none"
	}
}

// Value is a detached property-list value.
// Implementations are Bool, Integer, Real, String, Data, Date, UID, Array and *Dict.
type Value interface {
	Kind() Kind
	isValue()
}

// Bool is a boolean value.
type Bool bool

// Real is a floating-point value.
type Real float64

// String is a UTF-8 string value.
type String string

// Data is a byte blob.
type Data []byte

// Date is a timestamp.
type Date time.Time

// UID is a keyed-archiver unique identifier.
type UID uint64

// Array is an ordered sequence of values.
type Array []Value

func (Bool) Kind() Kind    { return KindBoolean }
func (Integer) Kind() Kind { return KindInt }
func (Real) Kind() Kind    { return KindReal }
func (String) Kind() Kind  { return KindString }
func (Data) Kind() Kind    { return KindData }
func (Date) Kind() Kind    { return KindDate }
func (UID) Kind() Kind     { return KindUID }
func (Array) Kind() Kind   { return KindArray }

func (Bool) isValue()    {}
func (Integer) isValue() {}
func (Real) isValue()    {}
func (String) isValue()  {}
func (Data) isValue()    {}
func (Date) isValue()    {}
func (UID) isValue()     {}
func (Array) isValue()   {}

// Integer holds a 64-bit integer that remembers whether it was negative,
// so the full range of both int64 and uint64 is representable.
type Integer struct {
	bits uint64
	neg  bool
}

// Int returns an Integer holding a signed value.
func Int(i int64) Integer {
	return Integer{bits: uint64(i), neg: i < 0}
}

// Uint returns an Integer holding an unsigned value.
func Uint(u uint64) Integer {
	return Integer{bits: u}
}

// Signed returns the value as int64. ok is false when it does not fit.
func (i Integer) Signed() (v int64, ok bool) {
	if i.neg || i.bits <= math.MaxInt64 {
		return int64(i.bits), true
	}
	return 0, false
}

// Unsigned returns the value as uint64. ok is false for negative values.
func (i Integer) Unsigned() (v uint64, ok bool) {
	if i.neg {
		return 0, false
	}
	return i.bits, true
}

// Negative reports whether the value is below zero.
func (i Integer) Negative() bool { return i.neg }

// Cmp returns -1, 0 or +1 comparing i with j.
func (i Integer) Cmp(j Integer) int {
	switch {
	case i.neg && !j.neg:
		return -1
	case !i.neg && j.neg:
		return 1
	case i.neg:
		return cmp64(int64(i.bits), int64(j.bits))
	}
	switch {
	case i.bits < j.bits:
		return -1
	case i.bits > j.bits:
		return 1
	}
	return 0
}

func (i Integer) String() string {
	if i.neg {
		return strconv.FormatInt(int64(i.bits), 10)
	}
	return strconv.FormatUint(i.bits, 10)
}

func cmp64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Unix returns a Date for the given Unix time in seconds.
func Unix(sec int64) Date {
	return Date(time.Unix(sec, 0).UTC())
}

// Time returns the date as a time.Time.
func (d Date) Time() time.Time { return time.Time(d) }

// Null returns the stand-in for a null value: an empty Data blob.
func Null() Value { return Data{} }

// validValue fails with ErrInvalidArgument if v or any element below it
// is nil.
func validValue(v Value) error {
	switch val := v.(type) {
	case nil:
		return ErrInvalidArgument
	case Array:
		for _, item := range val {
			if err := validValue(item); err != nil {
				return err
			}
		}
	case *Dict:
		for _, item := range val.All() {
			if err := validValue(item); err != nil {
				return err
			}
		}
	}
	return nil
}

// Copy returns a deep copy of v.
func Copy(v Value) Value {
	switch val := v.(type) {
	case Data:
		return append(Data{}, val...)
	case Array:
		out := make(Array, len(val))
		for i, item := range val {
			out[i] = Copy(item)
		}
		return out
	case *Dict:
		return val.Clone()
	default:
		return v
	}
}

// Equal reports whether a and b are structurally equal. Dictionary key
// order is ignored and integers compare by numeric value.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Data:
		return bytes.Equal(x, b.(Data))
	case Date:
		return x.Time().Equal(b.(Date).Time())
	case Integer:
		return x.Cmp(b.(Integer)) == 0
	case Array:
		y := b.(Array)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Dict:
		y := b.(*Dict)
		if x.Len() != y.Len() {
			return false
		}
		for k, v := range x.All() {
			w, ok := y.Get(k)
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
