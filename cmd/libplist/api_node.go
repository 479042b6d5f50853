// api_node.go provides construction, lifetime and scalar access.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"bytes"
	"unsafe"

	"github.com/feather-lang/plist"
)

// -----------------------------------------------------------------------------
// Construction
// -----------------------------------------------------------------------------

//export plist_new_dict
func plist_new_dict() C.size_t { return C.size_t(reg.NewValue(plist.NewDict())) }

//export plist_new_array
func plist_new_array() C.size_t { return C.size_t(reg.NewValue(plist.Array{})) }

//export plist_new_bool
func plist_new_bool(val C.uint8_t) C.size_t { return C.size_t(reg.NewValue(plist.Bool(val != 0))) }

//export plist_new_uint
func plist_new_uint(val C.uint64_t) C.size_t { return C.size_t(reg.NewValue(plist.Uint(uint64(val)))) }

//export plist_new_int
func plist_new_int(val C.int64_t) C.size_t { return C.size_t(reg.NewValue(plist.Int(int64(val)))) }

//export plist_new_real
func plist_new_real(val C.double) C.size_t { return C.size_t(reg.NewValue(plist.Real(float64(val)))) }

//export plist_new_string
func plist_new_string(val *C.char) C.size_t {
	if val == nil {
		return 0
	}
	return C.size_t(reg.NewValue(plist.String(C.GoString(val))))
}

// plist_new_data returns 0 if length does not fit a Go buffer.
//
//export plist_new_data
func plist_new_data(val *C.char, length C.uint64_t) C.size_t {
	n, ok := byteLen(uint64(length))
	if !ok {
		return 0
	}
	data := plist.Data{}
	if val != nil && n > 0 {
		data = C.GoBytes(unsafe.Pointer(val), C.int(n))
	}
	return C.size_t(reg.NewValue(data))
}

//export plist_new_unix_date
func plist_new_unix_date(sec C.int64_t) C.size_t { return C.size_t(reg.NewValue(plist.Unix(int64(sec)))) }

//export plist_new_uid
func plist_new_uid(val C.uint64_t) C.size_t { return C.size_t(reg.NewValue(plist.UID(uint64(val)))) }

//export plist_new_null
func plist_new_null() C.size_t { return C.size_t(reg.NewValue(plist.Null())) }

// -----------------------------------------------------------------------------
// Lifetime
// -----------------------------------------------------------------------------

//export plist_free
func plist_free(node C.size_t) C.int {
	_, err := reg.Free(handle(node))
	return code(err)
}

//export plist_copy
func plist_copy(node C.size_t) C.size_t {
	h, err := reg.Copy(handle(node))
	if err != nil {
		return 0
	}
	return C.size_t(h)
}

//export plist_get_node_type
func plist_get_node_type(node C.size_t) C.int { return C.int(reg.Kind(handle(node))) }

//export plist_get_parent
func plist_get_parent(node C.size_t) C.size_t {
	h, err := reg.Parent(handle(node))
	if err != nil {
		return 0
	}
	return C.size_t(h)
}

// -----------------------------------------------------------------------------
// Getters
// -----------------------------------------------------------------------------

func valueOf(node C.size_t) plist.Value {
	v, err := reg.Value(handle(node))
	if err != nil {
		return nil
	}
	return v
}

//export plist_get_bool_val
func plist_get_bool_val(node C.size_t, val *C.uint8_t) {
	if b, err := plist.AsBool(valueOf(node)); err == nil && b {
		*val = 1
	} else {
		*val = 0
	}
}

//export plist_get_uint_val
func plist_get_uint_val(node C.size_t, val *C.uint64_t) {
	u, _ := plist.CoerceUint(valueOf(node))
	*val = C.uint64_t(u)
}

//export plist_get_int_val
func plist_get_int_val(node C.size_t, val *C.int64_t) {
	i, _ := plist.CoerceInt(valueOf(node))
	*val = C.int64_t(i)
}

//export plist_get_real_val
func plist_get_real_val(node C.size_t, val *C.double) {
	f, _ := plist.AsReal(valueOf(node))
	*val = C.double(f)
}

//export plist_get_string_val
func plist_get_string_val(node C.size_t, val **C.char) {
	s, err := plist.AsString(valueOf(node))
	if err != nil {
		*val = nil
		return
	}
	export([]byte(s), val, nil)
}

//export plist_get_key_val
func plist_get_key_val(node C.size_t, val **C.char) {
	k, err := reg.ItemKey(handle(node))
	if err != nil {
		*val = nil
		return
	}
	export([]byte(k), val, nil)
}

//export plist_get_data_val
func plist_get_data_val(node C.size_t, val **C.char, length *C.uint64_t) {
	d, err := plist.AsData(valueOf(node))
	if err != nil {
		*val, *length = nil, 0
		return
	}
	export(d, val, nil)
	*length = C.uint64_t(len(d))
}

//export plist_get_unix_date_val
func plist_get_unix_date_val(node C.size_t, sec *C.int64_t) {
	s, _ := plist.AsUnixDate(valueOf(node))
	*sec = C.int64_t(s)
}

//export plist_get_uid_val
func plist_get_uid_val(node C.size_t, val *C.uint64_t) {
	u, _ := plist.AsUID(valueOf(node))
	*val = C.uint64_t(u)
}

// -----------------------------------------------------------------------------
// Setters
// -----------------------------------------------------------------------------

func set(node C.size_t, v plist.Value) C.int { return code(reg.Set(handle(node), v)) }

//export plist_set_bool_val
func plist_set_bool_val(node C.size_t, val C.uint8_t) C.int { return set(node, plist.Bool(val != 0)) }

//export plist_set_uint_val
func plist_set_uint_val(node C.size_t, val C.uint64_t) C.int { return set(node, plist.Uint(uint64(val))) }

//export plist_set_int_val
func plist_set_int_val(node C.size_t, val C.int64_t) C.int { return set(node, plist.Int(int64(val))) }

//export plist_set_real_val
func plist_set_real_val(node C.size_t, val C.double) C.int { return set(node, plist.Real(float64(val))) }

//export plist_set_string_val
func plist_set_string_val(node C.size_t, val *C.char) C.int {
	if val == nil {
		return codeInvalid
	}
	return set(node, plist.String(C.GoString(val)))
}

//export plist_set_data_val
func plist_set_data_val(node C.size_t, val *C.char, length C.uint64_t) C.int {
	n, ok := byteLen(uint64(length))
	if !ok {
		return codeInvalid
	}
	data := plist.Data{}
	if val != nil && n > 0 {
		data = C.GoBytes(unsafe.Pointer(val), C.int(n))
	}
	return set(node, data)
}

//export plist_set_unix_date_val
func plist_set_unix_date_val(node C.size_t, sec C.int64_t) C.int { return set(node, plist.Unix(int64(sec))) }

// Keys are strings in this model.
//
//export plist_set_key_val
func plist_set_key_val(node C.size_t, val *C.char) C.int { return plist_set_string_val(node, val) }

//export plist_set_uid_val
func plist_set_uid_val(node C.size_t, val C.uint64_t) C.int { return set(node, plist.UID(uint64(val))) }

// -----------------------------------------------------------------------------
// Comparison
// -----------------------------------------------------------------------------

//export plist_compare_node_value
func plist_compare_node_value(a, b C.size_t) C.int {
	va, vb := valueOf(a), valueOf(b)
	if va == nil || vb == nil || !plist.Equal(va, vb) {
		return 0
	}
	return 1
}

//export plist_bool_val_is_true
func plist_bool_val_is_true(node C.size_t) C.int {
	if b, err := plist.AsBool(valueOf(node)); err == nil && b {
		return 1
	}
	return 0
}

//export plist_int_val_is_negative
func plist_int_val_is_negative(node C.size_t) C.int {
	if i, ok := valueOf(node).(plist.Integer); ok && i.Negative() {
		return 1
	}
	return 0
}

// cmpResult maps a failed comparison to -1, as libplist does.
func cmpResult(c int, err error) C.int {
	if err != nil {
		return -1
	}
	return C.int(c)
}

//export plist_int_val_compare
func plist_int_val_compare(node C.size_t, cmpval C.int64_t) C.int {
	return cmpResult(plist.CompareInt(valueOf(node), int64(cmpval)))
}

//export plist_uint_val_compare
func plist_uint_val_compare(node C.size_t, cmpval C.uint64_t) C.int {
	return cmpResult(plist.CompareUint(valueOf(node), uint64(cmpval)))
}

//export plist_uid_val_compare
func plist_uid_val_compare(node C.size_t, cmpval C.uint64_t) C.int {
	return cmpResult(plist.CompareUID(valueOf(node), uint64(cmpval)))
}

//export plist_real_val_compare
func plist_real_val_compare(node C.size_t, cmpval C.double) C.int {
	return cmpResult(plist.CompareReal(valueOf(node), float64(cmpval)))
}

//export plist_unix_date_val_compare
func plist_unix_date_val_compare(node C.size_t, cmpval C.int64_t) C.int {
	return cmpResult(plist.CompareUnixDate(valueOf(node), int64(cmpval)))
}

//export plist_string_val_compare
func plist_string_val_compare(node C.size_t, cmpval *C.char) C.int {
	return cmpResult(plist.CompareString(valueOf(node), C.GoString(cmpval)))
}

//export plist_date_val_compare
func plist_date_val_compare(node C.size_t, sec C.int64_t) C.int {
	return plist_unix_date_val_compare(node, sec)
}

// plist_string_val_compare_with_size compares at most n leading bytes.
//
//export plist_string_val_compare_with_size
func plist_string_val_compare_with_size(node C.size_t, cmpval *C.char, n C.size_t) C.int {
	s, err := plist.AsString(valueOf(node))
	if err != nil || cmpval == nil {
		return -1
	}
	x, y := prefix([]byte(s), int(n)), prefix([]byte(C.GoString(cmpval)), int(n))
	return C.int(bytes.Compare(x, y))
}

//export plist_key_val_compare
func plist_key_val_compare(node C.size_t, cmpval *C.char) C.int {
	return plist_string_val_compare(node, cmpval)
}

//export plist_key_val_compare_with_size
func plist_key_val_compare_with_size(node C.size_t, cmpval *C.char, n C.size_t) C.int {
	return plist_string_val_compare_with_size(node, cmpval, n)
}

//export plist_key_val_contains
func plist_key_val_contains(node C.size_t, substr *C.char) C.int {
	return plist_string_val_contains(node, substr)
}

// plist_data_val_compare orders data bytewise; a non-data node compares
// as -1.
//
//export plist_data_val_compare
func plist_data_val_compare(node C.size_t, cmpval *C.uint8_t, n C.size_t) C.int {
	d, err := plist.AsData(valueOf(node))
	size, ok := byteLen(uint64(n))
	if err != nil || !ok {
		return -1
	}
	return C.int(bytes.Compare(d, C.GoBytes(unsafe.Pointer(cmpval), C.int(size))))
}

// plist_data_val_compare_with_size compares at most n leading bytes.
//
//export plist_data_val_compare_with_size
func plist_data_val_compare_with_size(node C.size_t, cmpval *C.uint8_t, n C.size_t) C.int {
	d, err := plist.AsData(valueOf(node))
	size, ok := byteLen(uint64(n))
	if err != nil || !ok {
		return -1
	}
	return C.int(bytes.Compare(prefix(d, size), C.GoBytes(unsafe.Pointer(cmpval), C.int(size))))
}

func prefix(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

//export plist_string_val_contains
func plist_string_val_contains(node C.size_t, substr *C.char) C.int {
	if ok, _ := plist.StringContains(valueOf(node), C.GoString(substr)); ok {
		return 1
	}
	return 0
}

//export plist_data_val_contains
func plist_data_val_contains(node C.size_t, cmpval *C.char, n C.size_t) C.int {
	size, ok := byteLen(uint64(n))
	if !ok {
		return 0
	}
	if ok, _ := plist.DataContains(valueOf(node), C.GoBytes(unsafe.Pointer(cmpval), C.int(size))); ok {
		return 1
	}
	return 0
}
