package plist

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// CoerceBool reads v as a boolean. Accepted, in order: a boolean; a
// one-byte blob (0 is false); an integer (below 1 is false); the strings
// "true" and "false" in any case.
func CoerceBool(v Value) (bool, error) {
	switch val := v.(type) {
	case Bool:
		return bool(val), nil
	case Data:
		if len(val) != 1 {
			return false, ErrNoCoercion
		}
		return val[0] >= 1, nil
	case Integer:
		return !val.neg && val.bits >= 1, nil
	case String:
		switch strings.ToLower(string(val)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, ErrNoCoercion
}

// CoerceInt reads v as a signed integer. Accepted: an integer (unsigned
// values are reinterpreted); a 1, 2, 4 or 8 byte little-endian blob; a
// decimal string, falling back to hexadecimal.
func CoerceInt(v Value) (int64, error) {
	switch val := v.(type) {
	case Integer:
		return int64(val.bits), nil
	case Data:
		switch len(val) {
		case 1:
			return int64(val[0]), nil
		case 2:
			return int64(int16(binary.LittleEndian.Uint16(val))), nil
		case 4:
			return int64(int32(binary.LittleEndian.Uint32(val))), nil
		case 8:
			return int64(binary.LittleEndian.Uint64(val)), nil
		}
	case String:
		s := string(val)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if n, err := strconv.ParseInt(trimHexPrefix(s), 16, 64); err == nil {
			return n, nil
		}
	}
	return 0, ErrNoCoercion
}

// CoerceUint is the unsigned counterpart of CoerceInt. Negative integers
// are reinterpreted.
func CoerceUint(v Value) (uint64, error) {
	switch val := v.(type) {
	case Integer:
		return val.bits, nil
	case Data:
		switch len(val) {
		case 1:
			return uint64(val[0]), nil
		case 2:
			return uint64(binary.LittleEndian.Uint16(val)), nil
		case 4:
			return uint64(binary.LittleEndian.Uint32(val)), nil
		case 8:
			return binary.LittleEndian.Uint64(val), nil
		}
	case String:
		s := string(val)
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return n, nil
		}
		if n, err := strconv.ParseUint(trimHexPrefix(s), 16, 64); err == nil {
			return n, nil
		}
	}
	return 0, ErrNoCoercion
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
