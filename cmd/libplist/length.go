package main

import "math"

// byteLen converts a caller-supplied buffer length to an int that
// C.GoBytes accepts. Lengths above MaxInt32 are refused.
func byteLen(n uint64) (int, bool) {
	if n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
