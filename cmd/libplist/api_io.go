// api_io.go exports serialization, path access and sorting.
package main

/*
#include <stdint.h>
#include <stdio.h>

typedef struct {
	int is_key;
	const char *key;
	uint32_t index;
} plist_path_step_t;
*/
import "C"

import (
	"os"
	"unsafe"

	"github.com/feather-lang/plist"
	"github.com/feather-lang/plist/format"
)

// ------ Encoding ------

func encode(node C.size_t, f format.Format, opts format.Options, out **C.char, n *C.uint32_t) C.int {
	if out == nil || n == nil {
		return codeInvalid
	}
	*out, *n = nil, 0
	v, err := reg.Value(handle(node))
	if err != nil {
		return code(err)
	}
	buf, err := format.Encode(v, f, opts)
	if err != nil {
		return code(err)
	}
	export(buf, out, n)
	return 0
}

//export plist_to_xml
func plist_to_xml(node C.size_t, out **C.char, n *C.uint32_t) C.int {
	return encode(node, format.XML, 0, out, n)
}

//export plist_to_bin
func plist_to_bin(node C.size_t, out **C.char, n *C.uint32_t) C.int {
	return encode(node, format.Binary, 0, out, n)
}

//export plist_to_json
func plist_to_json(node C.size_t, out **C.char, n *C.uint32_t, prettify C.int) C.int {
	var opts format.Options
	if prettify != 0 {
		opts = format.Indent
	}
	return encode(node, format.JSON, opts, out, n)
}

//export plist_to_openstep
func plist_to_openstep(node C.size_t, out **C.char, n *C.uint32_t, prettify C.int) C.int {
	var opts format.Options
	if prettify == 0 {
		opts = format.Compact
	}
	return encode(node, format.OpenStep, opts, out, n)
}

//export plist_write_to_string
func plist_write_to_string(node C.size_t, out **C.char, n *C.uint32_t, f C.int, opts C.uint32_t) C.int {
	return encode(node, format.Format(f), format.Options(opts), out, n)
}

//export plist_write_to_file
func plist_write_to_file(node C.size_t, filename *C.char, f C.int, opts C.uint32_t) C.int {
	if filename == nil {
		return codeInvalid
	}
	v, err := reg.Value(handle(node))
	if err != nil {
		return code(err)
	}
	return code(format.WriteFile(C.GoString(filename), v, format.Format(f), format.Options(opts)))
}

//export plist_write_to_stream
func plist_write_to_stream(node C.size_t, stream *C.FILE, f C.int, opts C.uint32_t) C.int {
	if stream == nil {
		return codeInvalid
	}
	v, err := reg.Value(handle(node))
	if err != nil {
		return code(err)
	}
	buf, err := format.Encode(v, format.Format(f), format.Options(opts))
	if err != nil {
		return code(err)
	}
	if len(buf) == 0 {
		return 0
	}
	if C.fwrite(unsafe.Pointer(&buf[0]), 1, C.size_t(len(buf)), stream) != C.size_t(len(buf)) {
		return C.int(plist.CodeIO)
	}
	return 0
}

// plist_print writes node to stdout in the print format.
//
//export plist_print
func plist_print(node C.size_t) {
	v, err := reg.Value(handle(node))
	if err != nil {
		return
	}
	format.Write(os.Stdout, v, format.Print, 0)
}

// ------ Decoding ------

func decode(data []byte, f format.Format, out *C.size_t, got *C.int) C.int {
	if out == nil {
		return codeInvalid
	}
	*out = 0
	v, detected, err := format.Decode(data, f)
	if got != nil {
		*got = C.int(detected)
	}
	if err != nil {
		return code(err)
	}
	*out = C.size_t(reg.NewValue(v))
	return 0
}

//export plist_from_xml
func plist_from_xml(data *C.char, n C.uint32_t, out *C.size_t) C.int {
	return decode(goBytes(data, n), format.XML, out, nil)
}

//export plist_from_bin
func plist_from_bin(data *C.char, n C.uint32_t, out *C.size_t) C.int {
	return decode(goBytes(data, n), format.Binary, out, nil)
}

//export plist_from_json
func plist_from_json(data *C.char, n C.uint32_t, out *C.size_t) C.int {
	return decode(goBytes(data, n), format.JSON, out, nil)
}

//export plist_from_openstep
func plist_from_openstep(data *C.char, n C.uint32_t, out *C.size_t) C.int {
	return decode(goBytes(data, n), format.OpenStep, out, nil)
}

//export plist_from_memory
func plist_from_memory(data *C.char, n C.uint32_t, out *C.size_t, f *C.int) C.int {
	return decode(goBytes(data, n), format.None, out, f)
}

//export plist_read_from_file
func plist_read_from_file(filename *C.char, out *C.size_t, f *C.int) C.int {
	if filename == nil || out == nil {
		return codeInvalid
	}
	*out = 0
	v, detected, err := format.ReadFile(C.GoString(filename))
	if f != nil {
		*f = C.int(detected)
	}
	if err != nil {
		return code(err)
	}
	*out = C.size_t(reg.NewValue(v))
	return 0
}

//export plist_is_binary
func plist_is_binary(data *C.char, n C.uint32_t) C.int {
	if format.IsBinary(goBytes(data, n)) {
		return 1
	}
	return 0
}

// ------ Paths ------

// plist_access_path walks length steps from node. It returns 0 if any
// step does not resolve.
//
//export plist_access_path
func plist_access_path(node C.size_t, length C.uint32_t, steps *C.plist_path_step_t) C.size_t {
	if length > 0 && steps == nil {
		return 0
	}
	path := make([]plist.Step, 0, int(length))
	if length > 0 {
		for _, s := range unsafe.Slice(steps, int(length)) {
			if s.is_key != 0 {
				if s.key == nil {
					return 0
				}
				path = append(path, plist.KeyStep(C.GoString(s.key)))
			} else {
				path = append(path, plist.IndexStep(int(s.index)))
			}
		}
	}
	h, err := reg.Resolve(handle(node), path...)
	if err != nil {
		return 0
	}
	return C.size_t(h)
}

// ------ Sorting ------

//export plist_sort
func plist_sort(node C.size_t) C.int {
	return code(reg.Sort(handle(node)))
}
