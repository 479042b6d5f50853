// api_dict.go exports dictionary access, mutation and coerced copies.
package main

/*
#include <stdint.h>
*/
import "C"

import "github.com/feather-lang/plist"

// ------ Dict Operations ------

//export plist_dict_get_size
func plist_dict_get_size(node C.size_t) C.uint32_t {
	return C.uint32_t(reg.DictSize(handle(node)))
}

//export plist_dict_new_iter
func plist_dict_new_iter(node C.size_t, iter *C.size_t) C.int {
	h, err := reg.NewCursor(handle(node))
	if err != nil {
		*iter = 0
		return code(err)
	}
	*iter = C.size_t(h)
	return 0
}

// plist_dict_next_item stores the key in key (free with plist_mem_free)
// and a handle on the value in val. Both are zeroed at the end.
//
//export plist_dict_next_item
func plist_dict_next_item(node, iter C.size_t, key **C.char, val *C.size_t) C.int {
	k, h, err := reg.DictNext(handle(node), handle(iter))
	if key != nil {
		*key = nil
	}
	if val != nil {
		*val = C.size_t(h)
	}
	if err != nil || h == 0 {
		return code(err)
	}
	if key != nil {
		export([]byte(k), key, nil)
	}
	return 0
}

//export plist_dict_get_item
func plist_dict_get_item(node C.size_t, key *C.char) C.size_t {
	if key == nil {
		return 0
	}
	h, err := reg.DictItem(handle(node), C.GoString(key))
	if err != nil {
		return 0
	}
	return C.size_t(h)
}

//export plist_dict_item_get_key
func plist_dict_item_get_key(node C.size_t) C.size_t {
	k, err := reg.ItemKey(handle(node))
	if err != nil {
		return 0
	}
	return C.size_t(reg.NewValue(plist.String(k)))
}

// plist_dict_get_item_key stores the key node was found under in key, or
// leaves it untouched.
//
//export plist_dict_get_item_key
func plist_dict_get_item_key(node C.size_t, key **C.char) {
	if key == nil {
		return
	}
	if k, err := reg.ItemKey(handle(node)); err == nil {
		export([]byte(k), key, nil)
	}
}

//export plist_dict_set_item
func plist_dict_set_item(node C.size_t, key *C.char, item C.size_t) C.int {
	if key == nil {
		return codeInvalid
	}
	return code(reg.DictSet(handle(node), C.GoString(key), handle(item)))
}

//export plist_dict_remove_item
func plist_dict_remove_item(node C.size_t, key *C.char) C.int {
	if key == nil {
		return codeInvalid
	}
	return code(reg.DictRemove(handle(node), C.GoString(key)))
}

//export plist_dict_merge
func plist_dict_merge(target, source C.size_t) C.int {
	return code(reg.DictMerge(handle(target), handle(source)))
}

// ------ Coerced Reads ------

//export plist_dict_get_bool
func plist_dict_get_bool(node C.size_t, key *C.char) C.uint8_t {
	if key != nil && reg.DictBool(handle(node), C.GoString(key)) {
		return 1
	}
	return 0
}

//export plist_dict_get_int
func plist_dict_get_int(node C.size_t, key *C.char) C.int64_t {
	if key == nil {
		return 0
	}
	return C.int64_t(reg.DictInt(handle(node), C.GoString(key)))
}

//export plist_dict_get_uint
func plist_dict_get_uint(node C.size_t, key *C.char) C.uint64_t {
	if key == nil {
		return 0
	}
	return C.uint64_t(reg.DictUint(handle(node), C.GoString(key)))
}

// ------ Copies ------

// lookupKey returns the source key for a copy; NULL means same as key.
func lookupKey(key, alt *C.char) string {
	if alt == nil {
		return C.GoString(key)
	}
	return C.GoString(alt)
}

//export plist_dict_copy_item
func plist_dict_copy_item(target, source C.size_t, key, alt *C.char) C.int {
	if key == nil {
		return codeInvalid
	}
	return code(reg.CopyItem(handle(target), handle(source), C.GoString(key), lookupKey(key, alt)))
}

//export plist_dict_copy_bool
func plist_dict_copy_bool(target, source C.size_t, key, alt *C.char) C.int {
	if key == nil {
		return codeInvalid
	}
	return code(reg.CopyBool(handle(target), handle(source), C.GoString(key), lookupKey(key, alt)))
}

//export plist_dict_copy_int
func plist_dict_copy_int(target, source C.size_t, key, alt *C.char) C.int {
	if key == nil {
		return codeInvalid
	}
	return code(reg.CopyInt(handle(target), handle(source), C.GoString(key), lookupKey(key, alt)))
}

//export plist_dict_copy_uint
func plist_dict_copy_uint(target, source C.size_t, key, alt *C.char) C.int {
	if key == nil {
		return codeInvalid
	}
	return code(reg.CopyUint(handle(target), handle(source), C.GoString(key), lookupKey(key, alt)))
}

//export plist_dict_copy_data
func plist_dict_copy_data(target, source C.size_t, key, alt *C.char) C.int {
	if key == nil {
		return codeInvalid
	}
	return code(reg.CopyData(handle(target), handle(source), C.GoString(key), lookupKey(key, alt)))
}

//export plist_dict_copy_string
func plist_dict_copy_string(target, source C.size_t, key, alt *C.char) C.int {
	if key == nil {
		return codeInvalid
	}
	return code(reg.CopyString(handle(target), handle(source), C.GoString(key), lookupKey(key, alt)))
}
