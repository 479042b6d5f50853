// api_array.go exports array access and mutation.
package main

/*
#include <stdint.h>
*/
import "C"

// ------ Array Operations ------

//export plist_array_get_size
func plist_array_get_size(node C.size_t) C.uint32_t {
	return C.uint32_t(reg.ArraySize(handle(node)))
}

//export plist_array_get_item
func plist_array_get_item(node C.size_t, n C.uint32_t) C.size_t {
	h, err := reg.ArrayItem(handle(node), int(n))
	if err != nil {
		return 0
	}
	return C.size_t(h)
}

// plist_array_get_item_index returns UINT32_MAX when node is not an
// array element.
//
//export plist_array_get_item_index
func plist_array_get_item_index(node C.size_t) C.uint32_t {
	i, err := reg.ArrayItemIndex(handle(node))
	if err != nil {
		return C.uint32_t(^uint32(0))
	}
	return C.uint32_t(i)
}

//export plist_array_set_item
func plist_array_set_item(node, item C.size_t, n C.uint32_t) C.int {
	return code(reg.ArraySetItem(handle(node), handle(item), int(n)))
}

//export plist_array_append_item
func plist_array_append_item(node, item C.size_t) C.int {
	return code(reg.ArrayAppend(handle(node), handle(item)))
}

//export plist_array_insert_item
func plist_array_insert_item(node, item C.size_t, n C.uint32_t) C.int {
	return code(reg.ArrayInsert(handle(node), handle(item), int(n)))
}

//export plist_array_remove_item
func plist_array_remove_item(node C.size_t, n C.uint32_t) C.int {
	return code(reg.ArrayRemove(handle(node), int(n)))
}

//export plist_array_item_remove
func plist_array_item_remove(node C.size_t) C.int {
	return code(reg.ArrayItemRemove(handle(node)))
}

//export plist_array_new_iter
func plist_array_new_iter(node C.size_t, iter *C.size_t) C.int {
	h, err := reg.NewCursor(handle(node))
	if err != nil {
		*iter = 0
		return code(err)
	}
	*iter = C.size_t(h)
	return 0
}

// plist_array_next_item stores 0 in item once the array is exhausted.
//
//export plist_array_next_item
func plist_array_next_item(node, iter C.size_t, item *C.size_t) C.int {
	h, err := reg.ArrayNext(handle(node), handle(iter))
	*item = C.size_t(h)
	return code(err)
}
