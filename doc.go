// Package plist manipulates property-list value trees through handles.
//
// # Overview
//
// A tree lives in an [Arena]. Callers never touch arena storage directly;
// they hold handles:
//
//   - [Owned] is the unique owner of a root value. Freeing it frees the
//     whole tree.
//   - [Alias] refers to a node inside someone else's tree. Mutations made
//     through an alias are visible through every other handle on the tree.
//   - [Cursor] is a position counter driving enumeration. It is not a node
//     and no node operation accepts it.
//
// Handles never dangle. Once the storage behind a handle is released, the
// handle reports [ErrStale] (or [ErrConsumed] for a spent owner) instead of
// observing whatever reused the slot.
//
// # Quick Start
//
//	a := plist.NewArena()
//
//	root := a.NewDict()
//	defer root.Free()
//
//	root.Put("name", a.NewString("feather"))
//	root.Put("tags", a.NewArray())
//
//	tags, _ := root.Get("tags")
//	tags.Append(a.NewString("go"))
//
//	v, _ := root.Value() // detached deep copy
//
// # Moving values in
//
// Container mutators such as Append, Insert, SetItem, Put and Merge take an
// *Owned. The value is moved out of it; the handle reports [ErrConsumed]
// afterwards and aliases taken from it go stale. Aliases cannot be passed
// where an owner is expected, so moving a borrowed node is rejected by the
// compiler. To place a copy of an aliased node somewhere else, Clone it
// first.
//
// # Coercion
//
// [CoerceBool], [CoerceInt] and [CoerceUint] read scalars leniently: one
// byte or little-endian fixed-width blobs, decimal or hexadecimal strings,
// and signed/unsigned integers reinterpreted bit for bit. The Copy family
// of dict methods and GetBool, GetInt and GetUint build on them.
//
// # Errors
//
// Every error matches exactly one class sentinel with errors.Is, and
// [CodeOf] maps it to the numeric result code used across the C boundary.
//
// Serialization lives in the format subpackage.
package plist
