package plist

import (
	"iter"
	"slices"
)

func (h *handle) dict(op string) (*node, error) {
	n, err := h.resolve()
	if err != nil {
		return nil, opErr(op, err)
	}
	if n.kind != KindDict {
		return nil, opErr(op, ErrWrongKind)
	}
	return n, nil
}

// DictLen returns the number of entries, or 0 if the node is not a dict.
func (h *handle) DictLen() int {
	n, err := h.dict("dict len")
	if err != nil {
		return 0
	}
	return len(n.keys)
}

// Get returns an alias on the value stored under key.
func (h *handle) Get(key string) (*Alias, error) {
	n, err := h.dict("dict get")
	if err != nil {
		return nil, err
	}
	child, ok := n.items[key]
	if !ok {
		return nil, opErr("dict get", ErrNotFound)
	}
	return h.alias(child, position{kind: posKey, key: key}), nil
}

// Put moves item's value under key, replacing and freeing any previous
// entry. A replaced key keeps its position.
func (h *handle) Put(key string, item *Owned) error {
	if _, err := h.dict("dict put"); err != nil {
		return err
	}
	child, err := h.arena.adopt(item, h.ref.slot)
	if err != nil {
		return opErr("dict put", err)
	}
	h.arena.putChild(h.ref.slot, key, child)
	return nil
}

// Delete removes and frees the entry under key.
func (h *handle) Delete(key string) error {
	n, err := h.dict("dict delete")
	if err != nil {
		return err
	}
	child, ok := n.items[key]
	if !ok {
		return opErr("dict delete", ErrNotFound)
	}
	h.arena.unlink(h.ref.slot, child)
	return nil
}

// Merge moves every entry of source into the dict. On a key collision the
// entry from source wins. source is consumed.
func (h *handle) Merge(source *Owned) error {
	if _, err := h.dict("dict merge"); err != nil {
		return err
	}
	if source == nil {
		return opErr("dict merge", ErrNilHandle)
	}
	sn, err := source.resolve()
	if err != nil {
		return opErr("dict merge", err)
	}
	if sn.kind != KindDict {
		return opErr("dict merge", ErrWrongKind)
	}
	if source.arena == h.arena && h.arena.within(h.ref.slot, source.ref.slot) {
		return opErr("dict merge", ErrCycle)
	}
	v, err := source.Consume()
	if err != nil {
		return opErr("dict merge", err)
	}
	for k, item := range v.(*Dict).All() {
		h.arena.putChild(h.ref.slot, k, h.arena.load(item, h.ref.slot))
	}
	return nil
}

// NextEntry advances c and returns the key and an alias on the entry it
// passed, in insertion order. At the end the alias is nil.
func (h *handle) NextEntry(c *Cursor) (string, *Alias, error) {
	if c == nil {
		return "", nil, opErr("dict next", ErrNilHandle)
	}
	n, err := h.dict("dict next")
	if err != nil {
		return "", nil, err
	}
	i := c.Advance()
	if i >= len(n.keys) {
		return "", nil, nil
	}
	k := n.keys[i]
	return k, h.alias(n.items[k], position{kind: posKey, key: k}), nil
}

// Entries iterates over the entries in insertion order.
func (h *handle) Entries() iter.Seq2[string, *Alias] {
	return func(yield func(string, *Alias) bool) {
		c := NewCursor()
		for {
			k, a, err := h.NextEntry(c)
			if err != nil || a == nil {
				return
			}
			if !yield(k, a) {
				return
			}
		}
	}
}

// SortKeys reorders the dict's entries by key.
func (h *handle) SortKeys() error {
	n, err := h.dict("dict sort")
	if err != nil {
		return err
	}
	slices.Sort(n.keys)
	return nil
}

// Sort orders the keys of every dict in the tree below the node, the node
// included. Arrays keep their element order. Scalars are left alone.
func (h *handle) Sort() error {
	if _, err := h.resolve(); err != nil {
		return opErr("sort", err)
	}
	h.arena.sortTree(h.ref.slot)
	return nil
}

func (a *Arena) sortTree(slot uint32) {
	n := &a.nodes[slot]
	switch n.kind {
	case KindArray:
		for _, c := range n.elems {
			a.sortTree(c)
		}
	case KindDict:
		slices.Sort(n.keys)
		for _, k := range n.keys {
			a.sortTree(n.items[k])
		}
	}
}

// lookupIn finds the value copied by the Copy family: the entry of src
// under lookup, or under key when lookup is empty.
func lookupIn(op string, src Node, key, lookup string) (Value, error) {
	if src == nil {
		return nil, opErr(op, ErrNilHandle)
	}
	s := src.base()
	n, err := s.dict(op)
	if err != nil {
		return nil, err
	}
	if lookup == "" {
		lookup = key
	}
	child, ok := n.items[lookup]
	if !ok {
		return nil, opErr(op, ErrNotFound)
	}
	return s.arena.export(child), nil
}

func (h *handle) store(op, key string, v Value) error {
	if _, err := h.dict(op); err != nil {
		return err
	}
	h.arena.putChild(h.ref.slot, key, h.arena.load(v, h.ref.slot))
	return nil
}

// CopyItem deep-copies the entry of src found under lookup (or key, when
// lookup is empty) into the dict under key.
func (h *handle) CopyItem(src Node, key, lookup string) error {
	v, err := lookupIn("dict copy", src, key, lookup)
	if err != nil {
		return err
	}
	return h.store("dict copy", key, v)
}

// CopyBool is CopyItem for a value coerced with CoerceBool.
func (h *handle) CopyBool(src Node, key, lookup string) error {
	v, err := lookupIn("dict copy bool", src, key, lookup)
	if err != nil {
		return err
	}
	b, err := CoerceBool(v)
	if err != nil {
		return opErr("dict copy bool", err)
	}
	return h.store("dict copy bool", key, Bool(b))
}

// CopyInt is CopyItem for a value coerced with CoerceInt.
func (h *handle) CopyInt(src Node, key, lookup string) error {
	v, err := lookupIn("dict copy int", src, key, lookup)
	if err != nil {
		return err
	}
	i, err := CoerceInt(v)
	if err != nil {
		return opErr("dict copy int", err)
	}
	return h.store("dict copy int", key, Int(i))
}

// CopyUint is CopyItem for a value coerced with CoerceUint.
func (h *handle) CopyUint(src Node, key, lookup string) error {
	v, err := lookupIn("dict copy uint", src, key, lookup)
	if err != nil {
		return err
	}
	u, err := CoerceUint(v)
	if err != nil {
		return opErr("dict copy uint", err)
	}
	return h.store("dict copy uint", key, Uint(u))
}

// CopyData copies a data entry. Other kinds fail with ErrNoCoercion.
func (h *handle) CopyData(src Node, key, lookup string) error {
	v, err := lookupIn("dict copy data", src, key, lookup)
	if err != nil {
		return err
	}
	if v.Kind() != KindData {
		return opErr("dict copy data", ErrNoCoercion)
	}
	return h.store("dict copy data", key, v)
}

// CopyString copies a string entry. Other kinds fail with ErrNoCoercion.
func (h *handle) CopyString(src Node, key, lookup string) error {
	v, err := lookupIn("dict copy string", src, key, lookup)
	if err != nil {
		return err
	}
	if v.Kind() != KindString {
		return opErr("dict copy string", ErrNoCoercion)
	}
	return h.store("dict copy string", key, v)
}

func (h *handle) entry(key string) Value {
	n, err := h.dict("dict get")
	if err != nil {
		return nil
	}
	child, ok := n.items[key]
	if !ok {
		return nil
	}
	return h.arena.nodes[child].scalar
}

// GetBool reads the entry under key with CoerceBool, or false.
func (h *handle) GetBool(key string) bool {
	b, _ := CoerceBool(h.entry(key))
	return b
}

// GetInt reads the entry under key with CoerceInt, or 0.
func (h *handle) GetInt(key string) int64 {
	i, _ := CoerceInt(h.entry(key))
	return i
}

// GetUint reads the entry under key with CoerceUint, or 0.
func (h *handle) GetUint(key string) uint64 {
	u, _ := CoerceUint(h.entry(key))
	return u
}
