package plist

import (
	"iter"
	"slices"
)

func (h *handle) array(op string) (*node, error) {
	n, err := h.resolve()
	if err != nil {
		return nil, opErr(op, err)
	}
	if n.kind != KindArray {
		return nil, opErr(op, ErrWrongKind)
	}
	return n, nil
}

// ArrayLen returns the number of elements, or 0 if the node is not an array.
func (h *handle) ArrayLen() int {
	n, err := h.array("array len")
	if err != nil {
		return 0
	}
	return len(n.elems)
}

// Item returns an alias on element i.
func (h *handle) Item(i int) (*Alias, error) {
	n, err := h.array("array item")
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(n.elems) {
		return nil, opErr("array item", ErrNotFound)
	}
	return h.alias(n.elems[i], position{kind: posIndex, index: i}), nil
}

// SetItem moves item's value into slot i, freeing the previous element.
func (h *handle) SetItem(item *Owned, i int) error {
	n, err := h.array("array set")
	if err != nil {
		return err
	}
	if i < 0 || i >= len(n.elems) {
		return opErr("array set", ErrNotFound)
	}
	child, err := h.arena.adopt(item, h.ref.slot)
	if err != nil {
		return opErr("array set", err)
	}
	n = &h.arena.nodes[h.ref.slot]
	old := n.elems[i]
	n.elems[i] = child
	h.arena.release(old)
	return nil
}

// Append moves item's value to the end of the array.
func (h *handle) Append(item *Owned) error {
	if _, err := h.array("array append"); err != nil {
		return err
	}
	child, err := h.arena.adopt(item, h.ref.slot)
	if err != nil {
		return opErr("array append", err)
	}
	n := &h.arena.nodes[h.ref.slot]
	n.elems = append(n.elems, child)
	return nil
}

// Insert moves item's value to position i, shifting later elements up.
// i may equal the length, which appends.
func (h *handle) Insert(item *Owned, i int) error {
	n, err := h.array("array insert")
	if err != nil {
		return err
	}
	if i < 0 || i > len(n.elems) {
		return opErr("array insert", ErrNotFound)
	}
	child, err := h.arena.adopt(item, h.ref.slot)
	if err != nil {
		return opErr("array insert", err)
	}
	n = &h.arena.nodes[h.ref.slot]
	n.elems = slices.Insert(n.elems, i, child)
	return nil
}

// RemoveItem frees element i and shifts later elements down.
func (h *handle) RemoveItem(i int) error {
	n, err := h.array("array remove")
	if err != nil {
		return err
	}
	if i < 0 || i >= len(n.elems) {
		return opErr("array remove", ErrNotFound)
	}
	old := n.elems[i]
	n.elems = slices.Delete(n.elems, i, i+1)
	h.arena.release(old)
	return nil
}

// NextItem advances c and returns an alias on the element it passed.
// At the end it returns (nil, nil). A cursor is single-pass; use a new
// cursor to enumerate again.
func (h *handle) NextItem(c *Cursor) (*Alias, error) {
	if c == nil {
		return nil, opErr("array next", ErrNilHandle)
	}
	n, err := h.array("array next")
	if err != nil {
		return nil, err
	}
	i := c.Advance()
	if i >= len(n.elems) {
		return nil, nil
	}
	return h.alias(n.elems[i], position{kind: posIndex, index: i}), nil
}

// Items iterates over the elements. Iteration stops early if the array
// stops resolving.
func (h *handle) Items() iter.Seq2[int, *Alias] {
	return func(yield func(int, *Alias) bool) {
		c := NewCursor()
		for {
			a, err := h.NextItem(c)
			if err != nil || a == nil {
				return
			}
			if !yield(a.pos.index, a) {
				return
			}
		}
	}
}

// RemoveSelf removes the aliased element from the array it was taken
// from. The element is located by identity, not by the index recorded
// when the alias was made, so structural changes to the array in the
// meantime never cause a different element to be removed. If the element
// is no longer in the array, RemoveSelf fails with ErrStale.
func (a *Alias) RemoveSelf() error {
	if a.pos.kind != posIndex {
		return opErr("array remove self", ErrWrongKind)
	}
	if _, err := a.resolve(); err != nil {
		return opErr("array remove self", err)
	}
	p, err := a.arena.lookup(a.parent)
	if err != nil {
		return opErr("array remove self", err)
	}
	if p.kind != KindArray || !a.arena.unlink(a.parent.slot, a.ref.slot) {
		return opErr("array remove self", ErrStale)
	}
	return nil
}
