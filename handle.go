package plist

// Node is a handle that resolves to a value node: an *Owned or an *Alias.
// Cursors are deliberately not Nodes.
type Node interface {
	// Kind returns the node kind, or KindNone if the handle no longer resolves.
	Kind() Kind

	// Value returns a detached deep copy of the node.
	Value() (Value, error)

	// Set replaces the node's value in place. The change is visible
	// through every handle on the same node.
	Set(v Value) error

	// Clone returns a new owning handle holding a deep copy.
	Clone() (*Owned, error)

	// Consume moves the value out of an owning handle. Aliases always
	// fail with ErrNotOwning.
	Consume() (Value, error)

	base() *handle
}

// handle is the part shared by owning and alias handles.
type handle struct {
	arena *Arena
	ref   ref
	spent error
}

func (h *handle) base() *handle { return h }

func (h *handle) resolve() (*node, error) {
	if h == nil || h.arena == nil {
		return nil, ErrNilHandle
	}
	if h.spent != nil {
		return nil, h.spent
	}
	return h.arena.lookup(h.ref)
}

// Arena returns the arena holding the node.
func (h *handle) Arena() *Arena { return h.arena }

func (h *handle) Kind() Kind {
	n, err := h.resolve()
	if err != nil {
		return KindNone
	}
	return n.kind
}

// Err reports why the handle no longer resolves, or nil.
func (h *handle) Err() error {
	_, err := h.resolve()
	return err
}

func (h *handle) Value() (Value, error) {
	if _, err := h.resolve(); err != nil {
		return nil, opErr("value", err)
	}
	return h.arena.export(h.ref.slot), nil
}

// Set replaces the node's value in place. A nil anywhere in v fails with
// ErrInvalidArgument and leaves the node untouched.
func (h *handle) Set(v Value) error {
	if err := validValue(v); err != nil {
		return opErr("set", err)
	}
	if _, err := h.resolve(); err != nil {
		return opErr("set", err)
	}
	h.arena.assign(h.ref.slot, v)
	return nil
}

func (h *handle) Clone() (*Owned, error) {
	v, err := h.Value()
	if err != nil {
		return nil, opErr("clone", err)
	}
	return h.arena.New(v), nil
}

// alias builds an alias on child, recording where it was found.
func (h *handle) alias(child uint32, pos position) *Alias {
	return &Alias{
		handle: handle{arena: h.arena, ref: h.arena.refOf(child)},
		parent: h.ref,
		pos:    pos,
	}
}

// Owned is the unique owner of a root value.
type Owned struct {
	handle
}

// Consume returns the value and releases its storage. It succeeds once;
// later calls, and any other use of the handle, fail with ErrConsumed.
func (o *Owned) Consume() (Value, error) {
	if _, err := o.resolve(); err != nil {
		return nil, opErr("consume", err)
	}
	v := o.arena.export(o.ref.slot)
	n := o.arena.release(o.ref.slot)
	o.spent = ErrConsumed
	o.arena.logger.Debug("value consumed", "slot", o.ref.slot, "nodes", n)
	return v, nil
}

// Free releases the value and every node beneath it. Aliases into the
// tree report ErrStale afterwards. Freeing twice is a no-op.
func (o *Owned) Free() {
	if _, err := o.resolve(); err != nil {
		return
	}
	n := o.arena.release(o.ref.slot)
	o.spent = ErrConsumed
	o.arena.logger.Debug("value freed", "slot", o.ref.slot, "nodes", n)
}

type posKind uint8

const (
	posNone posKind = iota
	posIndex
	posKey
)

// position records where an alias was found in its parent.
type position struct {
	kind  posKind
	index int
	key   string
}

// Alias refers to a node inside some owned tree without owning it.
type Alias struct {
	handle
	parent ref
	pos    position
}

// Consume always fails: an alias has nothing to give away.
func (a *Alias) Consume() (Value, error) {
	return nil, opErr("consume", ErrNotOwning)
}

// Key returns the dictionary key the alias was found under.
func (a *Alias) Key() (string, bool) {
	return a.pos.key, a.pos.kind == posKey
}

// Index returns the alias's current position in its parent array, or -1
// if it was not taken from an array or is no longer there.
func (a *Alias) Index() int {
	if a.pos.kind != posIndex {
		return -1
	}
	if _, err := a.resolve(); err != nil {
		return -1
	}
	p, err := a.arena.lookup(a.parent)
	if err != nil || p.kind != KindArray {
		return -1
	}
	if a.pos.index < len(p.elems) && p.elems[a.pos.index] == a.ref.slot {
		return a.pos.index
	}
	for i, c := range p.elems {
		if c == a.ref.slot {
			return i
		}
	}
	return -1
}

// Parent returns an alias on the container holding this node.
func (a *Alias) Parent() (*Alias, error) {
	n, err := a.resolve()
	if err != nil {
		return nil, opErr("parent", err)
	}
	if n.parent == noSlot {
		return nil, opErr("parent", ErrNotFound)
	}
	up := &Alias{handle: handle{arena: a.arena, ref: a.arena.refOf(n.parent)}, parent: noRef}
	if gp := a.arena.nodes[n.parent].parent; gp != noSlot {
		up.parent = a.arena.refOf(gp)
	}
	return up, nil
}

// Cursor drives single-pass enumeration of an array or dict. It holds
// only a position and cannot be used as a node.
type Cursor struct {
	pos int
}

// NewCursor returns a cursor at position 0.
func NewCursor() *Cursor { return &Cursor{} }

// Advance returns the current position and moves to the next one.
func (c *Cursor) Advance() int {
	p := c.pos
	c.pos++
	return p
}
