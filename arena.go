package plist

import (
	"log/slog"
	"slices"
)

// noSlot marks a node without a parent.
const noSlot = ^uint32(0)

// ref addresses a node. A ref is valid while the slot is live and its
// generation matches.
type ref struct {
	slot uint32
	gen  uint32
}

// noRef never resolves.
var noRef = ref{slot: noSlot}

// node is an arena-resident value. Containers own their children by slot.
type node struct {
	gen    uint32
	live   bool
	kind   Kind
	scalar Value             // every kind except array and dict
	elems  []uint32          // array children
	keys   []string          // dict keys in insertion order
	items  map[string]uint32 // dict children
	parent uint32
}

// Arena stores value trees as slot-addressed nodes. Freed slots are
// reused with a bumped generation, so handles into freed storage report
// ErrStale instead of observing someone else's value.
//
// An Arena and every handle into it must be confined to one goroutine.
type Arena struct {
	nodes  []node
	free   []uint32
	live   int
	logger *slog.Logger
}

// Option configures an Arena.
type Option func(*Arena)

// WithLogger sets the logger used for lifecycle records.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewArena creates an empty arena.
func NewArena(opts ...Option) *Arena {
	a := &Arena{logger: slog.Default().With("component", "plist-arena")}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Live returns the number of live nodes.
func (a *Arena) Live() int { return a.live }

// New stores v as a new root and returns its owning handle. A nil v, or
// a nil element anywhere inside it, is stored as Null.
func (a *Arena) New(v Value) *Owned {
	slot := a.load(v, noSlot)
	return &Owned{handle: handle{arena: a, ref: a.refOf(slot)}}
}

// NewDict returns an owned empty dictionary.
func (a *Arena) NewDict() *Owned { return a.New(NewDict()) }

// NewArray returns an owned empty array.
func (a *Arena) NewArray() *Owned { return a.New(Array{}) }

// NewBool returns an owned boolean.
func (a *Arena) NewBool(b bool) *Owned { return a.New(Bool(b)) }

// NewInt returns an owned signed integer.
func (a *Arena) NewInt(i int64) *Owned { return a.New(Int(i)) }

// NewUint returns an owned unsigned integer.
func (a *Arena) NewUint(u uint64) *Owned { return a.New(Uint(u)) }

// NewReal returns an owned real.
func (a *Arena) NewReal(f float64) *Owned { return a.New(Real(f)) }

// NewString returns an owned string.
func (a *Arena) NewString(s string) *Owned { return a.New(String(s)) }

// NewData returns an owned copy of b.
func (a *Arena) NewData(b []byte) *Owned { return a.New(append(Data{}, b...)) }

// NewUnixDate returns an owned date sec seconds after the Unix epoch.
func (a *Arena) NewUnixDate(sec int64) *Owned { return a.New(Unix(sec)) }

// NewUID returns an owned keyed-archiver UID.
func (a *Arena) NewUID(u uint64) *Owned { return a.New(UID(u)) }

// NewNull returns an owned Null.
func (a *Arena) NewNull() *Owned { return a.New(Null()) }

func (a *Arena) refOf(slot uint32) ref {
	return ref{slot: slot, gen: a.nodes[slot].gen}
}

// lookup resolves r. The returned pointer is invalidated by alloc.
func (a *Arena) lookup(r ref) (*node, error) {
	if int(r.slot) >= len(a.nodes) {
		return nil, ErrStale
	}
	n := &a.nodes[r.slot]
	if !n.live || n.gen != r.gen {
		return nil, ErrStale
	}
	return n, nil
}

func (a *Arena) alloc() uint32 {
	var slot uint32
	if k := len(a.free); k > 0 {
		slot = a.free[k-1]
		a.free = a.free[:k-1]
	} else {
		a.nodes = append(a.nodes, node{})
		slot = uint32(len(a.nodes) - 1)
	}
	a.nodes[slot].live = true
	a.live++
	return slot
}

// load copies v into freshly allocated nodes under parent.
func (a *Arena) load(v Value, parent uint32) uint32 {
	slot := a.alloc()
	a.nodes[slot].parent = parent
	a.fill(slot, v)
	return slot
}

// fill sets the contents of an empty node from v. nil fills as Null.
func (a *Arena) fill(slot uint32, v Value) {
	switch val := v.(type) {
	case nil:
		n := &a.nodes[slot]
		n.kind, n.scalar = KindData, Null()
	case Array:
		elems := make([]uint32, len(val))
		for i, item := range val {
			elems[i] = a.load(item, slot)
		}
		n := &a.nodes[slot]
		n.kind, n.elems = KindArray, elems
	case *Dict:
		keys := make([]string, 0, val.Len())
		items := make(map[string]uint32, val.Len())
		for k, item := range val.All() {
			items[k] = a.load(item, slot)
			keys = append(keys, k)
		}
		n := &a.nodes[slot]
		n.kind, n.keys, n.items = KindDict, keys, items
	default:
		n := &a.nodes[slot]
		n.kind, n.scalar = v.Kind(), Copy(v)
	}
}

// export returns a detached deep copy of the subtree at slot.
func (a *Arena) export(slot uint32) Value {
	n := &a.nodes[slot]
	switch n.kind {
	case KindArray:
		out := make(Array, len(n.elems))
		for i, c := range n.elems {
			out[i] = a.export(c)
		}
		return out
	case KindDict:
		out := NewDict()
		for _, k := range n.keys {
			out.Set(k, a.export(n.items[k]))
		}
		return out
	default:
		return Copy(n.scalar)
	}
}

// clear releases the children of slot and empties its payload.
func (a *Arena) clear(slot uint32) {
	n := &a.nodes[slot]
	children := n.elems
	for _, k := range n.keys {
		children = append(children, n.items[k])
	}
	n.scalar, n.elems, n.keys, n.items = nil, nil, nil, nil
	for _, c := range children {
		a.release(c)
	}
}

// release frees the subtree at slot, children first.
func (a *Arena) release(slot uint32) int {
	n := &a.nodes[slot]
	count := 1
	for _, c := range n.elems {
		count += a.release(c)
	}
	for _, k := range n.keys {
		count += a.release(n.items[k])
	}
	a.nodes[slot] = node{gen: n.gen + 1, parent: noSlot}
	a.free = append(a.free, slot)
	a.live--
	return count
}

// assign replaces the contents of slot with v in place. The slot and its
// generation survive, so every handle on it observes the new value. v must
// have passed validValue.
func (a *Arena) assign(slot uint32, v Value) {
	a.clear(slot)
	a.fill(slot, v)
}

// within reports whether slot is root or one of its descendants.
func (a *Arena) within(slot, root uint32) bool {
	for s := slot; s != noSlot; s = a.nodes[s].parent {
		if s == root {
			return true
		}
	}
	return false
}

// adopt moves the value owned by item under parent and returns the new
// child slot. item is spent afterwards, and handles taken from it go stale.
func (a *Arena) adopt(item *Owned, parent uint32) (uint32, error) {
	if item == nil {
		return 0, ErrNilHandle
	}
	if _, err := item.resolve(); err != nil {
		return 0, err
	}
	if item.arena == a && a.within(parent, item.ref.slot) {
		return 0, ErrCycle
	}
	v, err := item.Consume()
	if err != nil {
		return 0, err
	}
	return a.load(v, parent), nil
}

// unlink detaches child from its dict or array parent and frees it.
func (a *Arena) unlink(parent, child uint32) bool {
	p := &a.nodes[parent]
	switch p.kind {
	case KindArray:
		i := slices.Index(p.elems, child)
		if i < 0 {
			return false
		}
		p.elems = slices.Delete(p.elems, i, i+1)
	case KindDict:
		i := slices.IndexFunc(p.keys, func(k string) bool { return p.items[k] == child })
		if i < 0 {
			return false
		}
		delete(p.items, p.keys[i])
		p.keys = slices.Delete(p.keys, i, i+1)
	default:
		return false
	}
	a.release(child)
	return true
}

// putChild stores child under key in the dict at slot, freeing any
// previous entry. An existing key keeps its position.
func (a *Arena) putChild(slot uint32, key string, child uint32) {
	n := &a.nodes[slot]
	old, exists := n.items[key]
	n.items[key] = child
	if !exists {
		n.keys = append(n.keys, key)
		return
	}
	a.release(old)
}
