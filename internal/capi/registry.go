// Package capi keeps the handle table behind the C API.
//
// C callers hold integer handles instead of Go pointers. Each handle maps to
// an owning handle, an alias or a cursor, and remembers every handle
// produced from it, so freeing a root releases the whole family.
package capi

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/feather-lang/plist"
)

// Handle is an opaque non-zero identifier passed across the C boundary.
type Handle uintptr

type entryKind uint8

const (
	kindOwned entryKind = iota + 1
	kindAlias
	kindCursor
)

// ErrUnknownHandle is returned for handles not issued by the registry or
// already freed.
var ErrUnknownHandle = fmt.Errorf("unknown handle: %w", plist.ErrInvalidArgument)

// ErrCursor is returned when a cursor is used as a value node.
var ErrCursor = fmt.Errorf("cursor is not a node: %w", plist.ErrInvalidArgument)

type entry struct {
	kind     entryKind
	owned    *plist.Owned
	alias    *plist.Alias
	cursor   *plist.Cursor
	parent   Handle
	children []Handle
}

// node is the method set shared by *plist.Owned and *plist.Alias.
type node interface {
	plist.Node
	ArrayLen() int
	Item(i int) (*plist.Alias, error)
	SetItem(item *plist.Owned, i int) error
	Append(item *plist.Owned) error
	Insert(item *plist.Owned, i int) error
	RemoveItem(i int) error
	NextItem(c *plist.Cursor) (*plist.Alias, error)
	DictLen() int
	Get(key string) (*plist.Alias, error)
	Put(key string, item *plist.Owned) error
	Delete(key string) error
	Merge(source *plist.Owned) error
	NextEntry(c *plist.Cursor) (string, *plist.Alias, error)
	Sort() error
	CopyItem(src plist.Node, key, lookup string) error
	CopyBool(src plist.Node, key, lookup string) error
	CopyInt(src plist.Node, key, lookup string) error
	CopyUint(src plist.Node, key, lookup string) error
	CopyData(src plist.Node, key, lookup string) error
	CopyString(src plist.Node, key, lookup string) error
	GetBool(key string) bool
	GetInt(key string) int64
	GetUint(key string) uint64
}

func (e *entry) node() node {
	if e.kind == kindOwned {
		return e.owned
	}
	return e.alias
}

// Registry maps handles to values in a single arena. Every method holds
// the registry lock, so calls from different C threads are serialized.
type Registry struct {
	mu      sync.Mutex
	arena   *plist.Arena
	entries map[Handle]*entry
	next    Handle
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for the registry and its arena.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[Handle]*entry),
		next:    1,
		logger:  slog.Default().With("component", "plist-capi"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.arena = plist.NewArena(plist.WithLogger(r.logger))
	return r
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Arena returns the arena backing the registry.
func (r *Registry) Arena() *plist.Arena { return r.arena }

// register stores e and links it under parent, if any.
func (r *Registry) register(e *entry, parent Handle) Handle {
	h := r.next
	r.next++
	e.parent = parent
	r.entries[h] = e
	if p, ok := r.entries[parent]; ok && parent != 0 {
		p.children = append(p.children, h)
	}
	return h
}

// NewValue stores v as a new root and returns its handle.
func (r *Registry) NewValue(v plist.Value) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(&entry{kind: kindOwned, owned: r.arena.New(v)}, 0)
}

func (r *Registry) lookup(op string, h Handle) (*entry, error) {
	e, ok := r.entries[h]
	if !ok || h == 0 {
		return nil, r.misuse(op, h, ErrUnknownHandle)
	}
	return e, nil
}

func (r *Registry) nodeOf(op string, h Handle) (*entry, node, error) {
	e, err := r.lookup(op, h)
	if err != nil {
		return nil, nil, err
	}
	if e.kind == kindCursor {
		return nil, nil, r.misuse(op, h, ErrCursor)
	}
	return e, e.node(), nil
}

func (r *Registry) ownedOf(op string, h Handle) (*plist.Owned, error) {
	e, err := r.lookup(op, h)
	if err != nil {
		return nil, err
	}
	switch e.kind {
	case kindCursor:
		return nil, r.misuse(op, h, ErrCursor)
	case kindAlias:
		return nil, r.misuse(op, h, plist.ErrNotOwning)
	}
	return e.owned, nil
}

func (r *Registry) cursorOf(op string, h Handle) (*plist.Cursor, error) {
	e, err := r.lookup(op, h)
	if err != nil {
		return nil, err
	}
	if e.kind != kindCursor {
		return nil, r.misuse(op, h, plist.ErrWrongKind)
	}
	return e.cursor, nil
}

// misuse logs a caller mistake and returns err.
func (r *Registry) misuse(op string, h Handle, err error) error {
	r.logger.Warn("handle misuse", "op", op, "handle", uint64(h), "err", err)
	return err
}

// Free releases h and every handle produced from it, children first. If h
// owns its value, the value is freed too. It returns the number of handles
// released.
func (r *Registry) Free(h Handle) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.lookup("free", h); err != nil {
		return 0, err
	}
	n := r.drop(h, true)
	r.logger.Debug("handles freed", "handle", uint64(h), "count", n)
	return n, nil
}

// drop removes h and its descendants from the table, post-order. With
// release set, owned values are freed.
func (r *Registry) drop(h Handle, release bool) int {
	e := r.entries[h]
	count := 0
	for _, c := range e.children {
		if _, ok := r.entries[c]; ok {
			count += r.drop(c, release)
		}
	}
	if p, ok := r.entries[e.parent]; ok {
		p.children = slices.DeleteFunc(p.children, func(c Handle) bool { return c == h })
	}
	if release && e.kind == kindOwned {
		e.owned.Free()
	}
	delete(r.entries, h)
	return count + 1
}

// consumed forgets an owning handle whose value was moved elsewhere.
func (r *Registry) consumed(h Handle) {
	if _, ok := r.entries[h]; ok {
		r.drop(h, false)
	}
}

// Copy returns a new root holding a deep copy of h's value.
func (r *Registry) Copy(h Handle) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("copy", h)
	if err != nil {
		return 0, err
	}
	o, err := n.Clone()
	if err != nil {
		return 0, err
	}
	return r.register(&entry{kind: kindOwned, owned: o}, 0), nil
}

// Kind returns the node kind of h, or KindNone.
func (r *Registry) Kind(h Handle) plist.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("kind", h)
	if err != nil {
		return plist.KindNone
	}
	return n.Kind()
}

// Value returns a detached copy of h's value.
func (r *Registry) Value(h Handle) (plist.Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("value", h)
	if err != nil {
		return nil, err
	}
	return n.Value()
}

// Set replaces h's value in place.
func (r *Registry) Set(h Handle, v plist.Value) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("set", h)
	if err != nil {
		return err
	}
	return n.Set(v)
}

// Parent returns a handle on the container holding h.
func (r *Registry) Parent(h Handle) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, _, err := r.nodeOf("parent", h)
	if err != nil {
		return 0, err
	}
	if e.kind != kindAlias {
		return 0, plist.ErrNotFound
	}
	p, err := e.alias.Parent()
	if err != nil {
		return 0, err
	}
	return r.register(&entry{kind: kindAlias, alias: p}, h), nil
}

// NewCursor returns a cursor handle registered under container h.
func (r *Registry) NewCursor(h Handle) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, _, err := r.nodeOf("new iter", h); err != nil {
		return 0, err
	}
	return r.register(&entry{kind: kindCursor, cursor: plist.NewCursor()}, h), nil
}

// Resolve walks steps from h and returns a handle on the node reached.
func (r *Registry) Resolve(h Handle, steps ...plist.Step) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("access path", h)
	if err != nil {
		return 0, err
	}
	a, err := plist.Resolve(n, steps...)
	if err != nil {
		return 0, err
	}
	return r.register(&entry{kind: kindAlias, alias: a}, h), nil
}
