package plist

import "strconv"

// Step is one hop of a path: a dictionary key or an array index.
type Step struct {
	key   string
	index int
	isKey bool
}

// KeyStep selects the entry under key in a dict.
func KeyStep(key string) Step { return Step{key: key, isKey: true} }

// IndexStep selects element i of an array.
func IndexStep(i int) Step { return Step{index: i} }

func (s Step) String() string {
	if s.isKey {
		return strconv.Quote(s.key)
	}
	return "[" + strconv.Itoa(s.index) + "]"
}

// Resolve walks steps from root and returns an alias on the node reached.
// A key step on a non-dict or an index step on a non-array fails with
// ErrWrongKind; a missing key or index fails with ErrNotFound. With no
// steps, Resolve returns an alias on root itself.
func Resolve(root Node, steps ...Step) (*Alias, error) {
	if root == nil {
		return nil, opErr("resolve", ErrNilHandle)
	}
	h := root.base()
	if _, err := h.resolve(); err != nil {
		return nil, opErr("resolve", err)
	}
	cur := &Alias{handle: handle{arena: h.arena, ref: h.ref}, parent: noRef}
	if a, ok := root.(*Alias); ok {
		cur.parent, cur.pos = a.parent, a.pos
	}
	for _, s := range steps {
		var (
			next *Alias
			err  error
		)
		if s.isKey {
			next, err = cur.Get(s.key)
		} else {
			next, err = cur.Item(s.index)
		}
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
