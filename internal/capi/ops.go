package capi

import (
	"github.com/feather-lang/plist"
)

// moveIn runs op with container h and the owning item, then forgets the
// item's handle family once its value has moved.
func (r *Registry) moveIn(op string, h, item Handle, do func(n node, o *plist.Owned) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf(op, h)
	if err != nil {
		return err
	}
	o, err := r.ownedOf(op, item)
	if err != nil {
		return err
	}
	if err := do(n, o); err != nil {
		return err
	}
	r.consumed(item)
	return nil
}

// child registers an alias produced by an accessor on h.
func (r *Registry) child(h Handle, a *plist.Alias) Handle {
	return r.register(&entry{kind: kindAlias, alias: a}, h)
}

// =============================================================================
// Arrays
// =============================================================================

// ArraySize returns the element count, or 0 if h is not an array.
func (r *Registry) ArraySize(h Handle) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("array size", h)
	if err != nil {
		return 0
	}
	return n.ArrayLen()
}

// ArrayItem returns a handle on element i of h.
func (r *Registry) ArrayItem(h Handle, i int) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("array get item", h)
	if err != nil {
		return 0, err
	}
	a, err := n.Item(i)
	if err != nil {
		return 0, err
	}
	return r.child(h, a), nil
}

func (r *Registry) ArraySetItem(h, item Handle, i int) error {
	return r.moveIn("array set item", h, item, func(n node, o *plist.Owned) error {
		return n.SetItem(o, i)
	})
}

func (r *Registry) ArrayAppend(h, item Handle) error {
	return r.moveIn("array append item", h, item, func(n node, o *plist.Owned) error {
		return n.Append(o)
	})
}

func (r *Registry) ArrayInsert(h, item Handle, i int) error {
	return r.moveIn("array insert item", h, item, func(n node, o *plist.Owned) error {
		return n.Insert(o, i)
	})
}

func (r *Registry) ArrayRemove(h Handle, i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("array remove item", h)
	if err != nil {
		return err
	}
	return n.RemoveItem(i)
}

// ArrayItemRemove removes the element aliased by h from its array.
func (r *Registry) ArrayItemRemove(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, _, err := r.nodeOf("array item remove", h)
	if err != nil {
		return err
	}
	if e.kind != kindAlias {
		return r.misuse("array item remove", h, plist.ErrNotFound)
	}
	return e.alias.RemoveSelf()
}

// ArrayItemIndex returns the current index of the element aliased by h.
func (r *Registry) ArrayItemIndex(h Handle) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, _, err := r.nodeOf("array item index", h)
	if err != nil {
		return -1, err
	}
	if e.kind != kindAlias {
		return -1, plist.ErrNotFound
	}
	i := e.alias.Index()
	if i < 0 {
		return -1, plist.ErrNotFound
	}
	return i, nil
}

// ArrayNext advances cursor c over h. At the end it returns 0.
func (r *Registry) ArrayNext(h, c Handle) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("array next item", h)
	if err != nil {
		return 0, err
	}
	cur, err := r.cursorOf("array next item", c)
	if err != nil {
		return 0, err
	}
	a, err := n.NextItem(cur)
	if err != nil || a == nil {
		return 0, err
	}
	return r.child(h, a), nil
}

// =============================================================================
// Dicts
// =============================================================================

// DictSize returns the entry count, or 0 if h is not a dict.
func (r *Registry) DictSize(h Handle) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("dict size", h)
	if err != nil {
		return 0
	}
	return n.DictLen()
}

// DictItem returns a handle on the value under key.
func (r *Registry) DictItem(h Handle, key string) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("dict get item", h)
	if err != nil {
		return 0, err
	}
	a, err := n.Get(key)
	if err != nil {
		return 0, err
	}
	return r.child(h, a), nil
}

func (r *Registry) DictSet(h Handle, key string, item Handle) error {
	return r.moveIn("dict set item", h, item, func(n node, o *plist.Owned) error {
		return n.Put(key, o)
	})
}

func (r *Registry) DictRemove(h Handle, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("dict remove item", h)
	if err != nil {
		return err
	}
	return n.Delete(key)
}

// DictMerge moves every entry of source into h; source wins on collision.
func (r *Registry) DictMerge(h, source Handle) error {
	return r.moveIn("dict merge", h, source, func(n node, o *plist.Owned) error {
		return n.Merge(o)
	})
}

// DictNext advances cursor c over h. At the end it returns 0.
func (r *Registry) DictNext(h, c Handle) (string, Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("dict next item", h)
	if err != nil {
		return "", 0, err
	}
	cur, err := r.cursorOf("dict next item", c)
	if err != nil {
		return "", 0, err
	}
	k, a, err := n.NextEntry(cur)
	if err != nil || a == nil {
		return "", 0, err
	}
	return k, r.child(h, a), nil
}

// ItemKey returns the key h was found under.
func (r *Registry) ItemKey(h Handle) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, _, err := r.nodeOf("dict item get key", h)
	if err != nil {
		return "", err
	}
	if e.kind == kindAlias {
		if k, ok := e.alias.Key(); ok {
			return k, nil
		}
	}
	return "", plist.ErrNotFound
}

// Sort orders dict keys throughout the tree at h.
func (r *Registry) Sort(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("sort", h)
	if err != nil {
		return err
	}
	return n.Sort()
}

func (r *Registry) copyEntry(op string, fn func(node, plist.Node, string, string) error, dst, src Handle, key, lookup string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, d, err := r.nodeOf(op, dst)
	if err != nil {
		return err
	}
	_, s, err := r.nodeOf(op, src)
	if err != nil {
		return err
	}
	return fn(d, s, key, lookup)
}

func (r *Registry) CopyItem(dst, src Handle, key, lookup string) error {
	return r.copyEntry("dict copy item", node.CopyItem, dst, src, key, lookup)
}

func (r *Registry) CopyBool(dst, src Handle, key, lookup string) error {
	return r.copyEntry("dict copy bool", node.CopyBool, dst, src, key, lookup)
}

func (r *Registry) CopyInt(dst, src Handle, key, lookup string) error {
	return r.copyEntry("dict copy int", node.CopyInt, dst, src, key, lookup)
}

func (r *Registry) CopyUint(dst, src Handle, key, lookup string) error {
	return r.copyEntry("dict copy uint", node.CopyUint, dst, src, key, lookup)
}

func (r *Registry) CopyData(dst, src Handle, key, lookup string) error {
	return r.copyEntry("dict copy data", node.CopyData, dst, src, key, lookup)
}

func (r *Registry) CopyString(dst, src Handle, key, lookup string) error {
	return r.copyEntry("dict copy string", node.CopyString, dst, src, key, lookup)
}

// DictBool reads key from h with boolean coercion, defaulting to false.
func (r *Registry) DictBool(h Handle, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("dict get bool", h)
	if err != nil {
		return false
	}
	return n.GetBool(key)
}

// DictInt reads key from h with integer coercion, defaulting to 0.
func (r *Registry) DictInt(h Handle, key string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("dict get int", h)
	if err != nil {
		return 0
	}
	return n.GetInt(key)
}

// DictUint reads key from h with unsigned coercion, defaulting to 0.
func (r *Registry) DictUint(h Handle, key string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, n, err := r.nodeOf("dict get uint", h)
	if err != nil {
		return 0
	}
	return n.GetUint(key)
}
