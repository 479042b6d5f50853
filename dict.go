package plist

import (
	"iter"
	"slices"
)

// Dict is an insertion-ordered dictionary value.
type Dict struct {
	items map[string]Value
	order []string
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{items: make(map[string]Value)}
}

func (*Dict) Kind() Kind { return KindDict }
func (*Dict) isValue()   {}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.items[key]
	return v, ok
}

// Set stores v under key. An existing key keeps its position.
func (d *Dict) Set(key string, v Value) *Dict {
	if d.items == nil {
		d.items = make(map[string]Value)
	}
	if _, exists := d.items[key]; !exists {
		d.order = append(d.order, key)
	}
	d.items[key] = v
	return d
}

// Delete removes key and reports whether it was present.
func (d *Dict) Delete(key string) bool {
	if _, ok := d.items[key]; !ok {
		return false
	}
	delete(d.items, key)
	d.order = slices.DeleteFunc(d.order, func(k string) bool { return k == key })
	return true
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.order)
}

// All iterates over entries in insertion order.
func (d *Dict) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if d == nil {
			return
		}
		for _, k := range d.order {
			if !yield(k, d.items[k]) {
				return
			}
		}
	}
}

// SortKeys reorders the entries by key.
func (d *Dict) SortKeys() {
	slices.Sort(d.order)
}

// Clone returns a deep copy of the dictionary.
func (d *Dict) Clone() *Dict {
	out := &Dict{
		items: make(map[string]Value, d.Len()),
		order: make([]string, 0, d.Len()),
	}
	for k, v := range d.All() {
		out.items[k] = Copy(v)
		out.order = append(out.order, k)
	}
	return out
}
