package plist_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/feather-lang/plist"
)

// =============================================================================
// Arrays
// =============================================================================

func TestArrayMutators(t *testing.T) {
	a := plist.NewArena()
	arr := intArray(a, 1, 2, 3)
	defer arr.Free()

	t.Run("Len", func(t *testing.T) {
		if n := arr.ArrayLen(); n != 3 {
			t.Errorf("expected 3, got %d", n)
		}
		d := a.NewDict()
		defer d.Free()
		if n := d.ArrayLen(); n != 0 {
			t.Errorf("expected 0 for dict, got %d", n)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		if _, err := arr.Item(3); !errors.Is(err, plist.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, err := arr.Item(-1); !errors.Is(err, plist.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		item := a.NewInt(0)
		defer item.Free()
		if err := arr.Insert(item, 4); !errors.Is(err, plist.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if item.Err() != nil {
			t.Errorf("rejected item should stay usable, got %v", item.Err())
		}
	})

	t.Run("SetInsertRemove", func(t *testing.T) {
		if err := arr.SetItem(a.NewString("two"), 1); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		if err := arr.Insert(a.NewInt(0), 0); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := arr.Insert(a.NewInt(4), arr.ArrayLen()); err != nil {
			t.Fatalf("Insert at end failed: %v", err)
		}
		if err := arr.RemoveItem(2); err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
		want := plist.Array{plist.Int(0), plist.Int(1), plist.Int(3), plist.Int(4)}
		if got := mustValue(t, arr); !plist.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if a.Live() != 5 {
			t.Errorf("expected 5 live nodes, got %d", a.Live())
		}
	})

	t.Run("WrongKind", func(t *testing.T) {
		s := a.NewString("x")
		defer s.Free()
		if _, err := s.Item(0); !errors.Is(err, plist.ErrWrongKind) {
			t.Errorf("expected ErrWrongKind, got %v", err)
		}
	})
}

func TestCursorExhaustion(t *testing.T) {
	a := plist.NewArena()
	arr := intArray(a, 10, 20, 30)
	defer arr.Free()

	for round := 0; round < 2; round++ {
		c := plist.NewCursor()
		for i := 0; i < 3; i++ {
			item, err := arr.NextItem(c)
			if err != nil || item == nil {
				t.Fatalf("round %d: NextItem %d = %v, %v", round, i, item, err)
			}
			if item.Index() != i {
				t.Errorf("round %d: expected index %d, got %d", round, i, item.Index())
			}
			if got := mustValue(t, item); !plist.Equal(got, plist.Int(int64(10*(i+1)))) {
				t.Errorf("round %d: unexpected element %v", round, got)
			}
		}
		item, err := arr.NextItem(c)
		if err != nil || item != nil {
			t.Errorf("round %d: expected end, got %v, %v", round, item, err)
		}
	}

	t.Run("Items", func(t *testing.T) {
		var idx []int
		for i := range arr.Items() {
			idx = append(idx, i)
		}
		if !slices.Equal(idx, []int{0, 1, 2}) {
			t.Errorf("expected [0 1 2], got %v", idx)
		}
	})
}

func TestRemoveSelf(t *testing.T) {
	a := plist.NewArena()
	arr := intArray(a, 10, 20, 30)
	defer arr.Free()

	twenty, _ := arr.Item(1)
	if err := arr.RemoveItem(0); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if twenty.Index() != 0 {
		t.Errorf("expected alias to report index 0, got %d", twenty.Index())
	}
	if err := twenty.RemoveSelf(); err != nil {
		t.Fatalf("RemoveSelf failed: %v", err)
	}
	want := plist.Array{plist.Int(30)}
	if got := mustValue(t, arr); !plist.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if err := twenty.RemoveSelf(); !errors.Is(err, plist.ErrStale) {
		t.Errorf("expected ErrStale, got %v", err)
	}
	if got := mustValue(t, arr); !plist.Equal(got, want) {
		t.Errorf("second RemoveSelf changed the array: %v", got)
	}

	t.Run("KeyAlias", func(t *testing.T) {
		d := a.New(plist.NewDict().Set("k", plist.Int(1)))
		defer d.Free()
		k, _ := d.Get("k")
		if err := k.RemoveSelf(); !errors.Is(err, plist.ErrWrongKind) {
			t.Errorf("expected ErrWrongKind, got %v", err)
		}
	})
}

// =============================================================================
// Dicts
// =============================================================================

func TestDictMutators(t *testing.T) {
	a := plist.NewArena()
	d := a.NewDict()
	defer d.Free()

	d.Put("b", a.NewInt(2))
	d.Put("a", a.NewInt(1))
	d.Put("b", a.NewString("two"))

	if n := d.DictLen(); n != 2 {
		t.Errorf("expected 2 entries, got %d", n)
	}
	var keys []string
	for k := range d.Entries() {
		keys = append(keys, k)
	}
	if !slices.Equal(keys, []string{"b", "a"}) {
		t.Errorf("expected insertion order [b a], got %v", keys)
	}
	if a.Live() != 3 {
		t.Errorf("expected 3 live nodes, got %d", a.Live())
	}

	t.Run("Delete", func(t *testing.T) {
		if err := d.Delete("missing"); !errors.Is(err, plist.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		b, _ := d.Get("b")
		if err := d.Delete("b"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if !errors.Is(b.Err(), plist.ErrStale) {
			t.Errorf("expected ErrStale, got %v", b.Err())
		}
		if _, err := d.Get("b"); !errors.Is(err, plist.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("NextEntry", func(t *testing.T) {
		c := plist.NewCursor()
		k, item, err := d.NextEntry(c)
		if err != nil || k != "a" || item == nil {
			t.Fatalf("NextEntry = %q, %v, %v", k, item, err)
		}
		if key, ok := item.Key(); !ok || key != "a" {
			t.Errorf("Key() = %q, %v", key, ok)
		}
		if _, item, _ := d.NextEntry(c); item != nil {
			t.Errorf("expected end, got %v", item)
		}
	})

	t.Run("SortKeys", func(t *testing.T) {
		s := a.New(plist.NewDict().Set("z", plist.Int(0)).Set("m", plist.Int(0)).Set("a", plist.Int(0)))
		defer s.Free()
		if err := s.SortKeys(); err != nil {
			t.Fatalf("SortKeys failed: %v", err)
		}
		v := mustValue(t, s).(*plist.Dict)
		if !slices.Equal(v.Keys(), []string{"a", "m", "z"}) {
			t.Errorf("expected sorted keys, got %v", v.Keys())
		}
	})

	t.Run("SortNested", func(t *testing.T) {
		inner := plist.NewDict().Set("y", plist.Int(0)).Set("x", plist.Int(0))
		s := a.New(plist.NewDict().Set("b", plist.Array{inner}).Set("a", plist.Int(0)))
		defer s.Free()
		if err := s.Sort(); err != nil {
			t.Fatalf("Sort failed: %v", err)
		}
		v := mustValue(t, s).(*plist.Dict)
		if !slices.Equal(v.Keys(), []string{"a", "b"}) {
			t.Errorf("expected sorted outer keys, got %v", v.Keys())
		}
		b, _ := v.Get("b")
		got := b.(plist.Array)[0].(*plist.Dict)
		if !slices.Equal(got.Keys(), []string{"x", "y"}) {
			t.Errorf("expected sorted inner keys, got %v", got.Keys())
		}
		scalar := a.NewInt(1)
		defer scalar.Free()
		if err := scalar.Sort(); err != nil {
			t.Errorf("Sort on scalar = %v", err)
		}
	})
}

func TestMergeCollision(t *testing.T) {
	a := plist.NewArena()
	target := a.New(plist.NewDict().Set("a", plist.Int(0)).Set("c", plist.Int(3)))
	defer target.Free()
	source := a.New(plist.NewDict().Set("a", plist.Int(1)).Set("b", plist.Int(2)))

	if err := target.Merge(source); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	want := plist.NewDict().Set("a", plist.Int(1)).Set("b", plist.Int(2)).Set("c", plist.Int(3))
	got := mustValue(t, target)
	if !plist.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if keys := got.(*plist.Dict).Keys(); !slices.Equal(keys, []string{"a", "c", "b"}) {
		t.Errorf("expected [a c b], got %v", keys)
	}
	if !errors.Is(source.Err(), plist.ErrConsumed) {
		t.Errorf("expected source to be consumed, got %v", source.Err())
	}
	if a.Live() != 4 {
		t.Errorf("expected 4 live nodes, got %d", a.Live())
	}

	t.Run("NotDict", func(t *testing.T) {
		arr := a.NewArray()
		defer arr.Free()
		if err := target.Merge(arr); !errors.Is(err, plist.ErrWrongKind) {
			t.Errorf("expected ErrWrongKind, got %v", err)
		}
		if arr.Err() != nil {
			t.Errorf("rejected source should stay usable, got %v", arr.Err())
		}
	})

	t.Run("Self", func(t *testing.T) {
		if err := target.Merge(target); !errors.Is(err, plist.ErrCycle) {
			t.Errorf("expected ErrCycle, got %v", err)
		}
	})
}

// =============================================================================
// Coercion
// =============================================================================

func TestCoercionTable(t *testing.T) {
	a := plist.NewArena()
	src := a.New(plist.NewDict().
		Set("blob16", plist.Data{0x34, 0x12}).
		Set("zero", plist.Data{0x00}).
		Set("five", plist.Data{0x05}).
		Set("hex", plist.String("2A")).
		Set("prefixed", plist.String("0x2a")).
		Set("dec", plist.String("-17")).
		Set("odd", plist.Data{1, 2, 3}).
		Set("yes", plist.String("TRUE")).
		Set("no", plist.String("false")).
		Set("neg", plist.Int(-1)).
		Set("int0", plist.Int(0)).
		Set("int3", plist.Int(3)).
		Set("real", plist.Real(1.5)).
		Set("blob32", plist.Data{0xff, 0xff, 0xff, 0xff}))
	defer src.Free()

	t.Run("Int", func(t *testing.T) {
		tests := []struct {
			key  string
			want int64
		}{
			{"blob16", 0x1234},
			{"hex", 42},
			{"prefixed", 42},
			{"dec", -17},
			{"neg", -1},
			{"blob32", -1},
			{"odd", 0},
			{"real", 0},
			{"missing", 0},
		}
		for _, tt := range tests {
			if got := src.GetInt(tt.key); got != tt.want {
				t.Errorf("GetInt(%q) = %d; want %d", tt.key, got, tt.want)
			}
		}
	})

	t.Run("Uint", func(t *testing.T) {
		if got := src.GetUint("neg"); got != math.MaxUint64 {
			t.Errorf("GetUint(neg) = %d; want MaxUint64", got)
		}
		if got := src.GetUint("blob32"); got != 0xffffffff {
			t.Errorf("GetUint(blob32) = %#x; want 0xffffffff", got)
		}
	})

	t.Run("Bool", func(t *testing.T) {
		tests := []struct {
			key  string
			want bool
		}{
			{"zero", false},
			{"five", true},
			{"yes", true},
			{"no", false},
			{"int0", false},
			{"int3", true},
			{"neg", false},
			{"blob16", false},
			{"missing", false},
		}
		for _, tt := range tests {
			if got := src.GetBool(tt.key); got != tt.want {
				t.Errorf("GetBool(%q) = %v; want %v", tt.key, got, tt.want)
			}
		}
	})

	t.Run("Copy", func(t *testing.T) {
		dst := a.NewDict()
		defer dst.Free()

		if err := dst.CopyInt(src, "n", "blob16"); err != nil {
			t.Fatalf("CopyInt failed: %v", err)
		}
		if err := dst.CopyBool(src, "flag", "five"); err != nil {
			t.Fatalf("CopyBool failed: %v", err)
		}
		if err := dst.CopyUint(src, "hex", ""); err != nil {
			t.Fatalf("CopyUint failed: %v", err)
		}
		if err := dst.CopyString(src, "s", "dec"); err != nil {
			t.Fatalf("CopyString failed: %v", err)
		}
		if err := dst.CopyData(src, "zero", ""); err != nil {
			t.Fatalf("CopyData failed: %v", err)
		}
		if err := dst.CopyItem(src, "r", "real"); err != nil {
			t.Fatalf("CopyItem failed: %v", err)
		}
		want := plist.NewDict().
			Set("n", plist.Int(0x1234)).
			Set("flag", plist.Bool(true)).
			Set("hex", plist.Uint(42)).
			Set("s", plist.String("-17")).
			Set("zero", plist.Data{0x00}).
			Set("r", plist.Real(1.5))
		if got := mustValue(t, dst); !plist.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("CopyFailures", func(t *testing.T) {
		dst := a.NewDict()
		defer dst.Free()

		tests := []struct {
			name string
			err  error
			call func() error
		}{
			{"OddBlob", plist.ErrNoCoercion, func() error { return dst.CopyInt(src, "x", "odd") }},
			{"RealAsBool", plist.ErrNoCoercion, func() error { return dst.CopyBool(src, "x", "real") }},
			{"IntAsString", plist.ErrNoCoercion, func() error { return dst.CopyString(src, "x", "neg") }},
			{"StringAsData", plist.ErrNoCoercion, func() error { return dst.CopyData(src, "x", "hex") }},
			{"Missing", plist.ErrNotFound, func() error { return dst.CopyItem(src, "x", "missing") }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.call()
				if !errors.Is(err, tt.err) {
					t.Errorf("expected %v, got %v", tt.err, err)
				}
				if plist.CodeOf(err) != plist.CodeInvalidArg {
					t.Errorf("expected CodeInvalidArg, got %v", plist.CodeOf(err))
				}
			})
		}
		if n := dst.DictLen(); n != 0 {
			t.Errorf("failed copies should not store anything, got %d entries", n)
		}
	})
}

// =============================================================================
// Paths
// =============================================================================

func TestResolve(t *testing.T) {
	a := plist.NewArena()
	root := a.New(plist.NewDict().Set("a", plist.Array{plist.NewDict().Set("b", plist.Int(7))}))
	defer root.Free()

	t.Run("Found", func(t *testing.T) {
		n, err := plist.Resolve(root, plist.KeyStep("a"), plist.IndexStep(0), plist.KeyStep("b"))
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if got := mustValue(t, n); !plist.Equal(got, plist.Int(7)) {
			t.Errorf("expected 7, got %v", got)
		}
		if err := n.Set(plist.Int(8)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if got := root.GetInt("a"); got != 0 {
			t.Errorf("GetInt on array entry should default, got %d", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		n, err := plist.Resolve(root)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if n.Kind() != plist.KindDict {
			t.Errorf("expected dict, got %v", n.Kind())
		}
	})

	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			name  string
			steps []plist.Step
			err   error
		}{
			{"MissingKey", []plist.Step{plist.KeyStep("x")}, plist.ErrNotFound},
			{"IndexOnDict", []plist.Step{plist.IndexStep(0)}, plist.ErrWrongKind},
			{"KeyOnArray", []plist.Step{plist.KeyStep("a"), plist.KeyStep("b")}, plist.ErrWrongKind},
			{"OutOfBounds", []plist.Step{plist.KeyStep("a"), plist.IndexStep(1)}, plist.ErrNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := plist.Resolve(root, tt.steps...); !errors.Is(err, tt.err) {
					t.Errorf("expected %v, got %v", tt.err, err)
				}
			})
		}
	})
}
