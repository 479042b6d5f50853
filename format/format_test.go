package format_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/feather-lang/plist"
	"github.com/feather-lang/plist/format"
)

func sampleTree() *plist.Dict {
	return plist.NewDict().
		Set("name", plist.String("feather <&> \"plist\"")).
		Set("enabled", plist.Bool(true)).
		Set("count", plist.Int(-42)).
		Set("big", plist.Uint(math.MaxUint64)).
		Set("ratio", plist.Real(1.5)).
		Set("items", plist.Array{plist.Int(1), plist.String("two"), plist.Array{}}).
		Set("nested", plist.NewDict().Set("deep", plist.Bool(false)))
}

func richTree() *plist.Dict {
	return sampleTree().
		Set("blob", plist.Data{0xde, 0xad, 0xbe, 0xef}).
		Set("when", plist.Unix(1700000000)).
		Set("ref", plist.UID(7))
}

// =============================================================================
// Round trips
// =============================================================================

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		f    format.Format
		tree plist.Value
	}{
		{format.XML, richTree()},
		{format.Binary, richTree()},
		{format.OpenStep, richTree()},
		{format.JSON, sampleTree().Set("nothing", plist.Null())},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			data, err := format.Encode(tt.tree, tt.f, 0)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, f, err := format.Decode(data, tt.f)
			if err != nil {
				t.Fatalf("Decode failed: %v\n%s", err, data)
			}
			if f != tt.f {
				t.Errorf("expected format %v, got %v", tt.f, f)
			}
			if !plist.Equal(got, tt.tree) {
				t.Errorf("round trip mismatch\nwant %v\ngot  %v", tt.tree, got)
			}

			sniffed, sf, err := format.Sniff(data)
			if err != nil {
				t.Fatalf("Sniff failed: %v", err)
			}
			if sf != tt.f {
				t.Errorf("Sniff detected %v, want %v", sf, tt.f)
			}
			if !plist.Equal(sniffed, tt.tree) {
				t.Errorf("sniffed value mismatch")
			}
		})
	}
}

func TestThroughArena(t *testing.T) {
	a := plist.NewArena()
	root := a.New(richTree())
	defer root.Free()

	v, err := root.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	data, err := format.Encode(v, format.Binary, 0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !format.IsBinary(data) {
		t.Errorf("expected binary header")
	}
	back, _, err := format.Decode(data, format.None)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	loaded := a.New(back)
	defer loaded.Free()
	if loaded.GetInt("count") != -42 {
		t.Errorf("expected count -42, got %d", loaded.GetInt("count"))
	}
}

// =============================================================================
// JSON
// =============================================================================

func TestJSON(t *testing.T) {
	t.Run("KeyOrder", func(t *testing.T) {
		v, _, err := format.Decode([]byte(`{"z":1,"a":2,"m":{"y":true,"b":null}}`), format.JSON)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		d := v.(*plist.Dict)
		if !slices.Equal(d.Keys(), []string{"z", "a", "m"}) {
			t.Errorf("expected key order [z a m], got %v", d.Keys())
		}
		out, err := format.Encode(v, format.JSON, format.NoNewline)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if string(out) != `{"z":1,"a":2,"m":{"y":true,"b":null}}` {
			t.Errorf("unexpected output %s", out)
		}
	})

	t.Run("Numbers", func(t *testing.T) {
		v, _, err := format.Decode([]byte(`[1, -2, 18446744073709551615, 2.0, 1e3]`), format.JSON)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		want := plist.Array{plist.Int(1), plist.Int(-2), plist.Uint(math.MaxUint64), plist.Real(2), plist.Real(1000)}
		if !plist.Equal(v, want) {
			t.Errorf("expected %v, got %v", want, v)
		}
		out, _ := format.Encode(plist.Array{plist.Real(2)}, format.JSON, format.NoNewline)
		if string(out) != "[2.0]" {
			t.Errorf("expected [2.0], got %s", out)
		}
	})

	t.Run("Unrepresentable", func(t *testing.T) {
		for _, v := range []plist.Value{plist.Data{1}, plist.Unix(0), plist.UID(1), plist.Real(math.NaN())} {
			_, err := format.Encode(plist.Array{v}, format.JSON, 0)
			if !errors.Is(err, plist.ErrFormat) {
				t.Errorf("%v: expected ErrFormat, got %v", v.Kind(), err)
			}
			if plist.CodeOf(err) != plist.CodeFormat {
				t.Errorf("%v: expected CodeFormat, got %v", v.Kind(), plist.CodeOf(err))
			}
		}
	})

	t.Run("Indent", func(t *testing.T) {
		out, err := format.Encode(plist.NewDict().Set("a", plist.Int(1)), format.JSON, format.Indent)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if string(out) != "{\n  \"a\": 1\n}\n" {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, in := range []string{`{"a":}`, `[1 2]`, `{"a":1} x`, ``} {
			if _, _, err := format.Decode([]byte(in), format.JSON); !errors.Is(err, plist.ErrParse) {
				t.Errorf("%q: expected ErrParse, got %v", in, err)
			}
		}
	})
}

// =============================================================================
// Detection and errors
// =============================================================================

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want format.Format
	}{
		{"XML", `<?xml version="1.0" encoding="UTF-8"?><plist version="1.0"><string>hi</string></plist>`, format.XML},
		{"JSONObject", `{"a": [1, 2]}`, format.JSON},
		{"JSONString", `"hi"`, format.JSON},
		{"OpenStep", `{ a = (1, 2); }`, format.OpenStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, f, err := format.Sniff([]byte(tt.in))
			if err != nil {
				t.Fatalf("Sniff failed: %v", err)
			}
			if f != tt.want {
				t.Errorf("expected %v, got %v", tt.want, f)
			}
		})
	}

	t.Run("Garbage", func(t *testing.T) {
		_, _, err := format.Sniff([]byte("bplist00 not really"))
		if !errors.Is(err, plist.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})
}

func TestDecodeWrongFormat(t *testing.T) {
	data, _ := format.Encode(sampleTree(), format.XML, 0)
	if _, _, err := format.Decode(data, format.Binary); !errors.Is(err, plist.ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
	if _, _, err := format.Decode(data, format.Print); !errors.Is(err, plist.ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
	if _, err := format.Encode(sampleTree(), format.None, 0); !errors.Is(err, plist.ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.plist")

	if err := format.WriteFile(path, richTree(), format.XML, 0); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	v, f, err := format.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if f != format.XML || !plist.Equal(v, richTree()) {
		t.Errorf("unexpected read back: %v %v", f, v)
	}

	_, _, err = format.ReadFile(filepath.Join(dir, "missing.plist"))
	if !errors.Is(err, plist.ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
	if plist.CodeOf(err) != plist.CodeIO {
		t.Errorf("expected CodeIO, got %v", plist.CodeOf(err))
	}

	err = format.WriteFile(filepath.Join(dir, "no", "such", "dir.plist"), richTree(), format.XML, 0)
	if !errors.Is(err, plist.ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("written file missing: %v", statErr)
	}
}

// =============================================================================
// Print
// =============================================================================

func TestPrint(t *testing.T) {
	v := plist.NewDict().
		Set("list", plist.Array{plist.Int(1), plist.Bool(true)}).
		Set("name", plist.String("x"))

	out, err := format.Encode(v, format.Print, 0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := "{\n  list: [\n    1,\n    true\n  ],\n  name: \"x\"\n}\n"
	if string(out) != want {
		t.Errorf("expected\n%s\ngot\n%s", want, out)
	}

	compact, _ := format.Encode(v, format.Print, format.Compact|format.NoNewline)
	if string(compact) != `{list: [1, true], name: "x"}` {
		t.Errorf("unexpected compact output %q", compact)
	}

	t.Run("PartialData", func(t *testing.T) {
		blob := bytes.Repeat([]byte{0xab}, 25)
		out, _ := format.Encode(plist.Data(blob), format.Print, format.PartialData|format.NoNewline)
		if !strings.HasSuffix(string(out), "AB... Len: 25)") {
			t.Errorf("unexpected preview %q", out)
		}
		full, _ := format.Encode(plist.Data(blob), format.Print, format.NoNewline)
		if strings.Contains(string(full), "...") {
			t.Errorf("full output should not be truncated: %q", full)
		}
	})
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]format.Format{
		"xml": format.XML, "BIN": format.Binary, "json": format.JSON, "ostep": format.OpenStep,
	} {
		got, err := format.Parse(name)
		if err != nil || got != want {
			t.Errorf("Parse(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := format.Parse("yaml"); err == nil {
		t.Errorf("expected error for unknown format")
	}
}
