// Package format converts plist values to and from their serialized forms:
// XML, binary, OpenStep, JSON and a human-readable print format.
package format

import (
	"fmt"
	"strings"
)

// Format identifies a serialization. Values match libplist's plist_format_t.
type Format int

const (
	None     Format = 0
	XML      Format = 1
	Binary   Format = 2
	JSON     Format = 3
	OpenStep Format = 4
	Print    Format = 10
)

func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case Binary:
		return "binary"
	case JSON:
		return "json"
	case OpenStep:
		return "openstep"
	case Print:
		return "print"
	default:
		return "none"
	}
}

// Parse returns the format named s. Matching ignores case, and "bin",
// "ostep" and "text" are accepted as aliases.
func Parse(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "xml":
		return XML, nil
	case "binary", "bin":
		return Binary, nil
	case "json":
		return JSON, nil
	case "openstep", "ostep":
		return OpenStep, nil
	case "print", "text":
		return Print, nil
	}
	return None, fmt.Errorf("unknown format %q", s)
}

// Options adjust encoding. Values match libplist's plist_write_options_t.
type Options uint32

const (
	// Compact drops indentation from XML, OpenStep and print output.
	Compact Options = 1 << 0

	// PartialData limits the print format's data preview to its first bytes.
	PartialData Options = 1 << 1

	// NoNewline suppresses the trailing newline.
	NoNewline Options = 1 << 2

	// Indent pretty-prints JSON.
	Indent Options = 1 << 3
)

func (o Options) has(flag Options) bool { return o&flag != 0 }
