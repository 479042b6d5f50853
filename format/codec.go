package format

import (
	"bytes"
	"fmt"
	"io"
	"os"

	hplist "howett.net/plist"

	"github.com/feather-lang/plist"
)

var binaryMagic = []byte("bplist00")

// IsBinary reports whether data starts with the binary plist header.
func IsBinary(data []byte) bool {
	return bytes.HasPrefix(data, binaryMagic)
}

// Encode serializes v in format f.
func Encode(v plist.Value, f Format, opts Options) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil value", plist.ErrInvalidArgument)
	}
	var (
		out []byte
		err error
	)
	switch f {
	case XML:
		out, err = marshalNative(v, hplist.XMLFormat, opts)
	case Binary:
		return marshalNative(v, hplist.BinaryFormat, opts)
	case OpenStep:
		out, err = marshalNative(v, hplist.GNUStepFormat, opts)
	case JSON:
		out, err = encodeJSON(v, opts)
	case Print:
		out = encodePrint(v, opts)
	default:
		return nil, fmt.Errorf("%w: cannot encode %s", plist.ErrFormat, f)
	}
	if err != nil {
		return nil, err
	}
	out = bytes.TrimRight(out, "\n")
	if !opts.has(NoNewline) {
		out = append(out, '\n')
	}
	return out, nil
}

func marshalNative(v plist.Value, hf int, opts Options) ([]byte, error) {
	native, err := toNative(v)
	if err != nil {
		return nil, err
	}
	indent := "\t"
	if opts.has(Compact) || hf == hplist.BinaryFormat {
		indent = ""
	}
	out, err := hplist.MarshalIndent(native, hf, indent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plist.ErrFormat, err)
	}
	return out, nil
}

// Decode parses data as format f. With None the format is detected as by
// Sniff. The detected or requested format is returned with the value.
func Decode(data []byte, f Format) (plist.Value, Format, error) {
	switch f {
	case None:
		return Sniff(data)
	case JSON:
		v, err := decodeJSON(data)
		return v, JSON, err
	case XML, Binary, OpenStep:
		v, got, err := decodeNative(data)
		if err != nil {
			return nil, f, err
		}
		if got != f {
			return nil, f, fmt.Errorf("%w: input is %s, not %s", plist.ErrParse, got, f)
		}
		return v, got, nil
	}
	return nil, f, fmt.Errorf("%w: cannot decode %s", plist.ErrFormat, f)
}

func decodeNative(data []byte) (plist.Value, Format, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, None, fmt.Errorf("%w: empty input", plist.ErrParse)
	}
	var native any
	hf, err := hplist.Unmarshal(data, &native)
	if err != nil {
		return nil, None, fmt.Errorf("%w: %v", plist.ErrParse, err)
	}
	var f Format
	switch hf {
	case hplist.XMLFormat:
		f = XML
	case hplist.BinaryFormat:
		f = Binary
	case hplist.OpenStepFormat, hplist.GNUStepFormat:
		f = OpenStep
	default:
		return nil, None, fmt.Errorf("%w: unrecognised input", plist.ErrParse)
	}
	v, err := fromNative(native)
	if err != nil {
		return nil, None, err
	}
	return v, f, nil
}

// Sniff detects the format of data and decodes it. XML and binary are
// tried first, then JSON, then OpenStep. Bare JSON scalars are also valid
// OpenStep strings, so JSON wins when both parse.
func Sniff(data []byte) (plist.Value, Format, error) {
	v, f, err := decodeNative(data)
	if err == nil && (f == XML || f == Binary) {
		return v, f, nil
	}
	if IsBinary(data) {
		return nil, None, err
	}
	if jv, jerr := decodeJSON(data); jerr == nil {
		return jv, JSON, nil
	}
	if err == nil {
		return v, f, nil
	}
	return nil, None, err
}

// Write encodes v to w.
func Write(w io.Writer, v plist.Value, f Format, opts Options) error {
	out, err := Encode(v, f, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: %v", plist.ErrIO, err)
	}
	return nil
}

// ReadFile reads and decodes the file at path, detecting its format.
func ReadFile(path string) (plist.Value, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, None, fmt.Errorf("%w: %v", plist.ErrIO, err)
	}
	return Sniff(data)
}

// WriteFile encodes v and writes it to path.
func WriteFile(path string, v plist.Value, f Format, opts Options) error {
	out, err := Encode(v, f, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("%w: %v", plist.ErrIO, err)
	}
	return nil
}
