package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/feather-lang/plist"
)

// encodeJSON writes v as JSON. Dictionary order is preserved. Data, Date
// and UID have no JSON form; empty Data encodes as null.
func encodeJSON(v plist.Value, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	if !opts.has(Indent) {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %v", plist.ErrFormat, err)
	}
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v plist.Value) error {
	switch val := v.(type) {
	case plist.Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))
	case plist.Integer:
		buf.WriteString(val.String())
	case plist.Real:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v has no JSON form", plist.ErrFormat, f)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	case plist.String:
		return writeJSONString(buf, string(val))
	case plist.Data:
		if len(val) != 0 {
			return fmt.Errorf("%w: data has no JSON form", plist.ErrFormat)
		}
		buf.WriteString("null")
	case plist.Array:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *plist.Dict:
		buf.WriteByte('{')
		i := 0
		for k, item := range val.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %s has no JSON form", plist.ErrFormat, v.Kind())
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: %v", plist.ErrFormat, err)
	}
	buf.Write(b)
	return nil
}

// decodeJSON parses a single JSON document, keeping object key order.
func decodeJSON(data []byte) (plist.Value, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: json: malformed document", plist.ErrParse)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: json: %v", plist.ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: json: trailing data", plist.ErrParse)
	}
	return v, nil
}

func readJSON(dec *json.Decoder) (plist.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			arr := plist.Array{}
			for dec.More() {
				item, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		case '{':
			d := plist.NewDict()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				k, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T", kt)
				}
				item, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				d.Set(k, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return d, nil
		}
		return nil, fmt.Errorf("unexpected %v", t)
	case string:
		return plist.String(t), nil
	case bool:
		return plist.Bool(t), nil
	case json.Number:
		return jsonNumber(string(t))
	case float64:
		return plist.Real(t), nil
	case nil:
		return plist.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %T", tok)
}

func jsonNumber(s string) (plist.Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return plist.Int(n), nil
		}
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return plist.Uint(n), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return plist.Real(f), nil
}
