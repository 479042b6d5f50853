package format

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/feather-lang/plist"
)

// dataPreview is the number of bytes shown for data under PartialData.
const dataPreview = 20

// encodePrint renders v for humans. The output is not meant to be parsed.
func encodePrint(v plist.Value, opts Options) []byte {
	var buf bytes.Buffer
	p := printer{buf: &buf, opts: opts}
	p.value(v, 0)
	return buf.Bytes()
}

type printer struct {
	buf  *bytes.Buffer
	opts Options
}

func (p *printer) open(depth int) {
	if p.opts.has(Compact) {
		return
	}
	p.buf.WriteByte('\n')
	p.buf.WriteString(strings.Repeat("  ", depth))
}

func (p *printer) sep() {
	p.buf.WriteByte(',')
	if p.opts.has(Compact) {
		p.buf.WriteByte(' ')
	}
}

func (p *printer) value(v plist.Value, depth int) {
	switch val := v.(type) {
	case plist.Array:
		if len(val) == 0 {
			p.buf.WriteString("[]")
			return
		}
		p.buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				p.sep()
			}
			p.open(depth + 1)
			p.value(item, depth+1)
		}
		p.open(depth)
		p.buf.WriteByte(']')
	case *plist.Dict:
		if val.Len() == 0 {
			p.buf.WriteString("{}")
			return
		}
		p.buf.WriteByte('{')
		i := 0
		for k, item := range val.All() {
			if i > 0 {
				p.sep()
			}
			i++
			p.open(depth + 1)
			p.buf.WriteString(k)
			p.buf.WriteString(": ")
			p.value(item, depth+1)
		}
		p.open(depth)
		p.buf.WriteByte('}')
	case plist.Bool:
		p.buf.WriteString(strconv.FormatBool(bool(val)))
	case plist.Integer:
		p.buf.WriteString(val.String())
	case plist.Real:
		p.buf.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
	case plist.String:
		p.buf.WriteString(strconv.Quote(string(val)))
	case plist.Data:
		p.data(val)
	case plist.Date:
		fmt.Fprintf(p.buf, "Date(%s)", val.Time().UTC().Format(time.RFC3339))
	case plist.UID:
		fmt.Fprintf(p.buf, "Uid(%d)", uint64(val))
	default:
		p.buf.WriteString("Unknown")
	}
}

func (p *printer) data(d plist.Data) {
	shown := d
	if p.opts.has(PartialData) && len(d) > dataPreview {
		shown = d[:dataPreview]
	}
	hex := make([]string, len(shown))
	for i, b := range shown {
		hex[i] = fmt.Sprintf("%02X", b)
	}
	more := ""
	if len(shown) < len(d) {
		more = "..."
	}
	fmt.Fprintf(p.buf, "Data(%s%s Len: %d)", strings.Join(hex, " "), more, len(d))
}
