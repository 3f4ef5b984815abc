package csvutil

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Builder assembles a CSV the way the spreadsheets on the receiving side
// expect it: UTF-8 BOM prefix, every field quoted with doubled internal
// quotes, CRLF line endings.
type Builder struct {
	buf bytes.Buffer
}

func NewBuilder() *Builder {
	b := &Builder{}
	b.buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
	return b
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func (b *Builder) WriteRow(fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.buf.WriteByte(',')
		}
		b.buf.WriteString(quote(f))
	}
	b.buf.WriteString("\r\n")
}

func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}

// Num serializes a numeric field at full precision.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func Int(v int) string {
	return strconv.Itoa(v)
}

// ServeDownload writes the finished CSV as a download attachment. The
// filename may contain non-ASCII text (batch ids, Chinese labels).
func ServeDownload(w http.ResponseWriter, filename string, b *Builder) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	w.Write(b.Bytes())
}
