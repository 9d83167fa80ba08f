// Package export builds delimited text exports for spreadsheet use.
package export

import (
	"strings"
)

// utf8BOM makes Excel pick UTF-8 instead of the locale codepage.
const utf8BOM = "\uFEFF"

// Column maps a row field to its header label, in output order.
type Column struct {
	Field string
	Label string
}

// Row is one record keyed by field name. Missing fields export as
// empty cells.
type Row map[string]string

// CSV renders rows under an ordered column list: BOM, header row, then
// one line per row with standard CSV quoting.
func CSV(rows []Row, columns []Column) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)

	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = escapeField(col.Label)
	}
	b.WriteString(strings.Join(labels, ","))

	for _, row := range rows {
		b.WriteByte('\n')
		fields := make([]string, len(columns))
		for i, col := range columns {
			fields[i] = escapeField(row[col.Field])
		}
		b.WriteString(strings.Join(fields, ","))
	}

	return []byte(b.String())
}

// escapeField wraps values containing the delimiter, quotes or
// newlines in double quotes, doubling any inner quote.
func escapeField(value string) string {
	if !strings.ContainsAny(value, ",\"\n\r") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
