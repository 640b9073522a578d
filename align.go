package statuspaper

import (
	"strings"
	"unicode/utf8"
)

// Row is a label/value pair. The zero Row is a group separator.
type Row struct {
	Label string
	Value string
}

// IsSeparator reports whether r separates two groups.
func (r Row) IsSeparator() bool {
	return r == Row{}
}

// Align formats rows into display lines, one per row and in the same order.
//
// Labelled rows become "label:" followed by enough spaces that every value in
// the same group starts in the same column, one column after the longest label's
// colon. Separators become empty strings. Groups are aligned independently.
func Align(rows []Row) []string {
	// Longest label per group; a group with no labelled rows keeps -1.
	widths := []int{-1}
	for _, r := range rows {
		if r.IsSeparator() {
			widths = append(widths, -1)
			continue
		}
		if n := utf8.RuneCountInString(r.Label); n > widths[len(widths)-1] {
			widths[len(widths)-1] = n
		}
	}

	out := make([]string, 0, len(rows))
	group := 0
	for _, r := range rows {
		if r.IsSeparator() {
			out = append(out, "")
			group++
			continue
		}
		pad := widths[group] - utf8.RuneCountInString(r.Label) + 1
		out = append(out, r.Label+":"+strings.Repeat(" ", pad)+r.Value)
	}
	return out
}
