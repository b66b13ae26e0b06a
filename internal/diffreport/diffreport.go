// Package diffreport renders the before/after report formatter hooks print
// when a file is not formatted the way its tool wants.
package diffreport

import (
	"bytes"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// ContextLines is the number of unchanged lines kept around each hunk.
const ContextLines = 3

const (
	fromFile = "original"
	toFile   = "formatted"
	rule     = "===================="
)

// Report returns the report for one file, or nil when the contents match.
//
// The layout is the one pre-commit users of these hooks have always seen:
//
//	<filename>
//	====================
//	--- original
//
//	+++ formatted
//
//	@@ -1,2 +1,5 @@
//
//	 unchanged line
//	-removed line
//	+added line
func Report(filename string, before, after []byte) []byte {
	body := Unified(before, after)
	if body == nil {
		return nil
	}
	var buf bytes.Buffer
	buf.WriteString(filename)
	buf.WriteByte('\n')
	buf.WriteString(rule)
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes()
}

// Unified returns the unified diff body between before and after. Header
// and hunk lines are followed by an empty line; content lines are not.
func Unified(before, after []byte) []byte {
	return Labeled(before, after, fromFile, toFile)
}

// Labeled is Unified with custom header labels.
func Labeled(before, after []byte, from, to string) []byte {
	if bytes.Equal(before, after) {
		return nil
	}
	a := splitLines(before)
	b := splitLines(after)

	m := difflib.NewMatcher(a, b)
	groups := m.GetGroupedOpCodes(ContextLines)
	if len(groups) == 0 {
		return nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n\n+++ %s\n\n", from, to)
	for _, g := range groups {
		first, last := g[0], g[len(g)-1]
		fmt.Fprintf(&buf, "@@ -%s +%s @@\n\n", formatRange(first.I1, last.I2), formatRange(first.J1, last.J2))
		for _, c := range g {
			switch c.Tag {
			case 'e':
				writeLines(&buf, ' ', a[c.I1:c.I2])
			case 'r':
				writeLines(&buf, '-', a[c.I1:c.I2])
				writeLines(&buf, '+', b[c.J1:c.J2])
			case 'd':
				writeLines(&buf, '-', a[c.I1:c.I2])
			case 'i':
				writeLines(&buf, '+', b[c.J1:c.J2])
			}
		}
	}
	return buf.Bytes()
}

func writeLines(buf *bytes.Buffer, prefix byte, lines []string) {
	for _, l := range lines {
		buf.WriteByte(prefix)
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
}

// formatRange renders a hunk range the way unified diff does: a lone line
// is shown without a length and an empty range points at the line before.
func formatRange(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}

// splitLines splits on '\n' and keeps a trailing empty element when the
// content ends with a newline, so a missing final newline is a difference.
func splitLines(content []byte) []string {
	parts := bytes.Split(content, []byte{'\n'})
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = string(p)
	}
	return lines
}
