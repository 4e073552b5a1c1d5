// Package markdown parses pipe-delimited Markdown tables out of free-form
// LLM reply text: a header row, a separator row, and data rows.
package markdown

import (
	"regexp"
	"strings"
)

// Table is one parsed pipe table: Headers has the column names, each entry
// in Rows has len(Headers) cells in the same order.
type Table struct {
	Headers []string
	Rows    [][]string
}

var separatorCell = regexp.MustCompile(`^:?-{1,}:?$`)

// ParseTables scans text for every Markdown pipe table it contains: a row
// of `| cell | cell |`, immediately followed by a separator row of
// `| --- | --- |`-style cells, followed by zero or more data rows. Any
// non-table text is skipped. Unparseable or absent tables yield a nil slice,
// not an error — callers record that as a parse-error note (§4.11).
func ParseTables(text string) []Table {
	lines := strings.Split(text, "\n")

	var tables []Table
	for i := 0; i < len(lines); i++ {
		header, ok := splitRow(lines[i])
		if !ok {
			continue
		}
		if i+1 >= len(lines) || !isSeparatorRow(lines[i+1], len(header)) {
			continue
		}

		table := Table{Headers: header}
		j := i + 2
		for j < len(lines) {
			row, ok := splitRow(lines[j])
			if !ok {
				break
			}
			table.Rows = append(table.Rows, padOrTrim(row, len(header)))
			j++
		}

		tables = append(tables, table)
		i = j - 1
	}

	return tables
}

// splitRow splits one `| a | b |` line into trimmed cells. A line with no
// pipe at all is not a table row.
func splitRow(line string) ([]string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "|") {
		return nil, false
	}
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	if strings.TrimSpace(trimmed) == "" {
		return nil, false
	}

	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells, true
}

func isSeparatorRow(line string, width int) bool {
	cells, ok := splitRow(line)
	if !ok || len(cells) != width {
		return false
	}
	for _, c := range cells {
		if !separatorCell.MatchString(c) {
			return false
		}
	}
	return true
}

func padOrTrim(cells []string, width int) []string {
	if len(cells) == width {
		return cells
	}
	out := make([]string, width)
	copy(out, cells)
	return out
}
