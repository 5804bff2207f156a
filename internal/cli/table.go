// Package cli provides the command-line interface for albumtint.
package cli

import "strings"

// Table lays out rows in aligned columns for terminal output.
type Table struct {
	headers []string
	rows    [][]string
	limits  []int
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		limits:  make([]int, len(headers)),
	}
}

// Limit caps the width of a column; longer cells wrap onto extra lines.
func (t *Table) Limit(column, width int) {
	if column >= 0 && column < len(t.limits) {
		t.limits[column] = width
	}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Render returns the table as a header line, a dashed separator and one or
// more lines per row when cells wrap.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	wrapped, widths := t.layout()

	var b strings.Builder
	t.writeLine(&b, t.headers, widths)

	separators := make([]string, len(widths))
	for i, w := range widths {
		separators[i] = strings.Repeat("-", w)
	}
	t.writeLine(&b, separators, widths)

	for _, row := range wrapped {
		depth := 1
		for _, cell := range row {
			depth = max(depth, len(cell))
		}
		for line := 0; line < depth; line++ {
			cells := make([]string, len(row))
			for c, cell := range row {
				if line < len(cell) {
					cells[c] = cell[line]
				}
			}
			t.writeLine(&b, cells, widths)
		}
	}
	return b.String()
}

// layout wraps limited cells and measures the final column widths.
func (t *Table) layout() ([][][]string, []int) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}

	wrapped := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		wrapped[r] = make([][]string, len(row))
		for c, cell := range row {
			lines := []string{cell}
			if t.limits[c] > 0 {
				lines = wrapText(cell, t.limits[c])
			}
			wrapped[r][c] = lines
			for _, line := range lines {
				widths[c] = max(widths[c], len(line))
			}
		}
	}
	return wrapped, widths
}

// writeLine writes one output line, padding every column but the last so
// rows carry no trailing spaces.
func (t *Table) writeLine(b *strings.Builder, cells []string, widths []int) {
	for c, width := range widths {
		if c > 0 {
			b.WriteString("  ")
		}
		cell := ""
		if c < len(cells) {
			cell = cells[c]
		}
		b.WriteString(cell)
		if pad := width - len(cell); pad > 0 && c < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	b.WriteByte('\n')
}

// wrapText breaks text into lines no longer than width, preferring word
// boundaries and splitting words that cannot fit on a line of their own.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	line := ""
	flush := func() {
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
	}
	for _, word := range words {
		for len(word) > width {
			flush()
			lines = append(lines, word[:width])
			word = word[width:]
		}
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			flush()
			line = word
		}
	}
	flush()
	return lines
}
