// Package cli provides the command-line interface for albumtint.
package cli

import (
	"reflect"
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable("ID", "ARTIST")
	table.AddRow("1", "Radiohead")
	table.AddRow("2", "Low")

	want := "ID  ARTIST\n" +
		"--  ---------\n" +
		"1   Radiohead\n" +
		"2   Low\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render() on headerless table = %q, want empty", got)
	}
}

func TestTableRenderNoRows(t *testing.T) {
	output := NewTable("ID", "ARTIST").Render()

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Render() without rows produced %d lines, want header and separator", len(lines))
	}
	if !strings.Contains(lines[0], "ARTIST") {
		t.Errorf("header line = %q, want it to contain ARTIST", lines[0])
	}
	if !strings.Contains(lines[1], "--") {
		t.Errorf("separator line = %q, want dashes", lines[1])
	}
}

func TestTableAddRowNormalisesLength(t *testing.T) {
	table := NewTable("A", "B")
	table.AddRow("only")
	table.AddRow("x", "y", "dropped")

	if len(table.rows[0]) != 2 || table.rows[0][1] != "" {
		t.Errorf("short row = %v, want padding to 2 cells", table.rows[0])
	}
	if len(table.rows[1]) != 2 {
		t.Errorf("long row = %v, want truncation to 2 cells", table.rows[1])
	}
}

func TestTableColumnAlignment(t *testing.T) {
	table := NewTable("Short", "Very Long Header")
	table.AddRow("123456789", "X")

	lines := strings.Split(table.Render(), "\n")
	// The data column is wider than its header, so every line starts the
	// second column at the same offset.
	wantOffset := len("123456789") + 2
	if got := strings.Index(lines[0], "Very"); got != wantOffset {
		t.Errorf("header column offset = %d, want %d", got, wantOffset)
	}
	if got := strings.Index(lines[2], "X"); got != wantOffset {
		t.Errorf("row column offset = %d, want %d", got, wantOffset)
	}
}

func TestTableWrapsLimitedColumns(t *testing.T) {
	table := NewTable("ID", "ALBUM")
	table.Limit(1, 10)
	table.AddRow("1", "The Rise and Fall of Ziggy Stardust")

	output := table.Render()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) < 5 {
		t.Fatalf("Render() produced %d lines, want the album to wrap over several", len(lines))
	}
	for _, line := range lines {
		if len(line) > len("ID")+2+10 {
			t.Errorf("line %q exceeds the limited width", line)
		}
	}
	// Continuation lines leave the id column empty.
	if !strings.HasPrefix(lines[3], "  ") {
		t.Errorf("continuation line = %q, want an empty id cell", lines[3])
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "fits",
			text:  "short",
			width: 10,
			want:  []string{"short"},
		},
		{
			name:  "wraps at word boundaries",
			text:  "one two three four",
			width: 9,
			want:  []string{"one two", "three", "four"},
		},
		{
			name:  "splits oversized words",
			text:  "abcdefghijkl",
			width: 5,
			want:  []string{"abcde", "fghij", "kl"},
		},
		{
			name:  "zero width",
			text:  "anything",
			width: 0,
			want:  []string{"anything"},
		},
		{
			name:  "blank",
			text:  "   ",
			width: 2,
			want:  []string{"   "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %v, want %v", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
