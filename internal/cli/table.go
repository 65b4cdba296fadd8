// Package cli provides table helpers for human-readable output.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const (
	tablePadding = 2
	// maxCellWidth keeps long bodies and payloads on one terminal line.
	maxCellWidth = 72
)

// writeTable prints rows as aligned columns. Cells are flattened to a single
// line (newlines become " | ") and cut to maxCellWidth runes.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = tableCell(cell)
		}
		fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}
	return writer.Flush()
}

func tableCell(value string) string {
	value = strings.ReplaceAll(strings.TrimRight(value, "\n"), "\n", " | ")
	value = strings.ReplaceAll(value, "\t", " ")
	runes := []rune(value)
	if len(runes) <= maxCellWidth {
		return value
	}
	return string(runes[:maxCellWidth-3]) + "..."
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
