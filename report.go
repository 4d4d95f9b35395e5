package benchdiff

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// RenderTable renders the set as a fixed-width comparison table.
//
// Each row starts with an indicator: "+" for an improved metric, "-" for a
// drop, and a space for no change. The change column shows the absolute
// change and, for a nonzero percentage, the percentage in parentheses. With
// color enabled the change column is wrapped in green for improvements and
// red for drops; the cell is padded before coloring so the escape codes do
// not disturb column alignment.
func RenderTable(s *ComparisonSet, color bool) string {
	var b strings.Builder

	b.WriteString("\nBenchmark Comparison Results\n")
	b.WriteString(strings.Repeat("=", 60))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%-25s %10s %10s %10s\n", "Metric", "Baseline", "Current", "Change")
	b.WriteString(strings.Repeat("-", 60))
	b.WriteByte('\n')

	for _, name := range s.names {
		c := s.entries[name]

		changeStr := fmt.Sprintf("%+.3f", c.Change)
		if c.ChangePct != 0 {
			changeStr += fmt.Sprintf(" (%+.1f%%)", c.ChangePct)
		}

		changeCell := fmt.Sprintf("%10s", changeStr)
		if color {
			changeCell = colorizeChange(changeCell, c.Change)
		}

		indicator := " "

		switch {
		case c.Improved:
			indicator = "+"
		case c.Change < 0:
			indicator = "-"
		}

		fmt.Fprintf(&b, "%s %-23s %10.3f %10.3f %s\n", indicator, name, c.Baseline, c.Current, changeCell)
	}

	b.WriteString(strings.Repeat("-", 60))
	b.WriteByte('\n')

	return b.String()
}

func colorizeChange(cell string, change float64) string {
	switch {
	case change > 0:
		return "\x1b[32m" + cell + "\x1b[0m"
	case change < 0:
		return "\x1b[31m" + cell + "\x1b[0m"
	default:
		return cell
	}
}

// WriteFile writes the set to path as indented JSON, metrics in comparison
// order. Failures are reported as a [WriteError].
func WriteFile(path string, s *ComparisonSet) error {
	data, err := marshalJSON(s, true)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	writeErr := os.WriteFile(path, data, 0o644)
	if writeErr != nil {
		return &WriteError{Path: path, Err: writeErr}
	}

	return nil
}

func marshalJSON(v any, indent bool) ([]byte, error) {
	var buf strings.Builder

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if indent {
		enc.SetIndent("", "  ")
	}

	err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	// Encode adds a trailing newline, trim it for consistency
	return []byte(strings.TrimSuffix(buf.String(), "\n")), nil
}
