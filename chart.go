package benchdiff

import (
	"bytes"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteChart renders the set to path as an HTML bar chart with one pair of
// bars per metric, in comparison order. Failures are reported as a
// [WriteError].
func WriteChart(path, title string, s *ComparisonSet) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	names := s.Names()
	baseline := make([]opts.BarData, 0, len(names))
	current := make([]opts.BarData, 0, len(names))

	for _, name := range names {
		c := s.entries[name]
		baseline = append(baseline, opts.BarData{Value: c.Baseline})
		current = append(current, opts.BarData{Value: c.Current})
	}

	bar.SetXAxis(names)
	bar.AddSeries("baseline", baseline)
	bar.AddSeries("current", current)

	var buf bytes.Buffer

	renderErr := bar.Render(&buf)
	if renderErr != nil {
		return &WriteError{Path: path, Err: renderErr}
	}

	writeErr := os.WriteFile(path, buf.Bytes(), 0o644)
	if writeErr != nil {
		return &WriteError{Path: path, Err: writeErr}
	}

	return nil
}
