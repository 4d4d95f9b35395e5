package benchdiff

import (
	"bytes"
	"encoding/json"
	"slices"
)

// MetricComparison is the change in a single metric between two documents.
type MetricComparison struct {
	// Baseline and Current are the metric's ratio in each document.
	Baseline float64 `json:"baseline"`
	Current  float64 `json:"current"`
	// Change is current minus baseline.
	Change float64 `json:"change"`
	// ChangePct is Change relative to Baseline in percent. It is 0 when
	// Baseline is 0.
	ChangePct float64 `json:"change_pct"`
	// Improved reports a strictly positive Change.
	Improved bool `json:"improved"`
}

// ComparisonSet is an ordered collection of metric comparisons. Order
// follows the baseline document's metrics listing and is preserved by
// [RenderTable], [WriteFile], and the set's own JSON encoding.
type ComparisonSet struct {
	names   []string
	entries map[string]MetricComparison
}

// Compare builds the comparison between two documents.
//
// With a metric name, only that metric is compared, and only when both
// documents yield a value for it. With an empty name every metric listed by
// the baseline document's metrics object is compared in the baseline's
// order, skipping metrics the current document does not also carry; this
// all-metrics mode requires the metrics object on both sides and yields an
// empty set otherwise.
//
// Compare never fails and modifies neither document. The caller decides
// whether an empty set is an error.
func Compare(baseline, current *Document, metric string) *ComparisonSet {
	set := newComparisonSet()

	if metric != "" {
		baselineVal, baseOK := baseline.Ratio(metric)

		currentVal, currentOK := current.Ratio(metric)
		if baseOK && currentOK {
			set.add(metric, compareValues(baselineVal, currentVal))
		}

		return set
	}

	if !baseline.HasMetrics() || !current.HasMetrics() {
		return set
	}

	for _, name := range baseline.MetricNames() {
		baselineVal, baseOK := baseline.Ratio(name)

		currentVal, currentOK := current.Ratio(name)
		if !baseOK || !currentOK {
			continue
		}

		set.add(name, compareValues(baselineVal, currentVal))
	}

	return set
}

func newComparisonSet() *ComparisonSet {
	return &ComparisonSet{entries: make(map[string]MetricComparison)}
}

func (s *ComparisonSet) add(name string, c MetricComparison) {
	if _, ok := s.entries[name]; !ok {
		s.names = append(s.names, name)
	}

	s.entries[name] = c
}

// Len returns the number of compared metrics.
func (s *ComparisonSet) Len() int {
	return len(s.names)
}

// Names returns the metric names in comparison order.
func (s *ComparisonSet) Names() []string {
	return slices.Clone(s.names)
}

// Get returns the comparison for a metric name.
func (s *ComparisonSet) Get(name string) (MetricComparison, bool) {
	c, ok := s.entries[name]
	return c, ok
}

// MarshalJSON encodes the set as a JSON object keyed by metric name, keys in
// comparison order.
func (s *ComparisonSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		nameJSON, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}

		buf.Write(nameJSON)
		buf.WriteByte(':')

		entryJSON, err := json.Marshal(s.entries[name])
		if err != nil {
			return nil, err
		}

		buf.Write(entryJSON)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func compareValues(baseline, current float64) MetricComparison {
	change := current - baseline

	return MetricComparison{
		Baseline:  baseline,
		Current:   current,
		Change:    change,
		ChangePct: pctChange(current, baseline),
		Improved:  change > 0,
	}
}

// pctChange expresses the move from baseline to current as a percentage of
// baseline, with 0 standing in when the baseline is 0.
func pctChange(current, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}

	return (current - baseline) / baseline * 100
}
