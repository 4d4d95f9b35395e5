package benchdiff

import (
	"fmt"
	"math"
)

// Regression is a metric whose ratio dropped beyond the caller's threshold.
type Regression struct {
	Metric    string  `json:"metric"`
	Baseline  float64 `json:"baseline"`
	Current   float64 `json:"current"`
	ChangePct float64 `json:"change_pct"`
}

// String renders the regression as "name: baseline -> current (pct%)".
func (r Regression) String() string {
	return fmt.Sprintf("%s: %.3f -> %.3f (%.1f%%)", r.Metric, r.Baseline, r.Current, r.ChangePct)
}

// CheckRegressions returns the metrics in s whose ratio dropped by more than
// threshold, expressed as a fraction of the baseline (0.05 flags drops
// beyond 5%).
//
// A metric qualifies when its change is negative and the magnitude of its
// percentage change strictly exceeds the threshold, so a zero threshold
// flags every strict drop. The whole set is always scanned, in set order.
func CheckRegressions(s *ComparisonSet, threshold float64) []Regression {
	var regressions []Regression

	for _, name := range s.names {
		c := s.entries[name]
		if c.Change < 0 && math.Abs(c.ChangePct) > threshold*100 {
			regressions = append(regressions, Regression{
				Metric:    name,
				Baseline:  c.Baseline,
				Current:   c.Current,
				ChangePct: c.ChangePct,
			})
		}
	}

	return regressions
}
