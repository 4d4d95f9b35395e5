package benchdiff_test

import (
	"testing"

	"github.com/calvinalkan/benchdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CheckRegressions_Flags_Only_Drops_Beyond_Threshold(t *testing.T) {
	t.Parallel()

	baseline := loadDoc(t, `{"metrics": {"A": 2.0, "B": 1.0, "C": 1.0}}`)
	current := loadDoc(t, `{"metrics": {"A": 1.8, "B": 0.98, "C": 1.05}}`)
	set := benchdiff.Compare(baseline, current, "")

	regressions := benchdiff.CheckRegressions(set, 0.05)

	require.Len(t, regressions, 1)
	assert.Equal(t, "A", regressions[0].Metric)
	assert.InDelta(t, 2.0, regressions[0].Baseline, 1e-9)
	assert.InDelta(t, 1.8, regressions[0].Current, 1e-9)
	assert.InDelta(t, -10.0, regressions[0].ChangePct, 1e-9)
}

func Test_CheckRegressions_Scans_The_Whole_Set(t *testing.T) {
	t.Parallel()

	baseline := loadDoc(t, `{"metrics": {"first": 2.0, "second": 1.0, "third": 4.0}}`)
	current := loadDoc(t, `{"metrics": {"first": 1.0, "second": 1.1, "third": 1.0}}`)
	set := benchdiff.Compare(baseline, current, "")

	regressions := benchdiff.CheckRegressions(set, 0.05)

	require.Len(t, regressions, 2)
	assert.Equal(t, "first", regressions[0].Metric)
	assert.Equal(t, "third", regressions[1].Metric)
}

func Test_CheckRegressions_Uses_Strict_Threshold_Comparison(t *testing.T) {
	t.Parallel()

	// A drops by exactly the threshold, B beyond it.
	baseline := loadDoc(t, `{"metrics": {"A": 1.0, "B": 1.0}}`)
	current := loadDoc(t, `{"metrics": {"A": 0.75, "B": 0.5}}`)
	set := benchdiff.Compare(baseline, current, "")

	regressions := benchdiff.CheckRegressions(set, 0.25)

	require.Len(t, regressions, 1)
	assert.Equal(t, "B", regressions[0].Metric)
}

func Test_CheckRegressions_Zero_Threshold_Flags_Any_Drop(t *testing.T) {
	t.Parallel()

	baseline := loadDoc(t, `{"metrics": {"dip": 1.0, "flat": 2.0, "rise": 1.0}}`)
	current := loadDoc(t, `{"metrics": {"dip": 0.875, "flat": 2.0, "rise": 1.5}}`)
	set := benchdiff.Compare(baseline, current, "")

	regressions := benchdiff.CheckRegressions(set, 0)

	require.Len(t, regressions, 1)
	assert.Equal(t, "dip", regressions[0].Metric)
	assert.InDelta(t, -12.5, regressions[0].ChangePct, 1e-9)
}

func Test_CheckRegressions_Skips_Drops_From_Zero_Baseline(t *testing.T) {
	t.Parallel()

	// A zero baseline pins the percentage at zero, which can never exceed
	// the threshold.
	baseline := loadDoc(t, `{"metrics": {"X": 0.0}}`)
	current := loadDoc(t, `{"metrics": {"X": -1.0}}`)
	set := benchdiff.Compare(baseline, current, "")

	assert.Empty(t, benchdiff.CheckRegressions(set, 0))
}

func Test_Regression_String_Formats_The_Transition(t *testing.T) {
	t.Parallel()

	r := benchdiff.Regression{Metric: "Throughput", Baseline: 2.0, Current: 1.8, ChangePct: -10.0}

	assert.Equal(t, "Throughput: 2.000 -> 1.800 (-10.0%)", r.String())
}
