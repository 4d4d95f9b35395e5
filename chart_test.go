package benchdiff_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/benchdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WriteChart_Renders_Both_Series_In_HTML(t *testing.T) {
	t.Parallel()

	baseline := loadDoc(t, `{"metrics": {"Throughput": 2.0, "Safety": 0.85}}`)
	current := loadDoc(t, `{"metrics": {"Throughput": 1.8, "Safety": 0.9}}`)
	set := benchdiff.Compare(baseline, current, "")

	path := filepath.Join(t.TempDir(), "chart.html")

	require.NoError(t, benchdiff.WriteChart(path, "Benchmark Comparison", set))

	html, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(html)
	assert.Contains(t, content, "Benchmark Comparison")
	assert.Contains(t, content, "baseline")
	assert.Contains(t, content, "current")
	assert.Contains(t, content, "Throughput")
	assert.Contains(t, content, "Safety")
}

func Test_WriteChart_Returns_WriteError_When_Destination_Invalid(t *testing.T) {
	t.Parallel()

	set := benchdiff.Compare(loadDoc(t, `{"metrics": {"a": 1.0}}`), loadDoc(t, `{"metrics": {"a": 1.5}}`), "")

	path := filepath.Join(t.TempDir(), "missing-dir", "chart.html")

	err := benchdiff.WriteChart(path, "title", set)

	var writeErr *benchdiff.WriteError

	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, path, writeErr.Path)
}
