// benchdiff compares benchmark results against a baseline.
//
// Usage:
//
//	benchdiff --baseline results.json --current new-results.json
//	benchdiff --baseline results.json --current new-results.json --fail-on-regression 0.05
//
// The exit code is 0 on success and 1 for a missing file, invalid JSON, an
// empty comparison, or a regression beyond the threshold.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/calvinalkan/benchdiff"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type options struct {
	baselinePath string
	currentPath  string
	metric       string
	threshold    float64
	hasThreshold bool
	outputPath   string
	chartPath    string
	jsonOut      bool
	color        bool
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "benchdiff",
		Short: "Compare benchmark results against a baseline",
		Long: `Compare two benchmark-result JSON files and report per-metric change.

Two result formats are recognized: documents with a top-level "summary"
object, serving the EffectDiscipline and Safety metrics, and documents
with a top-level "metrics" object mapping metric names to a ratio.
Without --metric, every metric listed in the baseline's "metrics" object
is compared.

With --fail-on-regression, the exit code is 1 when any metric's ratio
dropped by more than the given fraction of its baseline.`,
		Example: `  benchdiff --baseline results.json --current new-results.json
  benchdiff --baseline results.json --current new-results.json --fail-on-regression 0.05`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.hasThreshold = cmd.Flags().Changed("fail-on-regression")
			opts.color = colorEnabled(os.Stdout)

			return run(&opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.baselinePath, "baseline", "", "path to baseline results JSON")
	cmd.Flags().StringVar(&opts.currentPath, "current", "", "path to current results JSON")
	cmd.Flags().StringVar(&opts.metric, "metric", "", "specific metric to compare (default: all)")
	cmd.Flags().Float64Var(&opts.threshold, "fail-on-regression", 0,
		"fail if any metric regresses by more than this fraction (e.g. 0.05 for 5%)")
	cmd.Flags().StringVar(&opts.outputPath, "output", "", "output file for comparison JSON")
	cmd.Flags().StringVar(&opts.chartPath, "chart", "", "output file for an HTML bar chart")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the comparison as JSON instead of a table")

	_ = cmd.MarkFlagRequired("baseline")
	_ = cmd.MarkFlagRequired("current")

	return cmd
}

func run(opts *options, out io.Writer) error {
	baseline, err := benchdiff.Load(opts.baselinePath)
	if err != nil {
		return fmt.Errorf("loading baseline: %w", err)
	}

	current, loadErr := benchdiff.Load(opts.currentPath)
	if loadErr != nil {
		return fmt.Errorf("loading current: %w", loadErr)
	}

	comparison := benchdiff.Compare(baseline, current, opts.metric)

	if opts.jsonOut {
		return runJSON(opts, comparison, out)
	}

	if comparison.Len() == 0 {
		fmt.Fprintln(out, "No comparable metrics found")

		return benchdiff.ErrNoComparableMetrics
	}

	fmt.Fprint(out, benchdiff.RenderTable(comparison, opts.color))

	writeErr := writeArtifacts(opts, comparison)
	if writeErr != nil {
		return writeErr
	}

	if opts.outputPath != "" {
		fmt.Fprintf(out, "\nComparison saved to: %s\n", opts.outputPath)
	}

	if opts.chartPath != "" {
		fmt.Fprintf(out, "\nChart saved to: %s\n", opts.chartPath)
	}

	if !opts.hasThreshold {
		return nil
	}

	regressions := benchdiff.CheckRegressions(comparison, opts.threshold)
	if len(regressions) == 0 {
		fmt.Fprintf(out, "\nNo regressions detected (threshold: %.1f%%)\n", opts.threshold*100)

		return nil
	}

	fmt.Fprintf(out, "\nERROR: Regressions detected (threshold: %.1f%%):\n", opts.threshold*100)

	for _, regression := range regressions {
		fmt.Fprintf(out, "  - %s\n", regression)
	}

	return regressionError(regressions, opts.threshold)
}

// jsonReport is the machine-readable stdout shape for --json. Threshold and
// Regressions appear only when --fail-on-regression was given.
type jsonReport struct {
	Metrics     *benchdiff.ComparisonSet `json:"metrics"`
	Threshold   *float64                 `json:"threshold,omitempty"`
	Regressions []benchdiff.Regression   `json:"regressions,omitempty"`
}

// runJSON prints the comparison as a single JSON object. File writes and
// exit semantics match the table path; only stdout changes, so it stays
// parseable.
func runJSON(opts *options, comparison *benchdiff.ComparisonSet, out io.Writer) error {
	report := jsonReport{Metrics: comparison}

	if comparison.Len() == 0 {
		encodeErr := encodeReport(out, &report)
		if encodeErr != nil {
			return encodeErr
		}

		return benchdiff.ErrNoComparableMetrics
	}

	var failure error

	if opts.hasThreshold {
		threshold := opts.threshold
		report.Threshold = &threshold

		report.Regressions = benchdiff.CheckRegressions(comparison, opts.threshold)
		if len(report.Regressions) > 0 {
			failure = regressionError(report.Regressions, opts.threshold)
		}
	}

	writeErr := writeArtifacts(opts, comparison)
	if writeErr != nil {
		return writeErr
	}

	encodeErr := encodeReport(out, &report)
	if encodeErr != nil {
		return encodeErr
	}

	return failure
}

// writeArtifacts writes the optional comparison JSON and chart files.
func writeArtifacts(opts *options, comparison *benchdiff.ComparisonSet) error {
	if opts.outputPath != "" {
		writeErr := benchdiff.WriteFile(opts.outputPath, comparison)
		if writeErr != nil {
			return fmt.Errorf("saving comparison: %w", writeErr)
		}
	}

	if opts.chartPath != "" {
		chartErr := benchdiff.WriteChart(opts.chartPath, chartTitle(opts.metric), comparison)
		if chartErr != nil {
			return fmt.Errorf("saving chart: %w", chartErr)
		}
	}

	return nil
}

func encodeReport(out io.Writer, report *jsonReport) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}

func regressionError(regressions []benchdiff.Regression, threshold float64) error {
	worst := 0.0

	for _, r := range regressions {
		if r.ChangePct < worst {
			worst = r.ChangePct
		}
	}

	return fmt.Errorf("%w: worst change is %.1f%% (threshold: %.1f%%)",
		benchdiff.ErrRegressionDetected, worst, threshold*100)
}

func chartTitle(metric string) string {
	if metric != "" {
		return "Benchmark Comparison: " + metric
	}

	return "Benchmark Comparison"
}

// colorEnabled reports whether the change column should be colorized: the
// destination must be a terminal and NO_COLOR must be unset.
func colorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	return isatty.IsTerminal(f.Fd())
}
