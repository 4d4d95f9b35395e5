// Package benchdiff compares benchmark-result JSON documents.
//
// A comparison takes a baseline document and a current document, extracts a
// ratio per metric, and reports the change. Two document shapes are
// recognized:
//
//   - Discipline-style: a top-level "summary" object whose
//     disciplineAdvantageRatio and safetyAdvantageRatio keys back the
//     EffectDiscipline and Safety metrics.
//   - Standard-style: a top-level "metrics" object mapping each metric name
//     to a bare number or to an object carrying the number under "ratio".
//
// A document may use both shapes at once; [Document.Ratio] defines the
// precedence. Metrics missing from either side are skipped rather than
// reported as zero.
//
// [Load] reads documents, [Compare] builds a [ComparisonSet], and
// [RenderTable], [WriteFile], [WriteChart], and [CheckRegressions] consume
// it. All operations are synchronous and run on the calling goroutine.
package benchdiff

import (
	"errors"
	"fmt"
)

// ErrNoComparableMetrics reports a comparison that produced no metrics
// present in both documents.
var ErrNoComparableMetrics = errors.New("no comparable metrics found")

// ErrRegressionDetected reports at least one metric whose drop exceeded the
// caller's threshold. Use [errors.Is] to detect it on wrapped errors.
var ErrRegressionDetected = errors.New("regression detected")

// NotFoundError is returned by [Load] when the document file does not exist.
type NotFoundError struct {
	// Path is the path passed to [Load].
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("benchmark file not found: %s", e.Path)
}

// ParseError is returned by [Load] when the file is not a JSON object.
type ParseError struct {
	// Path is the path passed to [Load].
	Path string
	// Line and Col are the 1-based position of the failure in the input.
	// Both are 0 when the decoder did not report an offset.
	Line int
	Col  int
	// Err is the underlying decode error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid JSON in %s at line %d, column %d: %v", e.Path, e.Line, e.Col, e.Err)
	}

	return fmt.Sprintf("invalid JSON in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError is returned when a comparison report or chart cannot be
// written.
type WriteError struct {
	// Path is the destination file.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
