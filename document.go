package benchdiff

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
)

// Metric names served by the summary block of discipline-style documents.
const (
	MetricEffectDiscipline = "EffectDiscipline"
	MetricSafety           = "Safety"
)

// Summary keys backing the named summary metrics.
const (
	keyDisciplineRatio = "disciplineAdvantageRatio"
	keySafetyRatio     = "safetyAdvantageRatio"
)

// Document is a parsed benchmark-result file. The zero value is not usable;
// obtain documents through [Load].
type Document struct {
	root map[string]any
	// metrics holds the keys of the top-level "metrics" object in document
	// order. Go maps do not preserve order, and all-metrics comparisons walk
	// metrics in the order the baseline document lists them, so the order is
	// recovered from the raw bytes at load time.
	metrics []string
}

// Load reads and parses the benchmark document at path.
//
// A missing file yields a [NotFoundError]. Malformed JSON, or a top-level
// value that is not a JSON object, yields a [ParseError] carrying the
// decoder's line and column where available.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: path}
	}

	if err != nil {
		return nil, fmt.Errorf("read benchmark file: %w", err)
	}

	var root map[string]any

	unmarshalErr := json.Unmarshal(data, &root)
	if unmarshalErr != nil {
		return nil, newParseError(path, data, unmarshalErr)
	}

	// Unmarshal accepts a top-level "null" without error.
	if root == nil {
		return nil, &ParseError{Path: path, Err: errors.New("top-level value is not an object")}
	}

	keys, scanErr := metricKeys(data)
	if scanErr != nil {
		return nil, newParseError(path, data, scanErr)
	}

	return &Document{root: root, metrics: keys}, nil
}

// Ratio extracts the named metric's ratio from the document.
//
// The summary block is consulted first: EffectDiscipline and Safety map to
// summary.disciplineAdvantageRatio and summary.safetyAdvantageRatio, and
// when the summary block exists but lacks the backing key the metric is
// absent. Every other name, and every document without a summary block, is
// served from the metrics object, where a value is either a bare number or
// an object carrying the number under "ratio".
//
// The second return reports presence. Missing keys and non-numeric values
// are absent, not zero.
func (d *Document) Ratio(metric string) (float64, bool) {
	if summary, ok := d.root["summary"].(map[string]any); ok {
		switch metric {
		case MetricEffectDiscipline:
			return numberValue(summary[keyDisciplineRatio])
		case MetricSafety:
			return numberValue(summary[keySafetyRatio])
		}
	}

	metrics, ok := d.metricsMap()
	if !ok {
		return 0, false
	}

	value, ok := metrics[metric]
	if !ok {
		return 0, false
	}

	if obj, ok := value.(map[string]any); ok {
		return numberValue(obj["ratio"])
	}

	return numberValue(value)
}

// HasMetrics reports whether the document carries a top-level metrics
// object. All-metrics comparisons require it on both sides.
func (d *Document) HasMetrics() bool {
	_, ok := d.metricsMap()
	return ok
}

// MetricNames returns the names in the document's metrics object, in the
// order the document lists them. It is empty for documents without a
// metrics object.
func (d *Document) MetricNames() []string {
	return slices.Clone(d.metrics)
}

func (d *Document) metricsMap() (map[string]any, bool) {
	m, ok := d.root["metrics"].(map[string]any)
	return m, ok
}

// numberValue reports v as a float64 when it holds a JSON number.
func numberValue(v any) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}

// metricKeys returns the keys of the top-level "metrics" object in document
// order, or nil when the document has no metrics object. data must already
// be known-valid JSON with an object at the top level.
func metricKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	// Opening brace of the root object.
	_, err := dec.Token()
	if err != nil {
		return nil, err
	}

	for dec.More() {
		key, keyErr := stringToken(dec)
		if keyErr != nil {
			return nil, keyErr
		}

		if key == "metrics" {
			return objectKeys(dec)
		}

		skipErr := skipValue(dec)
		if skipErr != nil {
			return nil, skipErr
		}
	}

	return nil, nil
}

// objectKeys collects the keys of the object the decoder is positioned on.
// A non-object value carries no named metrics and yields nil.
func objectKeys(dec *json.Decoder) ([]string, error) {
	open, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if open != json.Delim('{') {
		return nil, nil
	}

	var keys []string

	for dec.More() {
		key, keyErr := stringToken(dec)
		if keyErr != nil {
			return nil, keyErr
		}

		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}

		skipErr := skipValue(dec)
		if skipErr != nil {
			return nil, skipErr
		}
	}

	return keys, nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}

	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("unexpected token %v", tok)
	}

	return s, nil
}

// skipValue consumes one complete JSON value, balancing nested objects and
// arrays.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	open, ok := tok.(json.Delim)
	if !ok || (open != '{' && open != '[') {
		return nil
	}

	depth := 1

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}

	return nil
}

// newParseError converts a decode error into a [ParseError], recovering the
// 1-based line and column from the error's byte offset when it carries one.
func newParseError(path string, data []byte, err error) *ParseError {
	var offset int64

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return &ParseError{Path: path, Err: err}
	}

	line, col := lineCol(data, offset)

	return &ParseError{Path: path, Line: line, Col: col, Err: err}
}

// lineCol converts a byte offset as reported by encoding/json (bytes read up
// to and including the offending byte) into a 1-based line and column.
func lineCol(data []byte, offset int64) (line, col int) {
	if offset < 1 || offset > int64(len(data)) {
		return 0, 0
	}

	line = 1
	lineStart := int64(0)

	for i := int64(0); i < offset-1; i++ {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	return line, int(offset - lineStart)
}
