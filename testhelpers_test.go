package benchdiff_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/benchdiff"
	"github.com/stretchr/testify/require"
)

// writeDoc writes a JSON document into dir and returns its path.
func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

// loadDoc parses a JSON document from a freshly written temp file.
func loadDoc(t *testing.T, content string) *benchdiff.Document {
	t.Helper()

	doc, err := benchdiff.Load(writeDoc(t, t.TempDir(), "doc.json", content))
	require.NoError(t, err)

	return doc
}
