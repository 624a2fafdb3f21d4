package tabula

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reconcile/internal/model"
)

func TestCommand_Args(t *testing.T) {
	c := NewCommand("", "/opt/tabula.jar")
	assert.Equal(t, "java", c.Java)

	args := c.Args("stmt.pdf", Options{Columns: []float64{132, 400, 480, 520}})
	assert.Equal(t, []string{"-jar", "/opt/tabula.jar", "--pages", "all", "-f", "CSV", "-c", "132,400,480,520", "stmt.pdf"}, args)
}

func TestOptions_ColumnsArg(t *testing.T) {
	assert.Equal(t, "129,201.5,408", Options{Columns: []float64{129, 201.5, 408}}.ColumnsArg())
	assert.Equal(t, "", Options{}.ColumnsArg())
}

func TestParseCSV_RaggedRows(t *testing.T) {
	rows, err := ParseCSV([]byte("a,b,c\n\"d, e\",f\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d, e", "f"}}, rows)
}

func TestExtractTable_MissingJar(t *testing.T) {
	c := NewCommand("java", filepath.Join(t.TempDir(), "missing.jar"))
	_, err := c.ExtractTable(context.Background(), "stmt.pdf", Options{})
	require.Error(t, err)

	var toolErr *model.ExternalToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "tabula", toolErr.Tool)
}

func TestExtractTable_NoJarConfigured(t *testing.T) {
	_, err := NewCommand("", "").ExtractTable(context.Background(), "stmt.pdf", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TABULA_JAR")
}
