package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/blockaudit/internal/analyzer"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestInitDefaults(t *testing.T) {
	isolate(t)
	require.NoError(t, Init())

	assert.Equal(t, analyzer.DefaultOptions(), AnalyzerOptions())
	assert.Equal(t, 75, GetLineLimit())
	assert.Equal(t, "text", GetFormat())
	assert.Equal(t, "print", GetOutput())
	assert.Equal(t, "input/document.md", GetDocument())
	assert.True(t, GetColor())
	assert.Equal(t, "python", C.Language)
}

func TestInitEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("BLOCKAUDIT_LINE_LIMIT", "90")
	t.Setenv("BLOCKAUDIT_LANGUAGE", "ruby")
	require.NoError(t, Init())

	assert.Equal(t, 90, GetLineLimit())
	assert.Equal(t, "ruby", AnalyzerOptions().Language)
}

func TestInitConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "blockaudit")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "document: ~/docs/report.md\nmax_function_lines: 30\nundefined_methods:\n  - fetch_slo\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blockaudit.yaml"), []byte(content), 0o600))

	require.NoError(t, Init())

	assert.Equal(t, filepath.Join(home, "docs/report.md"), GetDocument())
	opts := AnalyzerOptions()
	assert.Equal(t, 30, opts.MaxFunctionLines)
	assert.Equal(t, []string{"fetch_slo"}, opts.UndefinedMethods)
	assert.Equal(t, filepath.Join(dir, "blockaudit.yaml"), ConfigFile())
}

func TestRuntimeSetters(t *testing.T) {
	isolate(t)
	require.NoError(t, Init())

	SetDocument("other.md")
	SetOutput("copy")
	SetColor(false)

	assert.Equal(t, "other.md", GetDocument())
	assert.Equal(t, "copy", GetOutput())
	assert.False(t, GetColor())
	assert.Equal(t, "other.md", C.Document)
}
