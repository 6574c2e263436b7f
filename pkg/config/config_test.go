package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "<stdin>", cfg.Filename)
	assert.Equal(t, FormatHuman, cfg.Format)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Empty(t, cfg.Datastore)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, Validate(cfg))
}

func TestLoad_Valid(t *testing.T) {
	data := `filename: expr.calc
format: json
color: never
datastore: calclex.db
extensions:
  - .calc
  - txt
include_hidden: true
max_file_size: 2048
log:
  level: debug
  env: prod
`

	cfg, err := Load([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "expr.calc", cfg.Filename)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, "calclex.db", cfg.Datastore)
	assert.Equal(t, []string{".calc", ".txt"}, cfg.Extensions)
	assert.True(t, cfg.IncludeHidden)
	assert.Equal(t, int64(2048), cfg.MaxFileSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "prod", cfg.Log.Env)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load([]byte("format: sarif\n"))
	require.NoError(t, err)

	assert.Equal(t, FormatSARIF, cfg.Format)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, "<stdin>", cfg.Filename)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"malformed", "format: [", "failed to parse YAML"},
		{"format", "format: xml\n", "invalid format"},
		{"color", "color: sometimes\n", "invalid color"},
		{"size", "max_file_size: -1\n", "max_file_size"},
		{"level", "log:\n  level: loud\n", "invalid log level"},
		{"env", "log:\n  env: staging\n", "invalid log env"},
		{"extension", "extensions: ['']\n", "extensions[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte("color: always\n"), 0644))

	cfg, err := LoadFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, cfg.Color)
}

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadFile(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadFile_InvalidNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0644))

	_, err := LoadFile(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
