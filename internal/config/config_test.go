package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadKDLFile(t *testing.T) {
	path := writeTemp(t, "headson.kdl", `
budget 2048
template "yaml"
prefer-tail-arrays #true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Budget)
	assert.Equal(t, 2048, *cfg.Budget)
	require.NotNil(t, cfg.Template)
	assert.Equal(t, "yaml", *cfg.Template)
	require.NotNil(t, cfg.PreferTailArrays)
	assert.True(t, *cfg.PreferTailArrays)
	assert.Nil(t, cfg.Color)
}

func TestLoadTOMLFile(t *testing.T) {
	path := writeTemp(t, "headson.toml", "budget = 4096\ncolor = \"always\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Budget)
	assert.Equal(t, 4096, *cfg.Budget)
	require.NotNil(t, cfg.Color)
	assert.Equal(t, "always", *cfg.Color)
	assert.Nil(t, cfg.Template)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeTemp(t, "headson.conf", "budget = 1\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestMergeCLIOverridesFile(t *testing.T) {
	fb := 100
	ft := "json"
	file := &FileConfig{Budget: &fb, Template: &ft}

	cb := 200
	merged := Merge(file, FileConfig{Budget: &cb})

	require.NotNil(t, merged.Budget)
	assert.Equal(t, 200, *merged.Budget)
	require.NotNil(t, merged.Template)
	assert.Equal(t, "json", *merged.Template)
}

func TestMergeWithNilFile(t *testing.T) {
	cb := 300
	merged := Merge(nil, FileConfig{Budget: &cb})
	require.NotNil(t, merged.Budget)
	assert.Equal(t, 300, *merged.Budget)
}

func TestValidateFileRejectsUnknownTemplate(t *testing.T) {
	path := writeTemp(t, "headson.toml", "template = \"xml\"\n")
	err := ValidateFile(path)
	assert.Error(t, err)
}

func TestValidateFileAcceptsWellFormedDocument(t *testing.T) {
	path := writeTemp(t, "headson.toml", "budget = 1024\ntemplate = \"pseudo\"\n")
	err := ValidateFile(path)
	assert.NoError(t, err)
}
