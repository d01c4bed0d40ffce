package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kantord/headson"
	"github.com/kantord/headson/internal/order"
	"github.com/kantord/headson/internal/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestIsBinaryDetectsNulByte(t *testing.T) {
	assert.False(t, isBinary([]byte("hello world")))
	assert.True(t, isBinary([]byte("hello\x00world")))
}

func TestIsBinaryOnlyScansFirst8KiB(t *testing.T) {
	data := append(bytes.Repeat([]byte("a"), 8192), 0)
	assert.False(t, isBinary(data), "a NUL byte past the first 8 KiB must not count")
}

func TestReadPathOrSkipSkipsDirectory(t *testing.T) {
	dir := t.TempDir()
	_, skip, err := readPathOrSkip(dir)
	require.NoError(t, err)
	require.NotNil(t, skip)
	assert.Equal(t, headson.Skipped, skip.Kind)
	assert.Equal(t, dir, skip.Path)
}

func TestReadPathOrSkipSkipsBinaryFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(p, []byte("a\x00b"), 0o644))

	_, skip, err := readPathOrSkip(p)
	require.NoError(t, err)
	require.NotNil(t, skip)
	assert.Equal(t, headson.Skipped, skip.Kind)
}

func TestReadPathOrSkipReadsPlainFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"a":1}`), 0o644))

	data, skip, err := readPathOrSkip(p)
	require.NoError(t, err)
	assert.Nil(t, skip)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestExpandArgsExpandsGlobPattern(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("a: 1"), 0o644))

	out, err := expandArgs([]string{filepath.Join(dir, "*.json")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
	}, out)
}

func TestExpandArgsPassesThroughLiteralMiss(t *testing.T) {
	out, err := expandArgs([]string{"/does/not/exist-headson-test.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/does/not/exist-headson-test.json"}, out)
}

func TestUnrecognizedFlagRegexExtractsName(t *testing.T) {
	m := unrecognizedFlagRe.FindStringSubmatch("flag provided but not defined: -compcat")
	require.NotNil(t, m)
	assert.Equal(t, "compcat", m[1])
}

func newTestApp(action cli.ActionFunc) *cli.App {
	return &cli.App{Flags: appFlags(), Action: action}
}

func TestResolveIngestFormatOverridesExtensionDetection(t *testing.T) {
	app := newTestApp(func(c *cli.Context) error {
		assert.Equal(t, headson.Text, resolveIngestFormat(c, "data.json"))
		return nil
	})
	require.NoError(t, app.Run([]string{"headson", "--ingest", "text", "data.json"}))
}

func TestResolveIngestFormatFallsBackToAutoDetection(t *testing.T) {
	app := newTestApp(func(c *cli.Context) error {
		assert.Equal(t, headson.YAML, resolveIngestFormat(c, "data.yaml"))
		return nil
	})
	require.NoError(t, app.Run([]string{"headson", "data.yaml"}))
}

func TestResolveOptionsRejectsHeadAndTailTogether(t *testing.T) {
	app := newTestApp(func(c *cli.Context) error {
		_, err := resolveOptions(c)
		require.Error(t, err)
		var hsonErr *headson.Error
		require.True(t, errors.As(err, &hsonErr))
		assert.Equal(t, headson.BadCliUsage, hsonErr.Kind)
		return nil
	})
	require.NoError(t, app.Run([]string{"headson", "--head", "--tail"}))
}

func TestResolveOptionsRejectsCompactWithIndent(t *testing.T) {
	app := newTestApp(func(c *cli.Context) error {
		_, err := resolveOptions(c)
		require.Error(t, err)
		var hsonErr *headson.Error
		require.True(t, errors.As(err, &hsonErr))
		assert.Equal(t, headson.BadCliUsage, hsonErr.Kind)
		return nil
	})
	require.NoError(t, app.Run([]string{"headson", "--compact", "--indent", "  "}))
}

func TestResolveOptionsDefaultsBudgetToFiveHundred(t *testing.T) {
	app := newTestApp(func(c *cli.Context) error {
		opts, err := resolveOptions(c)
		require.NoError(t, err)
		assert.Equal(t, 500, opts.Budget)
		return nil
	})
	require.NoError(t, app.Run([]string{"headson"}))
}

func TestResolveOptionsGlobalBudgetCapsBudget(t *testing.T) {
	app := newTestApp(func(c *cli.Context) error {
		opts, err := resolveOptions(c)
		require.NoError(t, err)
		assert.Equal(t, 50, opts.Budget)
		return nil
	})
	require.NoError(t, app.Run([]string{"headson", "--budget", "500", "--global-budget", "50"}))
}

func TestResolveOptionsCompactClearsWhitespace(t *testing.T) {
	app := newTestApp(func(c *cli.Context) error {
		opts, err := resolveOptions(c)
		require.NoError(t, err)
		assert.Equal(t, "", opts.IndentUnit)
		assert.Equal(t, "", opts.Space)
		assert.Equal(t, "", opts.Newline)
		return nil
	})
	require.NoError(t, app.Run([]string{"headson", "--compact"}))
}

func TestResolveOptionsHeadSetsSamplerAndBias(t *testing.T) {
	app := newTestApp(func(c *cli.Context) error {
		opts, err := resolveOptions(c)
		require.NoError(t, err)
		assert.Equal(t, sampler.Head, opts.ArraySampler)
		assert.Equal(t, order.HeadBias, opts.ArrayBias)
		assert.False(t, opts.PreferTailArrays)
		return nil
	})
	require.NoError(t, app.Run([]string{"headson", "--head"}))
}

func TestResolveOptionsTailSetsPreferTailArrays(t *testing.T) {
	app := newTestApp(func(c *cli.Context) error {
		opts, err := resolveOptions(c)
		require.NoError(t, err)
		assert.True(t, opts.PreferTailArrays)
		return nil
	})
	require.NoError(t, app.Run([]string{"headson", "--tail"}))
}
