// Command headson renders a budget-constrained preview of a JSON,
// YAML, or text document (or a fileset of several), picked via CLI
// flags and an optional KDL/TOML config file. Grounded on the
// teacher's cmd/lci/main.go urfave/cli/v2 app structure: one flat flag
// set plus a subcommand ("mcp") for the protocol server.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kantord/headson"
	"github.com/kantord/headson/internal/cliutil/suggest"
	hsoncolor "github.com/kantord/headson/internal/color"
	"github.com/kantord/headson/internal/config"
	"github.com/kantord/headson/internal/ingest/fileset"
	"github.com/kantord/headson/internal/mcpserver"
	"github.com/kantord/headson/internal/order"
	"github.com/kantord/headson/internal/render"
	"github.com/kantord/headson/internal/sampler"
	"github.com/kantord/headson/internal/version"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var knownFlags = []string{
	"budget", "global-budget", "template", "verbosity", "color", "prefer-tail-arrays",
	"array-sampler", "array-max-items", "max-string-graphemes",
	"grep-weak", "config", "head", "tail", "compact", "indent",
	"no-space", "no-newline", "ingest",
}

// appFlags is the CLI's full flag set, factored out so tests can build
// a minimal *cli.App exercising resolveOptions/renderAction without
// duplicating the flag list.
func appFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Config file path (.kdl or .toml)"},
		&cli.IntFlag{Name: "budget", Aliases: []string{"n"}, Usage: "Maximum output size in bytes", Value: 500},
		&cli.IntFlag{Name: "global-budget", Aliases: []string{"N"}, Usage: "Cap across the whole invocation; effective budget is min(budget, global-budget)"},
		&cli.StringFlag{Name: "ingest", Aliases: []string{"i"}, Usage: "Ingest format: auto, json, yaml, text", Value: "auto"},
		&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Usage: "Output template: json, pseudo, js, yaml, text", Value: "json"},
		&cli.StringFlag{Name: "verbosity", Usage: "Omission detail: strict, default, detailed", Value: "default"},
		&cli.StringFlag{Name: "color", Usage: "Color mode: auto, always, never", Value: "auto"},
		&cli.BoolFlag{Name: "prefer-tail-arrays", Usage: "Favor array tails over heads when trimming"},
		&cli.StringFlag{Name: "array-sampler", Usage: "Array sampling strategy: head, tail, head-mid-tail, none", Value: "head-mid-tail"},
		&cli.IntFlag{Name: "array-max-items", Usage: "Per-array sampling cap at ingest time", Value: 100},
		&cli.IntFlag{Name: "max-string-graphemes", Usage: "Per-string grapheme cap", Value: 4096},
		&cli.StringFlag{Name: "grep-weak", Usage: "Weakly prioritize nodes matching this pattern"},
		&cli.BoolFlag{Name: "head", Usage: "Shortcut for --array-sampler head with head-biased trimming"},
		&cli.BoolFlag{Name: "tail", Usage: "Shortcut for --array-sampler tail with tail-biased trimming"},
		&cli.BoolFlag{Name: "compact", Usage: "Emit no newlines, indent, or spaces"},
		&cli.StringFlag{Name: "indent", Usage: "Indent unit string"},
		&cli.BoolFlag{Name: "no-space", Usage: "Omit the space after separators"},
		&cli.BoolFlag{Name: "no-newline", Usage: "Omit newlines between entries"},
	}
}

func main() {
	app := &cli.App{
		Name:                   "headson",
		Usage:                  "budget-constrained previews of JSON, YAML, and text documents",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags:                  appFlags(),
		Commands: []*cli.Command{
			{
				Name:  "mcp",
				Usage: "Start the headson MCP server over stdio",
				Action: func(c *cli.Context) error {
					return mcpserver.New().Run(c.Context)
				},
			},
		},
		Action: renderAction,
	}

	if err := app.Run(os.Args); err != nil {
		reportRunError(err)
		code := 1
		var hsonErr *headson.Error
		if errors.As(err, &hsonErr) {
			code = hsonErr.Kind.ExitCode()
		}
		os.Exit(code)
	}
}

// unrecognizedFlagRe extracts the offending name out of the
// flag-package error urfave/cli/v2 surfaces from app.Run when a flag
// is mistyped. CommandNotFound doesn't cover this: it only fires for
// an unrecognized subcommand, never a flag, which is parsed by the
// stdlib flag package underneath cli.App.Run.
var unrecognizedFlagRe = regexp.MustCompile(`flag provided but not defined: -+(\S+)`)

func reportRunError(err error) {
	if m := unrecognizedFlagRe.FindStringSubmatch(err.Error()); m != nil {
		if s := suggest.Flag(m[1], knownFlags); s != "" {
			fmt.Fprintf(os.Stderr, "headson: %v; did you mean --%s?\n", err, s)
			return
		}
	}
	fmt.Fprintf(os.Stderr, "headson: %v\n", err)
}

func renderAction(c *cli.Context) error {
	opts, err := resolveOptions(c)
	if err != nil {
		return err
	}

	paths, err := expandArgs(c.Args().Slice())
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		data, err := readAll(os.Stdin)
		if err != nil {
			return headson.NewError(headson.IoError, err).WithPath("<stdin>")
		}
		return renderOne(data, resolveIngestFormat(c, "<stdin>"), opts)
	}

	if len(paths) == 1 {
		data, skip, err := readPathOrSkip(paths[0])
		if err != nil {
			return err
		}
		if skip != nil {
			reportSkip(skip)
			return printEmpty(opts)
		}
		return renderOne(data, resolveIngestFormat(c, paths[0]), opts)
	}

	return renderMulti(paths, resolveFilesetFormat(c), opts)
}

// expandArgs glob-expands every argument via doublestar so
// `headson 'logs/*.json'` works without relying on shell globbing. An
// argument that isn't a glob pattern, or matches nothing (a typo'd
// literal path), passes through unchanged so the normal
// os.Stat/os.ReadFile error path reports it.
func expandArgs(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		matches, err := doublestar.FilepathGlob(a)
		if err != nil {
			return nil, fmt.Errorf("headson: invalid glob pattern %q: %w", a, err)
		}
		if len(matches) == 0 {
			out = append(out, a)
			continue
		}
		out = append(out, matches...)
	}
	return out, nil
}

func renderOne(data []byte, format headson.Format, opts headson.Options) error {
	res, err := headson.Render(data, format, opts)
	if err != nil {
		return err
	}
	fmt.Println(res.Output)
	return nil
}

func renderMulti(paths []string, ingestFormat fileset.Format, opts headson.Options) error {
	inputs, err := collectValidInputs(paths, ingestFormat)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return printEmpty(opts)
	}
	res, err := headson.RenderFileset(context.Background(), inputs, opts)
	if err != nil {
		return err
	}
	fmt.Println(res.Output)
	return nil
}

// collectValidInputs reads every path, skipping directories and
// binary files (first 8 KiB containing a NUL byte) with a stderr
// notice rather than aborting the whole fileset.
func collectValidInputs(paths []string, ingestFormat fileset.Format) ([]fileset.Input, error) {
	var out []fileset.Input
	for _, p := range paths {
		data, skip, err := readPathOrSkip(p)
		if err != nil {
			return nil, err
		}
		if skip != nil {
			reportSkip(skip)
			continue
		}
		out = append(out, fileset.Input{Path: p, Data: data, Format: ingestFormat})
	}
	return out, nil
}

// readPathOrSkip reads path's contents. A directory or a file whose
// first 8 KiB contain a NUL byte yields a non-nil *headson.Error of
// Kind Skipped instead of an error return: the caller reports it via
// reportSkip and continues with the remaining inputs, matching
// Skipped's documented non-fatal, run-continues contract.
func readPathOrSkip(path string) ([]byte, *headson.Error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, headson.NewError(headson.IoError, err).WithPath(path)
	}
	if info.IsDir() {
		return nil, headson.NewError(headson.Skipped, errors.New("directory")).WithPath(path), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, headson.NewError(headson.IoError, err).WithPath(path)
	}
	if isBinary(data) {
		return nil, headson.NewError(headson.Skipped, errors.New("binary file")).WithPath(path), nil
	}
	return data, nil, nil
}

// reportSkip prints the spec-mandated stderr notice for a Skipped
// error: "Ignored directory: <path>" or "Ignored binary file: <path>".
func reportSkip(skip *headson.Error) {
	fmt.Fprintf(os.Stderr, "Ignored %s: %s\n", skip.Cause, skip.Path)
}

// isBinary reports whether the first 8 KiB of data contain a NUL
// byte, the same heuristic git and most text tools use to tell binary
// content from text.
func isBinary(data []byte) bool {
	n := len(data)
	if n > 8192 {
		n = 8192
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

// printEmpty renders the canonical empty preview for opts' template
// (an empty JSON object pushed through the ordinary pipeline, so it
// still picks up --compact/--indent styling) for the EmptyFileset
// case: zero valid inputs survived skipping, exit 0 with empty
// output.
func printEmpty(opts headson.Options) error {
	res, err := headson.Render([]byte("{}"), headson.JSON, opts)
	if err != nil {
		return err
	}
	fmt.Println(res.Output)
	return nil
}

func formatFromPath(path string) string {
	switch fileset.DetectFormat(path) {
	case fileset.JSON:
		return "json"
	case fileset.YAML:
		return "yaml"
	default:
		return "text"
	}
}

// resolveIngestFormat honors an explicit -i/--ingest override before
// falling back to extension-based auto-detection; this is what lets
// piped stdin be told to parse as JSON/YAML instead of always
// falling through to Text.
func resolveIngestFormat(c *cli.Context, path string) headson.Format {
	switch strings.ToLower(c.String("ingest")) {
	case "json":
		return headson.JSON
	case "yaml", "yml":
		return headson.YAML
	case "text":
		return headson.Text
	default:
		return headson.ParseFormat(formatFromPath(path))
	}
}

func resolveFilesetFormat(c *cli.Context) fileset.Format {
	switch strings.ToLower(c.String("ingest")) {
	case "json":
		return fileset.JSON
	case "yaml", "yml":
		return fileset.YAML
	case "text":
		return fileset.Text
	default:
		return fileset.Auto
	}
}

func readAll(f *os.File) ([]byte, error) {
	data, err := io.ReadAll(f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return data, nil
}

func resolveOptions(c *cli.Context) (headson.Options, error) {
	if c.Bool("head") && c.Bool("tail") {
		return headson.Options{}, headson.NewError(headson.BadCliUsage, errors.New("--head and --tail are mutually exclusive"))
	}
	if c.Bool("compact") && (c.IsSet("indent") || c.Bool("no-space") || c.Bool("no-newline")) {
		return headson.Options{}, headson.NewError(headson.BadCliUsage, errors.New("--compact conflicts with --indent, --no-space, --no-newline"))
	}

	var file *config.FileConfig
	if path := c.String("config"); path != "" {
		f, err := config.Load(path)
		if err != nil {
			return headson.Options{}, fmt.Errorf("headson: %w", err)
		}
		file = f
	}

	cliOverride := config.FileConfig{}
	if c.IsSet("budget") {
		v := c.Int("budget")
		cliOverride.Budget = &v
	}
	if c.IsSet("template") {
		v := c.String("template")
		cliOverride.Template = &v
	}
	if c.IsSet("verbosity") {
		v := c.String("verbosity")
		cliOverride.Verbosity = &v
	}
	if c.IsSet("color") {
		v := c.String("color")
		cliOverride.Color = &v
	}
	if c.IsSet("prefer-tail-arrays") {
		v := c.Bool("prefer-tail-arrays")
		cliOverride.PreferTailArrays = &v
	}
	if c.IsSet("array-sampler") {
		v := c.String("array-sampler")
		cliOverride.ArraySampler = &v
	}
	if c.IsSet("array-max-items") {
		v := c.Int("array-max-items")
		cliOverride.ArrayMaxItems = &v
	}
	if c.IsSet("max-string-graphemes") {
		v := c.Int("max-string-graphemes")
		cliOverride.MaxStringGraphemes = &v
	}
	if c.IsSet("grep-weak") {
		v := c.String("grep-weak")
		cliOverride.GrepWeak = &v
	}

	merged := config.Merge(file, cliOverride)
	opts := headson.DefaultOptions()
	if merged.Budget != nil {
		opts.Budget = *merged.Budget
	}
	if merged.Template != nil {
		opts.Template = parseTemplate(*merged.Template)
	}
	if merged.Verbosity != nil {
		opts.Verbosity = parseVerbosity(*merged.Verbosity)
	}
	if merged.PreferTailArrays != nil {
		opts.PreferTailArrays = *merged.PreferTailArrays
	}
	if merged.ArraySampler != nil {
		opts.ArraySampler = parseArraySampler(*merged.ArraySampler)
	}
	if merged.ArrayMaxItems != nil {
		opts.ArrayMaxItems = *merged.ArrayMaxItems
	}
	if merged.MaxStringGraphemes != nil {
		opts.MaxStringGraphemes = *merged.MaxStringGraphemes
	}
	if merged.GrepWeak != nil {
		opts.GrepWeak = *merged.GrepWeak
	}

	// --head/--tail are CLI-only shortcuts with no config-file
	// backing and always win, same as any other explicit flag.
	if c.Bool("head") {
		opts.ArraySampler = sampler.Head
		opts.ArrayBias = order.HeadBias
		opts.PreferTailArrays = false
	}
	if c.Bool("tail") {
		opts.ArraySampler = sampler.Tail
		opts.PreferTailArrays = true
	}

	if c.IsSet("global-budget") {
		if g := c.Int("global-budget"); g < opts.Budget {
			opts.Budget = g
		}
	}

	if c.Bool("compact") {
		opts.IndentUnit = ""
		opts.Space = ""
		opts.Newline = ""
	}
	if c.IsSet("indent") {
		opts.IndentUnit = c.String("indent")
	}
	if c.Bool("no-space") {
		opts.Space = ""
	}
	if c.Bool("no-newline") {
		opts.Newline = ""
	}

	colorMode := hsoncolor.Auto
	if merged.Color != nil {
		colorMode = parseColorMode(*merged.Color)
	}
	opts.ColorEnabled = hsoncolor.Enabled(colorMode, isatty.IsTerminal(os.Stdout.Fd()))

	return opts, nil
}

func parseTemplate(s string) render.Template {
	switch strings.ToLower(s) {
	case "pseudo":
		return render.Pseudo
	case "js":
		return render.Js
	case "yaml":
		return render.Yaml
	case "text":
		return render.Text
	default:
		return render.Json
	}
}

func parseVerbosity(s string) render.Verbosity {
	switch strings.ToLower(s) {
	case "strict":
		return render.Strict
	case "detailed":
		return render.Detailed
	default:
		return render.Default
	}
}

func parseArraySampler(s string) sampler.Strategy {
	switch strings.ToLower(s) {
	case "head":
		return sampler.Head
	case "tail":
		return sampler.Tail
	case "none":
		return sampler.None
	default:
		return sampler.HeadMidTail
	}
}

func parseColorMode(s string) hsoncolor.Mode {
	switch strings.ToLower(s) {
	case "always":
		return hsoncolor.Always
	case "never":
		return hsoncolor.Never
	default:
		return hsoncolor.Auto
	}
}
