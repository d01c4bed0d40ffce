// Package fileset composes several independently-ingested inputs (one
// file each, auto-detected or explicitly typed) into a single arena:
// an Object root keyed by path, marked IsFileset so the renderer and
// priority order can special-case it (e.g. "files" instead of
// "properties" in omission text). Parsing runs in parallel, one
// goroutine per input via errgroup; grafting the results into one
// combined arena is sequential, matching the single-threaded ownership
// the order builder expects afterward.
package fileset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kantord/headson/internal/arena"
	"github.com/kantord/headson/internal/ingest/jsonsrc"
	"github.com/kantord/headson/internal/ingest/textsrc"
	"github.com/kantord/headson/internal/ingest/yamlsrc"
	"github.com/kantord/headson/internal/sampler"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyFileset is returned when Ingest is called with no inputs.
var ErrEmptyFileset = errors.New("fileset: no inputs provided")

// Format selects which per-file ingest adapter to use. Auto infers it
// from the path's extension, case-insensitively, falling back to Text
// for anything unrecognized.
type Format uint8

const (
	Auto Format = iota
	JSON
	YAML
	Text
)

// Input is one fileset member: its display path (used as the object
// key) and raw bytes.
type Input struct {
	Path   string
	Data   []byte
	Format Format
}

type Config struct {
	ArrayMaxItems int
	ArrayStrategy sampler.Strategy
	// MaxConcurrency bounds how many files are parsed at once; 0 means
	// errgroup's unbounded default.
	MaxConcurrency int
}

// DetectFormat maps a path's extension to an ingest Format.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Text
	}
}

func resolveFormat(in Input) Format {
	if in.Format != Auto {
		return in.Format
	}
	return DetectFormat(in.Path)
}

func ingestOne(in Input, cfg Config) (*arena.Arena, error) {
	r := bytes.NewReader(in.Data)
	switch resolveFormat(in) {
	case JSON:
		return jsonsrc.Ingest(r, jsonsrc.Config{ArrayMaxItems: cfg.ArrayMaxItems, ArrayStrategy: cfg.ArrayStrategy})
	case YAML:
		return yamlsrc.Ingest(r, yamlsrc.Config{ArrayMaxItems: cfg.ArrayMaxItems, ArrayStrategy: cfg.ArrayStrategy})
	default:
		return textsrc.Ingest(r, textsrc.Config{ArrayMaxItems: cfg.ArrayMaxItems, ArrayStrategy: cfg.ArrayStrategy})
	}
}

// Ingest parses every input concurrently and grafts the results into
// one fileset arena, preserving input order in the object's key list.
func Ingest(ctx context.Context, inputs []Input, cfg Config) (*arena.Arena, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyFileset
	}

	g, _ := errgroup.WithContext(ctx)
	if cfg.MaxConcurrency > 0 {
		g.SetLimit(cfg.MaxConcurrency)
	}

	parsed := make([]*arena.Arena, len(inputs))
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			a, err := ingestOne(in, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Path, err)
			}
			parsed[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := arena.NewBuilder()
	keys := make([]string, len(inputs))
	children := make([]int, len(inputs))
	for i, in := range inputs {
		keys[i] = in.Path
		children[i] = arena.Graft(b, parsed[i], parsed[i].Root)
	}
	rootID := b.PushObject(keys, children, len(inputs))
	b.SetRoot(rootID)
	b.SetFileset(true)
	return b.Finish(), nil
}
