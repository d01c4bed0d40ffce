// Package config loads project-level defaults for headson from a KDL
// or TOML file and merges them under explicit CLI overrides: the file
// supplies defaults, flags always win. Grounded on the teacher's own
// internal/config/kdl_config.go node-walking style, extended with a
// second TOML front door and JSON-Schema validation of the loaded
// document before it's interpreted.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileConfig is the typed, partially-populated result of loading a
// config file: every field is a pointer so "absent from the file" is
// distinguishable from "explicitly set to the zero value".
type FileConfig struct {
	Budget             *int
	Template           *string
	Verbosity          *string
	Color              *string
	PreferTailArrays   *bool
	ArrayBias          *string
	ArraySampler       *string
	MaxStringGraphemes *int
	ArrayMaxItems      *int
	GrepWeak           *string
}

// Load reads path and dispatches on its extension: .kdl or .toml. Any
// other extension is an error rather than a silent no-op, since a typo
// like ".conf" would otherwise load nothing and look like an empty
// config was intended.
func Load(path string) (*FileConfig, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".kdl" && ext != ".toml" {
		return nil, fmt.Errorf("config: unsupported file extension %q (want .kdl or .toml)", ext)
	}
	if err := ValidateFile(path); err != nil {
		return nil, err
	}
	if ext == ".kdl" {
		return loadKDLFile(path)
	}
	return loadTOMLFile(path)
}

// Merge layers cli's explicitly-set fields over file's, returning the
// effective FileConfig. A nil file is treated as empty defaults.
func Merge(file *FileConfig, cli FileConfig) FileConfig {
	out := FileConfig{}
	if file != nil {
		out = *file
	}
	if cli.Budget != nil {
		out.Budget = cli.Budget
	}
	if cli.Template != nil {
		out.Template = cli.Template
	}
	if cli.Verbosity != nil {
		out.Verbosity = cli.Verbosity
	}
	if cli.Color != nil {
		out.Color = cli.Color
	}
	if cli.PreferTailArrays != nil {
		out.PreferTailArrays = cli.PreferTailArrays
	}
	if cli.ArrayBias != nil {
		out.ArrayBias = cli.ArrayBias
	}
	if cli.ArraySampler != nil {
		out.ArraySampler = cli.ArraySampler
	}
	if cli.MaxStringGraphemes != nil {
		out.MaxStringGraphemes = cli.MaxStringGraphemes
	}
	if cli.ArrayMaxItems != nil {
		out.ArrayMaxItems = cli.ArrayMaxItems
	}
	if cli.GrepWeak != nil {
		out.GrepWeak = cli.GrepWeak
	}
	return out
}
