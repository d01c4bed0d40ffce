package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// tomlDoc mirrors FileConfig with toml tags; go-toml/v2 leaves a pointer
// field nil when the key is absent, giving the same presence semantics
// as the KDL loader without a separate generic-map pass.
type tomlDoc struct {
	Budget             *int    `toml:"budget"`
	Template           *string `toml:"template"`
	Verbosity          *string `toml:"verbosity"`
	Color              *string `toml:"color"`
	PreferTailArrays   *bool   `toml:"prefer_tail_arrays"`
	ArrayBias          *string `toml:"array_bias"`
	ArraySampler       *string `toml:"array_sampler"`
	MaxStringGraphemes *int    `toml:"max_string_graphemes"`
	ArrayMaxItems      *int    `toml:"array_max_items"`
	GrepWeak           *string `toml:"grep_weak"`
}

func loadTOMLFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d tomlDoc
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &FileConfig{
		Budget:             d.Budget,
		Template:           d.Template,
		Verbosity:          d.Verbosity,
		Color:              d.Color,
		PreferTailArrays:   d.PreferTailArrays,
		ArrayBias:          d.ArrayBias,
		ArraySampler:       d.ArraySampler,
		MaxStringGraphemes: d.MaxStringGraphemes,
		ArrayMaxItems:      d.ArrayMaxItems,
		GrepWeak:           d.GrepWeak,
	}, nil
}
