package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/pelletier/go-toml/v2"
	"github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// configSchema describes the shape of a headson config file. It's
// expressed as a Schema literal rather than loaded from a .json file
// since the whole schema is small and lives next to the fields it
// describes.
var configSchema = &jsonschema.Schema{
	Type:                 "object",
	AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	Properties: map[string]*jsonschema.Schema{
		"budget":               {Type: "integer"},
		"template":             {Type: "string", Enum: []any{"json", "pseudo", "js", "yaml", "text"}},
		"verbosity":            {Type: "string", Enum: []any{"strict", "default", "detailed"}},
		"color":                {Type: "string", Enum: []any{"auto", "always", "never"}},
		"prefer_tail_arrays":   {Type: "boolean"},
		"array_bias":           {Type: "string"},
		"array_sampler":        {Type: "string", Enum: []any{"head", "tail", "head-mid-tail", "none"}},
		"max_string_graphemes": {Type: "integer"},
		"array_max_items":      {Type: "integer"},
		"grep_weak":            {Type: "string"},
	},
}

var resolvedConfigSchema *jsonschema.Resolved

func resolvedSchema() (*jsonschema.Resolved, error) {
	if resolvedConfigSchema != nil {
		return resolvedConfigSchema, nil
	}
	r, err := configSchema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("config: resolving schema: %w", err)
	}
	resolvedConfigSchema = r
	return r, nil
}

// ValidateFile checks that the document at path conforms to the
// headson config schema before it's interpreted, so a typo'd key
// surfaces as an error instead of silently no-opping.
func ValidateFile(path string) error {
	doc, err := toGenericMap(path)
	if err != nil {
		return err
	}
	schema, err := resolvedSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

func toGenericMap(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	}
	doc, err := kdl.Parse(string(data))
	if err != nil {
		return nil, err
	}
	return kdlDocToMap(doc), nil
}

func kdlDocToMap(doc *document.Document) map[string]any {
	m := make(map[string]any, len(doc.Nodes))
	for _, n := range doc.Nodes {
		name := nodeName(n)
		if len(n.Arguments) == 0 {
			continue
		}
		m[strings.ReplaceAll(name, "-", "_")] = n.Arguments[0].Value
	}
	return m
}
