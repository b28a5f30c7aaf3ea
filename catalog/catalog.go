// Package catalog describes the capabilities of models served by the GitHub
// Models catalog. Examples that rely on tool calling consult it before
// starting so a model without function-calling support fails fast with a
// clear message instead of a confusing API error.
//
// The catalog is a snapshot embedded at build time; an unknown model name is
// not an error, it simply reports no capability information.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var modelsYAML []byte

// ModelCapability records what a catalog model can do.
type ModelCapability struct {
	Name                string `yaml:"name"`
	Publisher           string `yaml:"publisher"`
	SupportsToolCalling bool   `yaml:"supports_tool_calling"`
	SupportsStreaming   bool   `yaml:"supports_streaming"`
	MaxOutputTokens     int    `yaml:"max_output_tokens"`
}

var models = mustLoad()

func mustLoad() map[string]ModelCapability {
	var doc struct {
		Models []ModelCapability `yaml:"models"`
	}
	if err := yaml.Unmarshal(modelsYAML, &doc); err != nil {
		panic(fmt.Sprintf("catalog: embedded models.yaml is invalid: %v", err))
	}
	out := make(map[string]ModelCapability, len(doc.Models))
	for _, m := range doc.Models {
		out[strings.ToLower(m.Name)] = m
	}
	return out
}

// Lookup returns the capability record for a model name. Matching is
// case-insensitive because the marketplace accepts either spelling.
func Lookup(name string) (ModelCapability, bool) {
	m, ok := models[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// Names returns the catalog model names in sorted order.
func Names() []string {
	out := make([]string, 0, len(models))
	for _, m := range models {
		out = append(out, m.Name)
	}
	sort.Strings(out)
	return out
}
