// Package manifest decodes YAML/JSON wrapper manifests into definition sets.
// A manifest is the declarative "definition invocation": one document lists
// every wrapper type a codebase wants generated.
package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-vecgen/pkg/definition"
)

// documentPayload mirrors the on-disk manifest shape.
type documentPayload struct {
	Package  string           `yaml:"package"`
	Wrappers []wrapperPayload `yaml:"wrappers"`
}

type wrapperPayload struct {
	Name          string           `yaml:"name"`
	Element       string           `yaml:"element"`
	ElementImport string           `yaml:"element_import"`
	Package       string           `yaml:"package"`
	Doc           string           `yaml:"doc"`
	Constraint    string           `yaml:"constraint"`
	Variants      []variantPayload `yaml:"variants"`
	Derives       []string         `yaml:"derives"`
	ExplicitEmpty *bool            `yaml:"explicit_empty"`
}

// variantPayload accepts either a bare type name or a mapping with optional
// conversion and doc entries.
type variantPayload struct {
	Name    string `yaml:"name"`
	Import  string `yaml:"import"`
	Convert string `yaml:"convert"`
	Doc     string `yaml:"doc"`
}

func (v *variantPayload) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		v.Name = strings.TrimSpace(node.Value)
		return nil
	}

	type alias variantPayload
	var decoded alias
	if err := node.Decode(&decoded); err != nil {
		return fmt.Errorf("manifest: decode variant: %w", err)
	}
	*v = variantPayload(decoded)
	return nil
}

// Detect reports whether the raw payload looks like a wrapper manifest. YAML
// is a superset of JSON, so one probe covers both encodings.
func Detect(raw []byte) bool {
	var probe map[string]any
	if err := yaml.Unmarshal(raw, &probe); err != nil {
		return false
	}
	_, ok := probe["wrappers"]
	return ok
}

// Parse decodes a manifest document into validated wrapper definitions.
func Parse(doc definition.Document) ([]definition.Definition, error) {
	var payload documentPayload
	if err := yaml.Unmarshal(doc.Raw(), &payload); err != nil {
		return nil, fmt.Errorf("manifest: decode %s: %w", doc.Location(), err)
	}
	if len(payload.Wrappers) == 0 {
		return nil, fmt.Errorf("manifest: %s declares no wrappers", doc.Location())
	}

	defs := make([]definition.Definition, 0, len(payload.Wrappers))
	for _, wrapper := range payload.Wrappers {
		def := definition.Definition{
			Name:          strings.TrimSpace(wrapper.Name),
			Element:       strings.TrimSpace(wrapper.Element),
			ElementImport: strings.TrimSpace(wrapper.ElementImport),
			Package:       firstNonEmpty(wrapper.Package, payload.Package),
			Doc:           strings.TrimSpace(wrapper.Doc),
			Constraint:    strings.TrimSpace(wrapper.Constraint),
			ExplicitEmpty: true,
		}
		if wrapper.ExplicitEmpty != nil {
			def.ExplicitEmpty = *wrapper.ExplicitEmpty
		}

		for _, variant := range wrapper.Variants {
			def.Variants = append(def.Variants, definition.Variant{
				Name:    strings.TrimSpace(variant.Name),
				Import:  strings.TrimSpace(variant.Import),
				Convert: strings.TrimSpace(variant.Convert),
				Doc:     strings.TrimSpace(variant.Doc),
			})
		}
		for _, derive := range wrapper.Derives {
			def.Derives = append(def.Derives, definition.Derive(strings.TrimSpace(derive)))
		}

		defs = append(defs, def)
	}

	if err := definition.ValidateAll(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
