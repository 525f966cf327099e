// Package openapi derives wrapper definitions from OpenAPI documents.
// Component schemas declaring a oneOf of $ref alternatives describe a tagged
// union: the schema is the element type and each alternative is a
// variant-source type.
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-vecgen/pkg/definition"
)

// extWrapperName lets a schema override the derived wrapper type name.
const extWrapperName = "x-wrapper-name"

// defaultSuffix is appended to the element name when no override is present.
const defaultSuffix = "Vec"

// Options configures union extraction.
type Options struct {
	// AllowPartialDocuments skips schemas whose alternatives are not all
	// named $refs instead of failing.
	AllowPartialDocuments bool
	// Package is applied to every derived definition.
	Package string
}

// Detect reports whether the raw payload looks like an OpenAPI document.
func Detect(raw []byte) bool {
	var probe struct {
		OpenAPI string `json:"openapi" yaml:"openapi"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.OpenAPI != "" {
		return true
	}
	// YAML documents reach the loader too; a cheap scan avoids a second
	// full decode here.
	return strings.Contains(string(raw), "openapi:")
}

// Parse extracts one wrapper definition per oneOf union found in the
// document's component schemas.
func Parse(ctx context.Context, doc definition.Document, opts Options) ([]definition.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document has no component schemas")
	}

	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	var defs []definition.Definition
	for _, name := range names {
		ref := spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil || len(ref.Value.OneOf) == 0 {
			continue
		}

		def, err := unionDefinition(name, ref.Value, opts)
		if err != nil {
			if opts.AllowPartialDocuments {
				continue
			}
			return nil, err
		}
		defs = append(defs, def)
	}

	if len(defs) == 0 {
		return nil, errors.New("openapi: no oneOf unions found in component schemas")
	}

	if err := definition.ValidateAll(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func unionDefinition(element string, schema *openapi3.Schema, opts Options) (definition.Definition, error) {
	def := definition.Definition{
		Name:          element + defaultSuffix,
		Element:       element,
		Package:       opts.Package,
		Doc:           strings.TrimSpace(schema.Description),
		ExplicitEmpty: true,
	}

	if override := stringExtension(schema.Extensions, extWrapperName); override != "" {
		def.Name = override
	}

	for _, alternative := range schema.OneOf {
		variant, err := refTypeName(alternative)
		if err != nil {
			return definition.Definition{}, fmt.Errorf("openapi: schema %q: %w", element, err)
		}
		doc := ""
		if alternative.Value != nil {
			doc = strings.TrimSpace(alternative.Value.Description)
		}
		def.Variants = append(def.Variants, definition.Variant{Name: variant, Doc: doc})
	}

	return def, nil
}

// refTypeName extracts the named schema a oneOf alternative points at.
// Inline alternatives have no name to generate a variant-source type from.
func refTypeName(ref *openapi3.SchemaRef) (string, error) {
	if ref == nil || ref.Ref == "" {
		return "", errors.New("oneOf alternative is not a named $ref")
	}
	segments := strings.Split(ref.Ref, "/")
	name := segments[len(segments)-1]
	if name == "" {
		return "", fmt.Errorf("oneOf alternative has malformed $ref %q", ref.Ref)
	}
	return name, nil
}

func stringExtension(extensions map[string]any, key string) string {
	if len(extensions) == 0 {
		return ""
	}
	switch value := extensions[key].(type) {
	case string:
		return strings.TrimSpace(value)
	case json.RawMessage:
		var decoded string
		if err := json.Unmarshal(value, &decoded); err == nil {
			return strings.TrimSpace(decoded)
		}
	}
	return ""
}
