// Package vecgen generates named wrapper types over element slices. A wrapper
// manifest (or an OpenAPI document with oneOf unions) declares the wrappers;
// emitters turn each declaration into Go source or an HTML contract sheet.
package vecgen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-vecgen/pkg/definition"
	"github.com/goliatone/go-vecgen/pkg/generate"
	"github.com/goliatone/go-vecgen/pkg/orchestrator"
)

// Definition aliases definition.Definition for callers constructing wrapper
// declarations programmatically.
type Definition = definition.Definition

// Variant aliases definition.Variant.
type Variant = definition.Variant

// File aliases generate.File, the unit of emitter output.
type File = generate.File

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so most callers never import the subpackages.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the definition source and emits one file per wrapper using
// the named emitter. It is the simplest entry point for callers that just
// want generated output.
func Generate(ctx context.Context, source definition.Source, emitterName string, options ...orchestrator.Option) ([]generate.File, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:  source,
		Emitter: emitterName,
	})
}

// GenerateFromDocument emits wrappers from a pre-loaded document, bypassing
// the loader stage while still delegating to the orchestrator.
func GenerateFromDocument(ctx context.Context, doc definition.Document, emitterName string, options ...orchestrator.Option) ([]generate.File, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Emitter:  emitterName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of emitting contract sheets.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithDefaultTheme forwards the default theme applied when a request names
// none.
func WithDefaultTheme(name, variant string) orchestrator.Option {
	return orchestrator.WithDefaultTheme(name, variant)
}

// WithGoSourceDir forwards the target-package check directory.
func WithGoSourceDir(dir string) orchestrator.Option {
	return orchestrator.WithGoSourceDir(dir)
}
