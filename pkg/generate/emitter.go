// Package generate defines the emitter contract shared by every output
// format: one wrapper definition in, one generated file out.
package generate

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-vecgen/pkg/definition"
)

// File is a single generated artifact. Path is relative to the caller's
// output directory.
type File struct {
	Path     string
	Contents []byte
}

// Options carries per-request knobs shared by emitters.
type Options struct {
	// Package overrides the target package name when the definition does not
	// pin one.
	Package string
	// Header is an extra comment block placed under the generated-code
	// marker (license headers, build tags).
	Header string
	// Theme customises presentation-oriented emitters (the contract sheet).
	// Code emitters ignore it.
	Theme *theme.RendererConfig
}

// Emitter converts a wrapper definition into a generated file (Go source,
// contract sheet, etc.).
type Emitter interface {
	Name() string
	ContentType() string
	Emit(ctx context.Context, def definition.Definition, opts Options) (File, error)
}
