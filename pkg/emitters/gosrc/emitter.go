// Package gosrc emits the Go source file for a wrapper definition: a named
// slice type over the element plus the full construction, insertion,
// iteration, and conversion surface.
package gosrc

import (
	"context"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"sort"

	"github.com/goliatone/go-vecgen/pkg/definition"
	"github.com/goliatone/go-vecgen/pkg/generate"
	"github.com/goliatone/go-vecgen/pkg/generate/template"
	gotemplate "github.com/goliatone/go-vecgen/pkg/generate/template/gotemplate"
)

const (
	emitterName  = "gosrc"
	templateName = "templates/wrapper"
)

// Option customises the emitter configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer template.Renderer
	skipFormat       bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer template.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithoutFormatting skips the gofmt pass. Intended for debugging broken
// templates, where the unformatted output is the artifact of interest.
func WithoutFormatting() Option {
	return func(cfg *config) {
		cfg.skipFormat = true
	}
}

// Emitter renders wrapper definitions into gofmt'd Go source.
type Emitter struct {
	templates  template.Renderer
	skipFormat bool
}

var _ generate.Emitter = (*Emitter)(nil)

// New constructs the Go source emitter applying any provided options.
func New(options ...Option) (*Emitter, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("gosrc: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Emitter{templates: renderer, skipFormat: cfg.skipFormat}, nil
}

// Name reports the emitter identifier.
func (e *Emitter) Name() string {
	return emitterName
}

// ContentType reports the MIME type of emitted files.
func (e *Emitter) ContentType() string {
	return "text/x-go"
}

// Emit renders the wrapper source for def. The output is deterministic for a
// given definition and options.
func (e *Emitter) Emit(ctx context.Context, def definition.Definition, opts generate.Options) (generate.File, error) {
	if err := ctx.Err(); err != nil {
		return generate.File{}, err
	}
	if err := definition.Validate(def); err != nil {
		return generate.File{}, err
	}

	pkgName := def.PackageOr(opts.Package)
	if pkgName == "" {
		return generate.File{}, errors.New("gosrc: package name is required (set it on the definition or the options)")
	}

	imports, err := extraImports(def)
	if err != nil {
		return generate.File{}, err
	}

	rendered, err := e.templates.RenderTemplate(templateName, templateContext(def, pkgName, opts.Header, imports))
	if err != nil {
		return generate.File{}, fmt.Errorf("gosrc: render wrapper %q: %w", def.Name, err)
	}

	contents := []byte(rendered)
	if !e.skipFormat {
		formatted, err := format.Source(contents)
		if err != nil {
			return generate.File{}, fmt.Errorf("gosrc: format wrapper %q: %w", def.Name, err)
		}
		contents = formatted
	}

	return generate.File{Path: fileName(def.Name), Contents: contents}, nil
}

// extraImports resolves the import block entries for package-qualified type
// names. A qualified name with no import path cannot compile, so emission
// fails instead of writing a broken file.
func extraImports(def definition.Definition) ([]string, error) {
	set := make(map[string]struct{})

	if qualifier(def.Element) != "" {
		if def.ElementImport == "" {
			return nil, fmt.Errorf("gosrc: element %q is package-qualified but the definition has no element import path", def.Element)
		}
		set[def.ElementImport] = struct{}{}
	}
	for _, variant := range def.Variants {
		if qualifier(variant.Name) == "" {
			continue
		}
		if variant.Import == "" {
			return nil, fmt.Errorf("gosrc: variant %q is package-qualified but has no import path", variant.Name)
		}
		set[variant.Import] = struct{}{}
	}

	imports := make([]string, 0, len(set))
	for path := range set {
		imports = append(imports, path)
	}
	sort.Strings(imports)
	return imports, nil
}

func templateContext(def definition.Definition, pkgName, header string, imports []string) map[string]any {
	variants := make([]map[string]any, 0, len(def.Variants))
	for _, variant := range def.Variants {
		expr := "item"
		if variant.Convert != "" {
			expr = variant.Convert + "(item)"
		}
		variants = append(variants, map[string]any{
			"name":   variant.Name,
			"method": localName(variant.Name),
			"doc":    variant.Doc,
			"expr":   expr,
		})
	}

	return map[string]any{
		"package":        pkgName,
		"header":         header,
		"extra_imports":  imports,
		"name":           def.Name,
		"element":        def.Element,
		"recv":           receiverName(def.Name),
		"doc":            def.Doc,
		"constraint":     def.Constraint,
		"explicit_empty": def.ExplicitEmpty,
		"variants":       variants,
		"json":           def.HasDerive(definition.DeriveJSON),
		"stringer":       def.HasDerive(definition.DeriveStringer),
		"equal":          def.HasDerive(definition.DeriveEqual),
	}
}
