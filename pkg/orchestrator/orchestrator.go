package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-vecgen/internal/gosource"
	internalLoader "github.com/goliatone/go-vecgen/internal/loader"
	"github.com/goliatone/go-vecgen/internal/manifest"
	internalOpenAPI "github.com/goliatone/go-vecgen/internal/openapi"
	"github.com/goliatone/go-vecgen/pkg/definition"
	"github.com/goliatone/go-vecgen/pkg/emitters/contract"
	"github.com/goliatone/go-vecgen/pkg/emitters/gosrc"
	"github.com/goliatone/go-vecgen/pkg/generate"
)

const defaultEmitterName = "gosrc"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom definition loader.
func WithLoader(loader definition.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithLoaderOptions configures the built-in loader. Ignored when WithLoader
// supplies a custom implementation.
func WithLoaderOptions(options ...definition.LoaderOption) Option {
	return func(o *Orchestrator) {
		o.loaderOptions = definition.NewLoaderOptions(options...)
	}
}

// WithRegistry injects an emitter registry.
func WithRegistry(registry *generate.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultEmitter overrides the emitter used when a request omits an
// explicit Emitter field.
func WithDefaultEmitter(name string) Option {
	return func(o *Orchestrator) {
		o.defaultEmitter = name
	}
}

// WithPartialDocuments lets OpenAPI parsing skip union schemas that mix named
// references with inline alternatives instead of failing the whole document.
func WithPartialDocuments() Option {
	return func(o *Orchestrator) {
		o.allowPartialDocuments = true
	}
}

// WithGoSourceDir points the orchestrator at an existing Go package so parsed
// definitions are checked against its element and variant types before
// emitting.
func WithGoSourceDir(dir string) Option {
	return func(o *Orchestrator) {
		o.goSourceDir = dir
	}
}

// WithThemeSelector passes a go-theme selector used to resolve theme
// configuration for presentation emitters.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithDefaultTheme sets the theme applied when a request does not name one.
// Only takes effect when a selector is configured.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// Orchestrator coordinates the full pipeline from definition document to
// generated files. It applies sensible defaults (go source emitter, embedded
// templates) while remaining open to dependency injection for advanced
// callers.
type Orchestrator struct {
	loader                definition.Loader
	loaderOptions         definition.LoaderOptions
	registry              *generate.Registry
	defaultEmitter        string
	themeSelector         theme.ThemeSelector
	defaultTheme          string
	defaultVariant        string
	goSourceDir           string
	allowPartialDocuments bool
	initialiseErr         error
	defaultsApplied       bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultEmitter: defaultEmitterName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to generate wrapper code from a
// definition document.
type Request struct {
	// Source identifies where the definition document lives. Optional when
	// Document is supplied.
	Source definition.Source

	// Document allows callers to bypass the loader when they already have a
	// raw payload.
	Document *definition.Document

	// Wrapper restricts generation to the named wrapper. Empty means every
	// wrapper in the document.
	Wrapper string

	// Emitter names the emitter to use. If empty, the orchestrator falls back
	// to the configured default emitter.
	Emitter string

	// Package overrides the target package for definitions that do not pin
	// one.
	Package string

	// Header is an extra comment block prepended to code output.
	Header string

	// ThemeName and ThemeVariant select presentation for emitters that honour
	// themes. Ignored unless a theme selector is configured.
	ThemeName    string
	ThemeVariant string
}

// Generate executes the loader → parser → validation → emitter sequence and
// returns one generated file per wrapper definition.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]generate.File, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	defs, err := o.parseDocument(ctx, doc, req)
	if err != nil {
		return nil, err
	}

	if req.Wrapper != "" {
		defs, err = filterWrapper(defs, req.Wrapper)
		if err != nil {
			return nil, err
		}
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("orchestrator: document %q defines no wrappers", doc.Location())
	}

	if o.goSourceDir != "" {
		pkg, err := gosource.InspectDir(o.goSourceDir)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: inspect target package: %w", err)
		}
		for _, def := range defs {
			if err := pkg.Check(def); err != nil {
				return nil, fmt.Errorf("orchestrator: check %q against %s: %w", def.Name, o.goSourceDir, err)
			}
		}
	}

	opts := generate.Options{
		Package: req.Package,
		Header:  req.Header,
	}
	opts.Theme, err = o.resolveTheme(req)
	if err != nil {
		return nil, err
	}

	emitter, err := o.emitterFor(req.Emitter)
	if err != nil {
		return nil, err
	}

	files := make([]generate.File, 0, len(defs))
	for _, def := range defs {
		file, err := emitter.Emit(ctx, def, opts)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: emit %q: %w", def.Name, err)
		}
		files = append(files, file)
	}
	return files, nil
}

// GenerateWrapper is a convenience wrapper around Generate for the common
// single-wrapper case.
func (o *Orchestrator) GenerateWrapper(ctx context.Context, req Request) (generate.File, error) {
	files, err := o.Generate(ctx, req)
	if err != nil {
		return generate.File{}, err
	}
	if len(files) != 1 {
		return generate.File{}, fmt.Errorf("orchestrator: expected a single wrapper, document produced %d", len(files))
	}
	return files[0], nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (definition.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return definition.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return definition.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) parseDocument(ctx context.Context, doc definition.Document, req Request) ([]definition.Definition, error) {
	raw := doc.Raw()
	switch {
	case manifest.Detect(raw):
		defs, err := manifest.Parse(doc)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: parse manifest: %w", err)
		}
		return defs, nil
	case internalOpenAPI.Detect(raw):
		defs, err := internalOpenAPI.Parse(ctx, doc, internalOpenAPI.Options{
			AllowPartialDocuments: o.allowPartialDocuments,
			Package:               req.Package,
		})
		if err != nil {
			return nil, fmt.Errorf("orchestrator: parse openapi document: %w", err)
		}
		return defs, nil
	default:
		return nil, fmt.Errorf("orchestrator: document %q is neither a wrapper manifest nor an OpenAPI document", doc.Location())
	}
}

func (o *Orchestrator) emitterFor(name string) (generate.Emitter, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: emitter registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultEmitter
	}

	if target != "" {
		emitter, err := o.registry.Get(target)
		if err == nil {
			return emitter, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: emitter %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no emitters registered")
	}

	emitter, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: emitter %q: %w", names[0], err)
	}
	return emitter, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}

	name := req.ThemeName
	if name == "" {
		name = o.defaultTheme
	}
	if name == "" {
		return nil, nil
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = o.defaultVariant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}
	return rendererConfig(selection), nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(o.loaderOptions)
	}
	if o.registry == nil {
		o.registry = generate.NewRegistry()
		code, err := gosrc.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default code emitter: %w", err)
		} else {
			o.registry.MustRegister(code)
		}
		sheet, err := contract.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default contract emitter: %w", err)
		} else {
			o.registry.MustRegister(sheet)
		}
	}
	if o.defaultEmitter == "" {
		o.defaultEmitter = defaultEmitterName
	}

	o.defaultsApplied = true
}

func filterWrapper(defs []definition.Definition, name string) ([]definition.Definition, error) {
	for _, def := range defs {
		if def.Name == name {
			return []definition.Definition{def}, nil
		}
	}
	return nil, fmt.Errorf("orchestrator: wrapper %q not found in document", name)
}
