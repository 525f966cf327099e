// Package contract emits an HTML contract sheet per wrapper definition: the
// generated surface laid out for review, without requiring readers to open
// the generated Go source.
package contract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-vecgen/pkg/definition"
	"github.com/goliatone/go-vecgen/pkg/generate"
	"github.com/goliatone/go-vecgen/pkg/generate/template"
	gotemplate "github.com/goliatone/go-vecgen/pkg/generate/template/gotemplate"
)

const (
	emitterName  = "contract"
	templateName = "templates/sheet"
)

// Option customises the emitter configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer template.Renderer
	policy           *bluemonday.Policy
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

// WithSanitizePolicy overrides the bluemonday policy applied to
// manifest-supplied descriptions before they reach the HTML output.
func WithSanitizePolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Emitter renders wrapper definitions into HTML contract sheets.
type Emitter struct {
	templates template.Renderer
	policy    *bluemonday.Policy
}

var _ generate.Emitter = (*Emitter)(nil)

// New constructs the contract emitter applying any provided options.
func New(options ...Option) (*Emitter, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		policy:     bluemonday.StrictPolicy(),
	}
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
			return nil, fmt.Errorf("contract: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Emitter{templates: renderer, policy: cfg.policy}, nil
}

// Name reports the emitter identifier.
func (e *Emitter) Name() string {
	return emitterName
}

// ContentType reports the MIME type of emitted files.
func (e *Emitter) ContentType() string {
	return "text/html; charset=utf-8"
}

// Emit renders the contract sheet for def.
func (e *Emitter) Emit(ctx context.Context, def definition.Definition, opts generate.Options) (generate.File, error) {
	if err := ctx.Err(); err != nil {
		return generate.File{}, err
	}
	if err := definition.Validate(def); err != nil {
		return generate.File{}, err
	}

	rendered, err := e.templates.RenderTemplate(templateName, e.templateContext(def, opts))
	if err != nil {
		return generate.File{}, fmt.Errorf("contract: render sheet for %q: %w", def.Name, err)
	}

	return generate.File{
		Path:     sheetFileName(def.Name),
		Contents: []byte(rendered),
	}, nil
}

func (e *Emitter) templateContext(def definition.Definition, opts generate.Options) map[string]any {
	name := def.Name
	element := def.Element

	operations := []map[string]any{
		{"label": "construct", "signature": fmt.Sprintf("New%s(items ...%s) %s", name, element, name)},
	}
	if def.ExplicitEmpty {
		operations = append(operations, map[string]any{
			"label": "empty", "signature": fmt.Sprintf("Empty%s() %s", name, name),
		})
	}
	operations = append(operations,
		map[string]any{"label": "from raw sequence", "signature": fmt.Sprintf("%sFrom(raw []%s) %s", name, element, name)},
		map[string]any{"label": "push", "signature": fmt.Sprintf("Push(item %s)", element)},
		map[string]any{"label": "extend", "signature": fmt.Sprintf("Extend(items iter.Seq[%s])", element)},
		map[string]any{"label": "extend (slice)", "signature": fmt.Sprintf("ExtendSlice(items []%s)", element)},
		map[string]any{"label": "iterate (by reference)", "signature": fmt.Sprintf("Values() iter.Seq[%s]", element)},
		map[string]any{"label": "iterate (indexed)", "signature": fmt.Sprintf("All() iter.Seq2[int, %s]", element)},
		map[string]any{"label": "iterate (owned, one-shot)", "signature": fmt.Sprintf("Drain() iter.Seq[%s]", element)},
		map[string]any{"label": "to raw sequence", "signature": fmt.Sprintf("Raw() []%s", element)},
	)

	variants := make([]map[string]any, 0, len(def.Variants))
	for _, variant := range def.Variants {
		variants = append(variants, map[string]any{
			"name":    variant.Name,
			"push":    fmt.Sprintf("Push%s(item %s)", variant.Name, variant.Name),
			"promote": fmt.Sprintf("%sOf%s(item %s) %s", name, variant.Name, variant.Name, name),
			"doc":     e.policy.Sanitize(variant.Doc),
		})
	}

	derives := make([]string, 0, len(def.Derives))
	for _, derive := range def.Derives {
		derives = append(derives, string(derive))
	}
	sort.Strings(derives)

	data := map[string]any{
		"name":       name,
		"element":    element,
		"package":    def.PackageOr(opts.Package),
		"doc":        e.policy.Sanitize(def.Doc),
		"constraint": def.Constraint,
		"operations": operations,
		"variants":   variants,
		"derives":    derives,
	}

	if cfg := opts.Theme; cfg != nil {
		data["theme_name"] = cfg.Theme
		data["theme_variant"] = cfg.Variant
		data["theme_css"] = cssVarsStyle(cfg.CSSVars)
	}
	return data
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// sheetFileName mirrors the go emitter's snake_case naming so both artifacts
// of a wrapper sit next to each other in an output directory.
func sheetFileName(typeName string) string {
	runes := []rune(typeName)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 &&
				(!unicode.IsUpper(runes[i-1]) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if boundary {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String() + ".html"
}
