package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-vecgen/pkg/definition"
	"github.com/goliatone/go-vecgen/pkg/generate"
)

const actionsManifest = `
package: actions
wrappers:
  - name: ActionVec
    element: Action
    variants:
      - SignUp
      - SendMessage
  - name: EventVec
    element: Event
`

func manifestDocument(t *testing.T) definition.Document {
	t.Helper()
	doc, err := definition.NewDocument(definition.SourceFromFile("actions.yaml"), []byte(actionsManifest))
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	return doc
}

type captureEmitter struct {
	name string
	opts generate.Options
	defs []definition.Definition
	err  error
}

func (e *captureEmitter) Name() string {
	if e.name == "" {
		return "capture"
	}
	return e.name
}

func (e *captureEmitter) ContentType() string { return "text/plain" }

func (e *captureEmitter) Emit(_ context.Context, def definition.Definition, opts generate.Options) (generate.File, error) {
	if e.err != nil {
		return generate.File{}, e.err
	}
	e.opts = opts
	e.defs = append(e.defs, def)
	return generate.File{Path: def.Name, Contents: []byte(def.Element)}, nil
}

type stubLoader struct {
	doc definition.Document
	err error
}

func (s stubLoader) Load(_ context.Context, _ definition.Source) (definition.Document, error) {
	return s.doc, s.err
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func newTestRegistry(t *testing.T, emitter generate.Emitter) *generate.Registry {
	t.Helper()
	registry := generate.NewRegistry()
	registry.MustRegister(emitter)
	return registry
}

func TestGenerateFromManifestDocument(t *testing.T) {
	emitter := &captureEmitter{}
	orch := New(
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter(emitter.Name()),
	)

	doc := manifestDocument(t)
	files, err := orch.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Generate() produced %d files, want 2", len(files))
	}
	if files[0].Path != "ActionVec" || files[1].Path != "EventVec" {
		t.Fatalf("Generate() paths = %q, %q", files[0].Path, files[1].Path)
	}
	if len(emitter.defs) != 2 || emitter.defs[0].Package != "actions" {
		t.Fatalf("emitter saw %+v", emitter.defs)
	}
	if len(emitter.defs[0].Variants) != 2 {
		t.Fatalf("variants not propagated: %+v", emitter.defs[0].Variants)
	}
}

func TestGenerateUsesLoaderForSources(t *testing.T) {
	emitter := &captureEmitter{}
	orch := New(
		WithLoader(stubLoader{doc: manifestDocument(t)}),
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter(emitter.Name()),
	)

	files, err := orch.Generate(context.Background(), Request{
		Source: definition.SourceFromFile("actions.yaml"),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Generate() produced %d files, want 2", len(files))
	}
}

func TestGenerateFiltersToRequestedWrapper(t *testing.T) {
	emitter := &captureEmitter{}
	orch := New(
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter(emitter.Name()),
	)

	doc := manifestDocument(t)
	file, err := orch.GenerateWrapper(context.Background(), Request{
		Document: &doc,
		Wrapper:  "EventVec",
	})
	if err != nil {
		t.Fatalf("GenerateWrapper() error = %v", err)
	}
	if file.Path != "EventVec" {
		t.Fatalf("GenerateWrapper() path = %q, want %q", file.Path, "EventVec")
	}

	if _, err := orch.Generate(context.Background(), Request{Document: &doc, Wrapper: "Missing"}); err == nil {
		t.Fatal("Generate() error = nil for unknown wrapper")
	}
}

func TestGenerateParsesOpenAPIDocuments(t *testing.T) {
	const document = `{
  "openapi": "3.0.3",
  "info": {"title": "actions", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Action": {
        "oneOf": [
          {"$ref": "#/components/schemas/SignUp"},
          {"$ref": "#/components/schemas/SendMessage"}
        ]
      },
      "SignUp": {"type": "object"},
      "SendMessage": {"type": "object"}
    }
  }
}`

	emitter := &captureEmitter{}
	orch := New(
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter(emitter.Name()),
	)

	doc := definition.MustNewDocument(definition.SourceFromFile("openapi.json"), []byte(document))
	files, err := orch.Generate(context.Background(), Request{
		Document: &doc,
		Package:  "actions",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Generate() produced %d files, want 1", len(files))
	}
	if emitter.defs[0].Name != "ActionVec" || emitter.defs[0].Element != "Action" {
		t.Fatalf("unexpected definition: %+v", emitter.defs[0])
	}
}

func TestGenerateRejectsUnknownDocuments(t *testing.T) {
	emitter := &captureEmitter{}
	orch := New(
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter(emitter.Name()),
	)

	doc := definition.MustNewDocument(definition.SourceFromFile("notes.txt"), []byte("just some text"))
	_, err := orch.Generate(context.Background(), Request{Document: &doc})
	if err == nil {
		t.Fatal("Generate() error = nil for unrecognized document")
	}
	if !strings.Contains(err.Error(), "neither a wrapper manifest nor an OpenAPI document") {
		t.Fatalf("Generate() error = %v", err)
	}
}

func TestGenerateRequiresSourceOrDocument(t *testing.T) {
	orch := New()
	if _, err := orch.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("Generate() error = nil without source or document")
	}
}

func TestGenerateChecksTargetPackage(t *testing.T) {
	dir := t.TempDir()
	source := `package actions

type Action interface {
	isAction()
}

type SignUp struct{}

func (SignUp) isAction() {}
`
	writeFile(t, dir, "actions.go", source)

	emitter := &captureEmitter{}
	orch := New(
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter(emitter.Name()),
		WithGoSourceDir(dir),
	)

	okManifest := `
package: actions
wrappers:
  - name: ActionVec
    element: Action
    variants: [SignUp]
`
	doc := definition.MustNewDocument(definition.SourceFromFile("actions.yaml"), []byte(okManifest))
	if _, err := orch.Generate(context.Background(), Request{Document: &doc}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	badManifest := `
package: actions
wrappers:
  - name: ActionVec
    element: Action
    variants: [SendMessage]
`
	doc = definition.MustNewDocument(definition.SourceFromFile("actions.yaml"), []byte(badManifest))
	if _, err := orch.Generate(context.Background(), Request{Document: &doc}); err == nil {
		t.Fatal("Generate() error = nil for variant missing from the target package")
	}
}

func TestGeneratePassesThemeConfigToEmitter(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "slate",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/slate",
			Files: map[string]string{
				"stylesheet": "sheet.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vendor": "vendor.dark.js",
					},
				},
			},
		},
	}
	selection := &theme.Selection{Theme: "slate", Variant: "dark", Manifest: manifest}
	selector := &stubThemeSelector{selection: selection}

	emitter := &captureEmitter{}
	orch := New(
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter(emitter.Name()),
		WithThemeSelector(selector),
	)

	doc := manifestDocument(t)
	_, err := orch.Generate(context.Background(), Request{
		Document:     &doc,
		ThemeName:    "slate",
		ThemeVariant: "dark",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("selector called %d times, want 1", len(selector.calls))
	}
	if selector.calls[0].name != "slate" || selector.calls[0].variant != "dark" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := emitter.opts.Theme
	if cfg == nil {
		t.Fatal("theme config not passed to emitter")
	}
	if cfg.Theme != "slate" || cfg.Variant != "dark" {
		t.Fatalf("theme selection mismatch: %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("tokens not merged with variant override, got %s", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived from tokens, got %s", cfg.CSSVars["--brand"])
	}
	if cfg.AssetURL == nil {
		t.Fatal("asset resolver missing")
	}
	if got := cfg.AssetURL("vendor"); got != "/assets/themes/slate/vendor.dark.js" {
		t.Fatalf("unexpected vendor asset url: %s", got)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/slate/sheet.css" {
		t.Fatalf("unexpected stylesheet asset url: %s", got)
	}
}

func TestGenerateAppliesDefaultTheme(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "slate", Variant: "light"}}
	emitter := &captureEmitter{}
	orch := New(
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter(emitter.Name()),
		WithThemeSelector(selector),
		WithDefaultTheme("slate", "light"),
	)

	doc := manifestDocument(t)
	if _, err := orch.Generate(context.Background(), Request{Document: &doc}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(selector.calls) != 1 || selector.calls[0].name != "slate" || selector.calls[0].variant != "light" {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}
	if emitter.opts.Theme == nil || emitter.opts.Theme.Theme != "slate" {
		t.Fatalf("default theme not applied: %+v", emitter.opts.Theme)
	}
}

func TestGenerateSkipsThemeWithoutSelection(t *testing.T) {
	emitter := &captureEmitter{}
	orch := New(
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter(emitter.Name()),
	)

	doc := manifestDocument(t)
	if _, err := orch.Generate(context.Background(), Request{Document: &doc, ThemeName: "slate"}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if emitter.opts.Theme != nil {
		t.Fatalf("theme config present without a selector: %+v", emitter.opts.Theme)
	}
}

func TestGenerateFallsBackToRegisteredEmitter(t *testing.T) {
	emitter := &captureEmitter{name: "only"}
	orch := New(
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter("missing"),
	)

	doc := manifestDocument(t)
	if _, err := orch.Generate(context.Background(), Request{Document: &doc}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := orch.Generate(context.Background(), Request{Document: &doc, Emitter: "nope"}); err == nil {
		t.Fatal("Generate() error = nil for explicitly unknown emitter")
	}
}

func TestGenerateWrapsEmitterErrors(t *testing.T) {
	wantErr := errors.New("boom")
	emitter := &captureEmitter{err: wantErr}
	orch := New(
		WithRegistry(newTestRegistry(t, emitter)),
		WithDefaultEmitter(emitter.Name()),
	)

	doc := manifestDocument(t)
	_, err := orch.Generate(context.Background(), Request{Document: &doc})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Generate() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestGenerateDefaultRegistryHasBothEmitters(t *testing.T) {
	orch := New()

	doc := manifestDocument(t)
	files, err := orch.Generate(context.Background(), Request{Document: &doc, Emitter: "contract"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(files) != 2 || !strings.HasSuffix(files[0].Path, ".html") {
		t.Fatalf("contract emitter output unexpected: %+v", filePaths(files))
	}

	files, err = orch.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(files) != 2 || files[0].Path != "action_vec.go" {
		t.Fatalf("code emitter output unexpected: %+v", filePaths(files))
	}
}

func filePaths(files []generate.File) []string {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, file.Path)
	}
	return paths
}

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
