package gosource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-vecgen/pkg/definition"
)

const sealedUnion = `package actions

type Action interface {
	isAction()
}

type SignUpAction struct {
	Username string
	Password string
}

func (SignUpAction) isAction() {}

type SendMessageAction struct {
	From, To, Text string
}

func (SendMessageAction) isAction() {}

type Credentials struct {
	Username string
	Password string
}

func ActionFromCredentials(c Credentials) Action {
	return SignUpAction{Username: c.Username, Password: c.Password}
}
`

func writePackage(t *testing.T, source string) *Package {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "actions.go"), []byte(source), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	pkg, err := InspectDir(dir)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	return pkg
}

func TestInspectDir_IndexesDeclarations(t *testing.T) {
	pkg := writePackage(t, sealedUnion)

	if pkg.Name() != "actions" {
		t.Fatalf("package name: %q", pkg.Name())
	}
	for _, name := range []string{"Action", "SignUpAction", "SendMessageAction", "Credentials"} {
		if !pkg.HasType(name) {
			t.Fatalf("type %q not indexed", name)
		}
	}
}

func TestCheck_SealedInterfaceVariants(t *testing.T) {
	pkg := writePackage(t, sealedUnion)

	def := definition.Definition{
		Name:    "ActionVec",
		Element: "Action",
		Variants: []definition.Variant{
			{Name: "SignUpAction"},
			{Name: "SendMessageAction"},
		},
	}
	if err := pkg.Check(def); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestCheck_QualifiedElementName(t *testing.T) {
	pkg := writePackage(t, sealedUnion)

	def := definition.Definition{Name: "ActionVec", Element: "actions.Action"}
	if err := pkg.Check(def); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestCheck_QualifiedVariantNames(t *testing.T) {
	pkg := writePackage(t, sealedUnion)

	def := definition.Definition{
		Name:    "ActionVec",
		Element: "actions.Action",
		Variants: []definition.Variant{
			{Name: "actions.SignUpAction"},
			{Name: "actions.Credentials", Convert: "actions.ActionFromCredentials"},
		},
	}
	if err := pkg.Check(def); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestCheck_ExplicitConversionFunction(t *testing.T) {
	pkg := writePackage(t, sealedUnion)

	def := definition.Definition{
		Name:    "ActionVec",
		Element: "Action",
		Variants: []definition.Variant{
			{Name: "Credentials", Convert: "ActionFromCredentials"},
		},
	}
	if err := pkg.Check(def); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestCheck_MissingElement(t *testing.T) {
	pkg := writePackage(t, sealedUnion)

	err := pkg.Check(definition.Definition{Name: "EventVec", Element: "Event"})
	if err == nil || !strings.Contains(err.Error(), `element type "Event" not declared`) {
		t.Fatalf("expected missing-element error, got %v", err)
	}
}

func TestCheck_VariantWithoutMarker(t *testing.T) {
	pkg := writePackage(t, sealedUnion)

	def := definition.Definition{
		Name:     "ActionVec",
		Element:  "Action",
		Variants: []definition.Variant{{Name: "Credentials"}},
	}
	err := pkg.Check(def)
	if err == nil || !strings.Contains(err.Error(), "does not implement Action.isAction") {
		t.Fatalf("expected marker error, got %v", err)
	}
}

func TestCheck_NonInterfaceElementNeedsConversion(t *testing.T) {
	pkg := writePackage(t, `package events

type Event struct {
	Kind    string
	Payload any
}

type PageView struct {
	URL string
}

func (p PageView) ToEvent() Event {
	return Event{Kind: "page_view", Payload: p}
}

type Click struct {
	X, Y int
}
`)

	ok := definition.Definition{
		Name:     "EventVec",
		Element:  "Event",
		Variants: []definition.Variant{{Name: "PageView"}},
	}
	if err := pkg.Check(ok); err != nil {
		t.Fatalf("check: %v", err)
	}

	missing := definition.Definition{
		Name:     "EventVec",
		Element:  "Event",
		Variants: []definition.Variant{{Name: "Click"}},
	}
	err := pkg.Check(missing)
	if err == nil || !strings.Contains(err.Error(), "no conversion from variant") {
		t.Fatalf("expected conversion error, got %v", err)
	}
}
