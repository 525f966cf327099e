package openapi

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-vecgen/pkg/definition"
)

const actionsDocument = `{
  "openapi": "3.0.3",
  "info": {"title": "actions", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Action": {
        "description": "a user action",
        "oneOf": [
          {"$ref": "#/components/schemas/SignUpAction"},
          {"$ref": "#/components/schemas/SendMessageAction"}
        ]
      },
      "SignUpAction": {
        "type": "object",
        "properties": {
          "username": {"type": "string"},
          "password": {"type": "string"}
        }
      },
      "SendMessageAction": {
        "type": "object",
        "properties": {
          "from": {"type": "string"},
          "to": {"type": "string"},
          "text": {"type": "string"}
        }
      }
    }
  }
}`

func document(t *testing.T, raw string) definition.Document {
	t.Helper()
	return definition.MustNewDocument(definition.SourceFromFS("schema.json"), []byte(raw))
}

func TestParse_DerivesWrapperFromUnion(t *testing.T) {
	defs, err := Parse(context.Background(), document(t, actionsDocument), Options{Package: "actions"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []definition.Definition{
		{
			Name:    "ActionVec",
			Element: "Action",
			Package: "actions",
			Doc:     "a user action",
			Variants: []definition.Variant{
				{Name: "SignUpAction"},
				{Name: "SendMessageAction"},
			},
			ExplicitEmpty: true,
		},
	}
	if diff := cmp.Diff(want, defs); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_WrapperNameExtension(t *testing.T) {
	doc := strings.Replace(actionsDocument,
		`"description": "a user action",`,
		`"description": "a user action", "x-wrapper-name": "ActionList",`, 1)

	defs, err := Parse(context.Background(), document(t, doc), Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if defs[0].Name != "ActionList" {
		t.Fatalf("wrapper name: %q", defs[0].Name)
	}
}

func TestParse_RejectsInlineAlternatives(t *testing.T) {
	doc := `{
  "openapi": "3.0.3",
  "info": {"title": "t", "version": "1"},
  "paths": {},
  "components": {
    "schemas": {
      "Action": {
        "oneOf": [
          {"type": "object"}
        ]
      }
    }
  }
}`

	_, err := Parse(context.Background(), document(t, doc), Options{})
	if err == nil || !strings.Contains(err.Error(), "not a named $ref") {
		t.Fatalf("expected inline-alternative error, got %v", err)
	}

	// Partial mode skips the schema instead, leaving nothing to extract.
	_, err = Parse(context.Background(), document(t, doc), Options{AllowPartialDocuments: true})
	if err == nil || !strings.Contains(err.Error(), "no oneOf unions") {
		t.Fatalf("expected empty-result error, got %v", err)
	}
}

func TestParse_NoUnions(t *testing.T) {
	doc := `{
  "openapi": "3.0.3",
  "info": {"title": "t", "version": "1"},
  "paths": {},
  "components": {
    "schemas": {
      "Plain": {"type": "object"}
    }
  }
}`
	_, err := Parse(context.Background(), document(t, doc), Options{})
	if err == nil || !strings.Contains(err.Error(), "no oneOf unions") {
		t.Fatalf("expected no-unions error, got %v", err)
	}
}

func TestDetect(t *testing.T) {
	if !Detect([]byte(actionsDocument)) {
		t.Fatalf("openapi json not detected")
	}
	if !Detect([]byte("openapi: 3.0.3\ninfo: {}\n")) {
		t.Fatalf("openapi yaml not detected")
	}
	if Detect([]byte("wrappers: []\n")) {
		t.Fatalf("manifest misdetected as openapi")
	}
}
