package definition

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validate checks a definition for the failures the generator treats as
// build errors: missing or malformed type names, duplicate or self-referring
// variants, and derives no emitter can satisfy.
func Validate(def Definition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return newError("", "name", "wrapper name is required")
	}
	if !isExportedIdentifier(name) {
		return newError(name, "name", "wrapper name must be an exported Go identifier")
	}

	element := strings.TrimSpace(def.Element)
	if element == "" {
		return newError(name, "element", "element type is required")
	}
	if !isTypeName(element) {
		return newError(name, "element", "element type %q is not a valid type name", element)
	}
	if element == name {
		return newError(name, "element", "element type cannot be the wrapper itself")
	}

	seen := make(map[string]struct{}, len(def.Variants))
	for _, variant := range def.Variants {
		vname := strings.TrimSpace(variant.Name)
		if vname == "" {
			return newError(name, "variants", "variant name is required")
		}
		if !isTypeName(vname) {
			return newError(name, "variants", "variant %q is not a valid type name", vname)
		}
		if vname == element {
			return newError(name, "variants", "variant %q duplicates the element type", vname)
		}
		if _, dup := seen[vname]; dup {
			return newError(name, "variants", "variant %q declared twice", vname)
		}
		seen[vname] = struct{}{}

		if convert := strings.TrimSpace(variant.Convert); convert != "" && !isTypeName(convert) {
			return newError(name, "variants", "variant %q conversion %q is not a valid identifier", vname, convert)
		}
	}

	known := make(map[Derive]struct{}, len(KnownDerives()))
	for _, derive := range KnownDerives() {
		known[derive] = struct{}{}
	}
	for _, derive := range def.Derives {
		if _, ok := known[derive]; !ok {
			return newError(name, "derives", "derive %q is not supported", string(derive))
		}
	}

	return nil
}

// ValidateAll validates every definition and rejects duplicate wrapper names
// across the set.
func ValidateAll(defs []Definition) error {
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if err := Validate(def); err != nil {
			return err
		}
		if _, dup := seen[def.Name]; dup {
			return newError(def.Name, "name", "wrapper declared twice")
		}
		seen[def.Name] = struct{}{}
	}
	return nil
}

func isExportedIdentifier(name string) bool {
	if !token.IsIdentifier(name) {
		return false
	}
	first, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(first)
}

// isTypeName accepts plain identifiers and single-level qualified names such
// as "actions.Action".
func isTypeName(name string) bool {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return false
	}
	for _, part := range parts {
		if !token.IsIdentifier(part) {
			return false
		}
	}
	return true
}
