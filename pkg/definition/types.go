package definition

import "strings"

// Derive names a behavior annotation attached to a generated wrapper on top
// of the base contract (equality, formatting, serialization).
type Derive string

const (
	DeriveJSON     Derive = "json"
	DeriveStringer Derive = "stringer"
	DeriveEqual    Derive = "equal"
)

// KnownDerives lists the derives the built-in emitters can satisfy.
func KnownDerives() []Derive {
	return []Derive{DeriveJSON, DeriveStringer, DeriveEqual}
}

// Variant declares a variant-source type of the element union. A value of the
// variant type can be pushed directly and promoted into a one-element wrapper.
type Variant struct {
	// Name is the Go type name of the variant source. A package-qualified
	// name (ext.Event) needs Import set for code emission.
	Name string
	// Import is the import path of the package a qualified Name refers to.
	Import string
	// Convert optionally names a conversion function applied before
	// insertion. Empty means the variant satisfies the element type directly
	// (the sealed-interface convention).
	Convert string
	// Doc carries an optional description into generated doc comments.
	Doc string
}

// Definition describes one wrapper type to generate: a named, distinctly
// typed alias over "ordered sequence of Element" plus its convenience
// operations and conversions.
type Definition struct {
	// Name is the wrapper type name to generate.
	Name string
	// Element is the element type the wrapper collects. A package-qualified
	// name (ext.Event) needs ElementImport set for code emission.
	Element string
	// ElementImport is the import path of the package a qualified Element
	// refers to.
	ElementImport string
	// Package overrides the target package name for this wrapper.
	Package string
	// Doc describes the wrapper; surfaces in doc comments and contract sheets.
	Doc string
	// Constraint is an optional constraint clause carried through verbatim
	// into the generated type's documentation.
	Constraint string
	// Variants lists the variant-source types that get typed push helpers
	// and single-value promotion constructors.
	Variants []Variant
	// Derives lists behavior annotations to attach to the generated type.
	Derives []Derive
	// ExplicitEmpty controls whether the Empty factory is emitted. The zero
	// value of the generated type is always a valid empty wrapper.
	ExplicitEmpty bool
}

// HasDerive reports whether the definition requests the given derive.
func (d Definition) HasDerive(derive Derive) bool {
	for _, candidate := range d.Derives {
		if candidate == derive {
			return true
		}
	}
	return false
}

// Variant looks up a declared variant by type name.
func (d Definition) Variant(name string) (Variant, bool) {
	for _, variant := range d.Variants {
		if variant.Name == name {
			return variant, true
		}
	}
	return Variant{}, false
}

// PackageOr returns the definition's package or the supplied fallback.
func (d Definition) PackageOr(fallback string) string {
	if pkg := strings.TrimSpace(d.Package); pkg != "" {
		return pkg
	}
	return fallback
}
