// Package gosource statically checks wrapper definitions against the Go
// package that declares the element and variant types. A failed check aborts
// generation, so convertibility mistakes surface before any code is written.
package gosource

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-vecgen/pkg/definition"
)

// Package is a syntactic index of one Go package: declared types, method
// names per receiver type, and top-level function names.
type Package struct {
	name    string
	types   map[string]*ast.TypeSpec
	methods map[string]map[string]struct{}
	funcs   map[string]struct{}
}

// InspectDir parses every non-test Go file in dir and indexes its
// declarations.
func InspectDir(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("gosource: read dir: %w", err)
	}

	pkg := &Package{
		types:   make(map[string]*ast.TypeSpec),
		methods: make(map[string]map[string]struct{}),
		funcs:   make(map[string]struct{}),
	}

	fset := token.NewFileSet()
	parsed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("gosource: parse %s: %w", name, err)
		}
		pkg.indexFile(file)
		parsed++
	}

	if parsed == 0 {
		return nil, fmt.Errorf("gosource: no Go files in %s", dir)
	}
	return pkg, nil
}

func (p *Package) indexFile(file *ast.File) {
	if p.name == "" && file.Name != nil {
		p.name = file.Name.Name
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name == nil {
					continue
				}
				p.types[ts.Name.Name] = ts
			}
		case *ast.FuncDecl:
			if d.Name == nil {
				continue
			}
			if d.Recv == nil || len(d.Recv.List) == 0 {
				p.funcs[d.Name.Name] = struct{}{}
				continue
			}
			recv := receiverTypeName(d.Recv.List[0].Type)
			if recv == "" {
				continue
			}
			if p.methods[recv] == nil {
				p.methods[recv] = make(map[string]struct{})
			}
			p.methods[recv][d.Name.Name] = struct{}{}
		}
	}
}

// Name reports the package name seen in the parsed files.
func (p *Package) Name() string {
	return p.name
}

// HasType reports whether the package declares a type with the given name.
func (p *Package) HasType(name string) bool {
	_, ok := p.types[name]
	return ok
}

// Check verifies that the element type exists and that every declared
// variant is convertible into it: via the sealed-interface marker method,
// via an explicit conversion, or via a To<Element> method / <Element>From<Variant>
// function.
func (p *Package) Check(def definition.Definition) error {
	element := localName(def.Element)
	spec, ok := p.types[element]
	if !ok {
		return fmt.Errorf("gosource: wrapper %q: element type %q not declared in package %s", def.Name, element, p.name)
	}

	marker := p.markerMethod(spec)
	for _, variant := range def.Variants {
		if err := p.checkVariant(def, element, marker, variant); err != nil {
			return err
		}
	}
	return nil
}

func (p *Package) checkVariant(def definition.Definition, element, marker string, variant definition.Variant) error {
	vname := localName(variant.Name)
	if !p.HasType(vname) {
		return fmt.Errorf("gosource: wrapper %q: variant type %q not declared in package %s", def.Name, vname, p.name)
	}

	if convert := localName(variant.Convert); convert != "" {
		if _, ok := p.funcs[convert]; !ok {
			return fmt.Errorf("gosource: wrapper %q: conversion function %q for variant %q not declared", def.Name, convert, vname)
		}
		return nil
	}

	if marker != "" {
		if p.hasMethod(vname, marker) {
			return nil
		}
		return fmt.Errorf("gosource: wrapper %q: variant %q does not implement %s.%s", def.Name, vname, element, marker)
	}

	if p.hasMethod(vname, "To"+element) {
		return nil
	}
	if _, ok := p.funcs[element+"From"+vname]; ok {
		return nil
	}
	return fmt.Errorf("gosource: wrapper %q: no conversion from variant %q into %q (want To%s method or %sFrom%s function)",
		def.Name, vname, element, element, element, vname)
}

// markerMethod returns the unexported zero-parameter method of a sealed
// element interface, or "" when the element is not an interface or declares
// no marker.
func (p *Package) markerMethod(spec *ast.TypeSpec) string {
	iface, ok := spec.Type.(*ast.InterfaceType)
	if !ok || iface.Methods == nil {
		return ""
	}
	for _, field := range iface.Methods.List {
		if len(field.Names) == 0 {
			continue
		}
		name := field.Names[0].Name
		if ast.IsExported(name) {
			continue
		}
		fn, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		if fn.Params == nil || len(fn.Params.List) == 0 {
			return name
		}
	}
	return ""
}

func (p *Package) hasMethod(typeName, method string) bool {
	methods, ok := p.methods[typeName]
	if !ok {
		return false
	}
	_, ok = methods[method]
	return ok
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	default:
		return ""
	}
}

// localName strips a package qualifier: "actions.Action" checks as "Action"
// inside the inspected package.
func localName(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
