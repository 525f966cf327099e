package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-vecgen/internal/gosource"
	"github.com/goliatone/go-vecgen/internal/manifest"
	"github.com/goliatone/go-vecgen/pkg/definition"
)

type violation struct {
	file    string
	wrapper string
	message string
}

func main() {
	goSource := flag.String("gosrc-dir", "", "Go package to check element and variant types against")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [manifests...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint wrapper manifests for invalid declarations.\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"vecgen.yaml"}
	}

	var pkg *gosource.Package
	if *goSource != "" {
		inspected, err := gosource.InspectDir(*goSource)
		if err != nil {
			fmt.Fprintf(os.Stderr, "inspect %s: %v\n", *goSource, err)
			os.Exit(1)
		}
		pkg = inspected
	}

	violations, err := lintPaths(paths, pkg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].wrapper == violations[j].wrapper {
					return violations[i].message < violations[j].message
				}
				return violations[i].wrapper < violations[j].wrapper
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.wrapper, v.message)
		}
		os.Exit(1)
	}
}

// lintPaths lints every manifest and rejects wrapper names declared in more
// than one file, matching how the loader treats a multi-manifest run.
func lintPaths(paths []string, pkg *gosource.Package) ([]violation, error) {
	seen := make(map[string]string)

	var violations []violation
	for _, path := range paths {
		linted, defs, err := lintFile(path, pkg)
		if err != nil {
			return nil, fmt.Errorf("lint %s: %w", path, err)
		}
		violations = append(violations, linted...)

		for _, def := range defs {
			if first, dup := seen[def.Name]; dup {
				violations = append(violations, violation{
					file:    path,
					wrapper: def.Name,
					message: fmt.Sprintf("wrapper already declared in %s", first),
				})
				continue
			}
			seen[def.Name] = path
		}
	}
	return violations, nil
}

func lintFile(path string, pkg *gosource.Package) ([]violation, []definition.Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}
	if !manifest.Detect(raw) {
		return []violation{{file: path, wrapper: "-", message: "not a wrapper manifest"}}, nil, nil
	}

	doc, err := definition.NewDocument(definition.SourceFromFile(path), raw)
	if err != nil {
		return nil, nil, fmt.Errorf("construct document: %w", err)
	}

	defs, err := manifest.Parse(doc)
	if err != nil {
		return []violation{{file: path, wrapper: "-", message: err.Error()}}, nil, nil
	}

	var result []violation
	for _, def := range defs {
		if err := definition.Validate(def); err != nil {
			result = append(result, violation{file: path, wrapper: def.Name, message: err.Error()})
			continue
		}
		if pkg != nil {
			if err := pkg.Check(def); err != nil {
				result = append(result, violation{file: path, wrapper: def.Name, message: err.Error()})
			}
		}
	}
	return result, defs, nil
}
