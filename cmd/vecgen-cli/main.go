package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-vecgen/pkg/definition"
	"github.com/goliatone/go-vecgen/pkg/orchestrator"
)

func main() {
	source := flag.String("source", "vecgen.yaml", "wrapper manifest or OpenAPI document path or URL")
	wrapper := flag.String("wrapper", "", "generate only the named wrapper")
	emitter := flag.String("emitter", "gosrc", "emitter to use (gosrc, contract)")
	output := flag.String("output", "", "output directory (stdout if empty)")
	pkgName := flag.String("pkg", "", "package name for definitions that omit one")
	header := flag.String("header", "", "extra comment block for generated code")
	goSource := flag.String("gosrc-dir", "", "existing Go package to check definitions against")
	themeName := flag.String("theme", "", "theme for presentation emitters")
	themeVariant := flag.String("variant", "", "theme variant")
	timeout := flag.Duration("timeout", 30*time.Second, "generation timeout (also applies to remote sources)")
	initManifest := flag.Bool("init", false, "interactively scaffold a starter manifest and exit")
	flag.Parse()

	if *initManifest {
		if err := scaffoldManifest(*source); err != nil {
			log.Fatalf("Failed to scaffold manifest: %v", err)
		}
		fmt.Printf("Manifest written to %s\n", *source)
		return
	}

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	options := []orchestrator.Option{
		orchestrator.WithLoaderOptions(definition.WithHTTPFallback(*timeout)),
	}
	if *goSource != "" {
		options = append(options, orchestrator.WithGoSourceDir(*goSource))
	}

	gen := orchestrator.New(options...)

	files, err := gen.Generate(ctx, orchestrator.Request{
		Source:       src,
		Wrapper:      *wrapper,
		Emitter:      *emitter,
		Package:      *pkgName,
		Header:       *header,
		ThemeName:    *themeName,
		ThemeVariant: *themeVariant,
	})
	if err != nil {
		log.Fatalf("Failed to generate wrappers: %v", err)
	}

	if *output == "" {
		for _, file := range files {
			fmt.Printf("// %s\n%s\n", file.Path, file.Contents)
		}
		return
	}

	if err := os.MkdirAll(*output, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	for _, file := range files {
		target := filepath.Join(*output, file.Path)
		if err := os.WriteFile(target, file.Contents, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Wrapper written to %s\n", target)
	}
}

func parseSource(raw string) definition.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return definition.SourceFromURL(path)
	}
	return definition.SourceFromFile(path)
}

// scaffoldManifest walks the user through a minimal wrapper declaration and
// writes it as a starter manifest.
func scaffoldManifest(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	var pkgName string
	if err := survey.AskOne(&survey.Input{
		Message: "Target package name:",
		Default: "main",
	}, &pkgName, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var element string
	if err := survey.AskOne(&survey.Input{
		Message: "Element type (the union interface):",
		Default: "Action",
	}, &element, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var wrapperName string
	if err := survey.AskOne(&survey.Input{
		Message: "Wrapper type name:",
		Default: element + "Vec",
	}, &wrapperName, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var variantsRaw string
	if err := survey.AskOne(&survey.Input{
		Message: "Variant types (comma separated, empty for none):",
	}, &variantsRaw); err != nil {
		return err
	}

	var derives []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Derives:",
		Options: []string{"json", "stringer", "equal"},
	}, &derives); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "package: %s\nwrappers:\n", pkgName)
	fmt.Fprintf(&b, "  - name: %s\n    element: %s\n", wrapperName, element)
	if variants := splitList(variantsRaw); len(variants) > 0 {
		b.WriteString("    variants:\n")
		for _, variant := range variants {
			fmt.Fprintf(&b, "      - %s\n", variant)
		}
	}
	if len(derives) > 0 {
		fmt.Fprintf(&b, "    derives: [%s]\n", strings.Join(derives, ", "))
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
