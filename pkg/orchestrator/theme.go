package orchestrator

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// rendererConfig flattens a theme selection into the renderer-facing config:
// variant values overlay the base manifest, tokens double as CSS custom
// properties, and asset keys resolve to prefixed URLs.
func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	var overlay theme.Variant
	if selection.Variant != "" {
		overlay = manifest.Variants[selection.Variant]
	}

	cfg.Tokens = mergeStringMaps(manifest.Tokens, overlay.Tokens)
	cfg.Partials = mergeStringMaps(manifest.Templates, overlay.Templates)

	cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
	for key, value := range cfg.Tokens {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		cfg.CSSVars[name] = value
	}

	files := mergeStringMaps(manifest.Assets.Files, overlay.Assets.Files)
	prefix := strings.TrimSuffix(manifest.Assets.Prefix, "/")
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		if prefix == "" {
			return file
		}
		return prefix + "/" + file
	}

	return cfg
}

func mergeStringMaps(base, overlay map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overlay {
		merged[key] = value
	}
	return merged
}
