package gosrc

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle for consumers that want
// to extend the built-in wrapper rendering.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
