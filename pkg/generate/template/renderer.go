// Package template declares the rendering seam emitters depend on.
package template

import "io"

// Renderer mirrors the github.com/goliatone/go-template engine contract so
// emitters can swap in that engine, the built-in pongo2 adapter, or a stub.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
}
