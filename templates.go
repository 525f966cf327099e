package vecgen

import (
	"io/fs"

	"github.com/goliatone/go-vecgen/pkg/emitters/gosrc"
)

// EmbeddedTemplates exposes the built-in code emitter templates so callers
// can reuse or extend them without importing the emitter package directly.
func EmbeddedTemplates() fs.FS {
	return gosrc.TemplatesFS()
}
