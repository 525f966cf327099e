package vecgen

import (
	internalLoader "github.com/goliatone/go-vecgen/internal/loader"
	"github.com/goliatone/go-vecgen/pkg/definition"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...definition.LoaderOption) definition.Loader {
	cfg := definition.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
