package ocl

import (
	"context"
	"embed"

	"github.com/dmitrymomot/ocladmin/pkg/i18n"
)

//go:embed locales/*.yaml
var Locales embed.FS

// NewTranslator loads the built-in module translations.
func NewTranslator(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), Locales, "locales"), opts...)
}
