// Package i18n provides key-based translations loaded from YAML files.
//
//	//go:embed locales/*.yaml
//	var locales embed.FS
//
//	tr, err := i18n.NewTranslator(ctx,
//		i18n.NewFSAdapter(i18n.NewYAMLParser(), locales, "locales"),
//		i18n.WithDefaultLanguage("en"),
//	)
//
//	r.Use(i18n.Middleware(i18n.DefaultLangExtractor(
//		i18n.WithSupportedLanguages(tr.SupportedLanguages()...),
//	)))
//
//	title := tr.Tc(r.Context(), "setupSubscription")
//
// Keys may be nested in YAML and addressed with dots ("errors.notFound").
// Values may contain %{name} placeholders filled from key/value arguments.
package i18n
