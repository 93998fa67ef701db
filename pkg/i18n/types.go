package i18n

import "net/http"

// LangExtractor picks a language for a request. It returns "" when it has no opinion.
type LangExtractor func(r *http.Request) string
