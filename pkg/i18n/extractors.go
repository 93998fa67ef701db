package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// maxLangCodeLength caps cookie and query values (RFC 5646 recommends 35).
const maxLangCodeLength = 35

// ExtractorConfig holds configuration for the language extractor
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	SupportedLangs []string
}

// ExtractorOption configures the language extractor
type ExtractorOption func(*ExtractorConfig)

// WithCookieName sets the cookie checked for a language preference.
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter checked for a language.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithSupportedLanguages restricts results to langs, matched with
// golang.org/x/text/language so "es-MX" resolves to "es".
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

type langMatcher struct {
	supported []string
	matcher   language.Matcher
}

func newLangMatcher(supported []string) *langMatcher {
	m := &langMatcher{supported: supported}
	if len(supported) > 0 {
		tags := make([]language.Tag, len(supported))
		for i, l := range supported {
			tags[i] = language.Make(l)
		}
		m.matcher = language.NewMatcher(tags)
	}
	return m
}

// match returns the supported language best matching tags, or "".
// Without supported languages it returns the base of the first tag.
func (m *langMatcher) match(tags ...language.Tag) string {
	if len(tags) == 0 {
		return ""
	}
	if m.matcher == nil {
		base, _ := tags[0].Base()
		return base.String()
	}
	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return m.supported[idx]
}

func (m *langMatcher) matchString(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxLangCodeLength {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	return m.match(tag)
}

// DefaultLangExtractor checks, in order, a cookie ("lang"), a query parameter
// ("lang") and the Accept-Language header. The first usable value wins.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	m := newLangMatcher(cfg.SupportedLangs)

	return func(r *http.Request) string {
		if cookie, err := r.Cookie(cfg.CookieName); err == nil {
			if lang := m.matchString(cookie.Value); lang != "" {
				return lang
			}
		}

		if lang := m.matchString(r.URL.Query().Get(cfg.QueryParamName)); lang != "" {
			return lang
		}

		if header := r.Header.Get("Accept-Language"); header != "" {
			tags, _, err := language.ParseAcceptLanguage(header)
			if err == nil {
				return m.match(tags...)
			}
		}
		return ""
	}
}
