package i18n

import (
	"context"
	"embed"
	"log/slog"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	bundle        *i18n.Bundle
	defaultLocale = "pt-BR"
	once          sync.Once
)

type ctxKey struct{}

// Init loads all locale files and sets the default locale. Calling it again
// only changes the default locale.
func Init(defLocale string) {
	if defLocale != "" {
		defaultLocale = defLocale
	}
	once.Do(load)
}

func load() {
	bundle = i18n.NewBundle(language.BrazilianPortuguese)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		panic("i18n: read locales dir: " + err.Error())
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			panic("i18n: read " + e.Name() + ": " + err.Error())
		}
		bundle.MustParseMessageFileBytes(data, e.Name())
	}
	slog.Debug("i18n locales loaded", "files", len(entries), "default", defaultLocale)
}

// WithLocale returns a new context carrying the given locale (e.g. "pt-BR", "en").
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext extracts the locale from the context, falling back to
// the configured default.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return defaultLocale
}

// MatchAcceptLanguage picks the best supported locale for an
// Accept-Language header value. It returns "" when nothing matches.
func MatchAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	once.Do(load)
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	supported := bundle.LanguageTags()
	matcher := language.NewMatcher(supported)
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return supported[idx].String()
}

// T translates a message ID using the locale from the context.
// Optional templateData provides values for template placeholders.
func T(ctx context.Context, messageID string, templateData ...map[string]any) string {
	once.Do(load)
	l := i18n.NewLocalizer(bundle, LocaleFromContext(ctx), defaultLocale)

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(templateData) > 0 && templateData[0] != nil {
		cfg.TemplateData = templateData[0]
	}

	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	return msg
}
