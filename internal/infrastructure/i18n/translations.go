package i18n

import (
	"embed"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"runclub/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ensure Translator implements the output.T port.
var _ output.T = (*Translator)(nil)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	supported       []language.Tag
	matcher         language.Matcher
	defaultLanguage language.Tag
	logger          *slog.Logger
}

// NewTranslator builds a Translator backed by go-i18n using the given default
// locale (e.g. "en"). Translations come from the embedded active.*.toml files.
func NewTranslator(defaultLocale string, logger *slog.Logger) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.fr.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Error("i18n: failed to load message file", "file", file, "error", err)
		}
	}

	// The default language goes first so the matcher falls back to it.
	tags := []language.Tag{tag}
	for _, t := range bundle.LanguageTags() {
		if t != tag {
			tags = append(tags, t)
		}
	}

	return &Translator{
		bundle:          bundle,
		supported:       tags,
		matcher:         language.NewMatcher(tags),
		defaultLanguage: tag,
		logger:          logger,
	}
}

// Default returns the default locale.
func (t *Translator) Default() string {
	return t.defaultLanguage.String()
}

// Match picks the supported locale closest to an Accept-Language header.
func (t *Translator) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return t.Default()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.Default()
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.Default()
	}
	base, _ := t.supported[idx].Base()
	return base.String()
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Warn("i18n: localize failed", "key", key, "locales", languages, "error", err)
		return key
	}
	return msg
}
