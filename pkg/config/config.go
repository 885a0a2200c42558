// Package config reads binding defaults from the environment.
//
//	FORMBIND_LOCALE              BCP 47 tag, default "en"
//	FORMBIND_DEFER_LOCALIZATION  resolve texts on first attach
//	FORMBIND_EMPTY_AS_NIL        map "" to nil in string inputs, default true
//	FORMBIND_BLANK_AS_NIL        map whitespace-only text to nil
//	FORMBIND_VALIDATE_ON_CHANGE  validate on every value change
//	FORMBIND_MESSAGES            path of a YAML message catalog
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/builders"
	"github.com/goliatone/go-formbind/pkg/convert"
	"github.com/goliatone/go-formbind/pkg/l10n"
)

var (
	// ErrParsingConfig wraps environment parsing failures.
	ErrParsingConfig = errors.New("config: parse environment")
	// ErrInvalidLocale is returned for malformed FORMBIND_LOCALE values.
	ErrInvalidLocale = errors.New("config: invalid locale")
)

// Defaults are the environment driven binding defaults.
type Defaults struct {
	Locale            string `env:"FORMBIND_LOCALE" envDefault:"en"`
	DeferLocalization bool   `env:"FORMBIND_DEFER_LOCALIZATION" envDefault:"false"`
	EmptyAsNil        bool   `env:"FORMBIND_EMPTY_AS_NIL" envDefault:"true"`
	BlankAsNil        bool   `env:"FORMBIND_BLANK_AS_NIL" envDefault:"false"`
	ValidateOnChange  bool   `env:"FORMBIND_VALIDATE_ON_CHANGE" envDefault:"false"`
	Messages          string `env:"FORMBIND_MESSAGES"`
}

// Load reads Defaults from the process environment.
func Load() (Defaults, error) {
	return parse(env.Options{})
}

// LoadFrom reads Defaults from environ instead of the process environment.
func LoadFrom(environ map[string]string) (Defaults, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Defaults, error) {
	var d Defaults
	if err := env.ParseWithOptions(&d, opts); err != nil {
		return Defaults{}, errors.Join(ErrParsingConfig, err)
	}
	return d, nil
}

// Tag parses Locale.
func (d Defaults) Tag() (language.Tag, error) {
	locale := strings.TrimSpace(d.Locale)
	if locale == "" {
		return language.English, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, locale, err)
	}
	return tag, nil
}

// Settings turns d into builder settings. The message catalog, when set, is
// loaded with the locale as fallback. A nil logger discards output.
func (d Defaults) Settings(logger *slog.Logger) (builders.Settings, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tag, err := d.Tag()
	if err != nil {
		return builders.Settings{}, err
	}

	ctxOpts := []l10n.Option{l10n.WithLocale(tag), l10n.WithLogger(logger)}
	if path := strings.TrimSpace(d.Messages); path != "" {
		catalog, err := l10n.LoadYAMLFile(path, l10n.WithFallbackLocale(tag))
		if err != nil {
			return builders.Settings{}, err
		}
		logger.Debug("config: loaded message catalog",
			slog.String("path", path),
			slog.Any("locales", catalog.Locales()),
		)
		ctxOpts = append(ctxOpts, l10n.WithResolver(catalog))
	}

	settings := builders.DefaultSettings()
	settings.Localization = l10n.NewContext(ctxOpts...)
	settings.DeferLocalization = d.DeferLocalization
	settings.EmptyPolicy = convert.EmptyPolicy{EmptyAsNil: d.EmptyAsNil, BlankAsNil: d.BlankAsNil}
	settings.ValidateOnChange = d.ValidateOnChange
	settings.Logger = logger
	return settings, nil
}
