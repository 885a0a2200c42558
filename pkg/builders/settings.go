// Package builders assembles inputs from native widgets. Every builder is
// composed from the capability configurators of package configurator, so
// the fluent methods it exposes return the concrete builder, and ends with
// Build (a plain input.Input) or BuildValidatable (a validation.Input).
package builders

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-formbind/pkg/convert"
	"github.com/goliatone/go-formbind/pkg/l10n"
	"github.com/goliatone/go-formbind/pkg/theming"
)

// Settings carries the defaults builders start from.
type Settings struct {
	// Localization resolves label and message codes. nil uses l10n.Default.
	Localization *l10n.Context
	// DeferLocalization postpones text resolution to the first attach.
	DeferLocalization bool
	// EmptyPolicy decides which texts string builders map to nil.
	EmptyPolicy convert.EmptyPolicy
	// ValidateOnChange validates on every value change instead of on demand.
	ValidateOnChange bool
	// Palette provides theme tokens for ThemeStyle and friends.
	Palette theming.Palette
	Logger  *slog.Logger
}

// DefaultSettings maps empty text to nil and validates on demand.
func DefaultSettings() Settings {
	return Settings{
		EmptyPolicy: convert.EmptyPolicy{EmptyAsNil: true},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option adjusts the settings of a single builder.
type Option func(*Settings)

// WithSettings replaces the settings wholesale.
func WithSettings(settings Settings) Option {
	return func(s *Settings) { *s = settings }
}

// WithLocalization sets the localization context.
func WithLocalization(ctx *l10n.Context) Option {
	return func(s *Settings) { s.Localization = ctx }
}

// WithPalette sets the theme palette.
func WithPalette(palette theming.Palette) Option {
	return func(s *Settings) { s.Palette = palette }
}

// WithLogger sets the logger handed to inputs and validators.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Settings) { s.Logger = logger }
}

func resolveSettings(opts []Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}
