// Package formbind binds native UI widgets to typed, validated values.
// The root package offers shortcuts over the pkg/ packages for the common
// flow: read defaults from the environment, pick a theme palette and turn an
// OpenAPI schema into a form group.
package formbind

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbind/pkg/builders"
	"github.com/goliatone/go-formbind/pkg/config"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/schemafield"
	"github.com/goliatone/go-formbind/pkg/theming"
)

// Settings aliases builders.Settings.
type Settings = builders.Settings

// Group aliases form.Group.
type Group = form.Group

// Palette aliases theming.Palette.
type Palette = theming.Palette

// DefaultSettings returns the built-in builder defaults.
func DefaultSettings() Settings {
	return builders.DefaultSettings()
}

// SettingsFromEnv reads FORMBIND_* variables into builder settings.
func SettingsFromEnv() (Settings, error) {
	defaults, err := config.Load()
	if err != nil {
		return Settings{}, err
	}
	return defaults.Settings(nil)
}

// WithTheme resolves name/variant through selector and returns a builder
// option applying the palette.
func WithTheme(selector theme.ThemeSelector, name, variant string, opts ...theme.QueryOption) (builders.Option, error) {
	palette, err := theming.Resolve(selector, name, variant, opts...)
	if err != nil {
		return nil, err
	}
	return builders.WithPalette(palette), nil
}

// NewForm binds the properties of schema into a new group using widgets
// from factory. A nil factory produces headless widgets.
func NewForm(schema *openapi3.Schema, factory schemafield.WidgetFactory, opts ...schemafield.Option) (*Group, error) {
	return schemafield.New(factory, opts...).Build(schema)
}

// LoadForm loads a schema from path (see schemafield.Load) and calls
// NewForm.
func LoadForm(ctx context.Context, path, name string, factory schemafield.WidgetFactory, opts ...schemafield.Option) (*Group, error) {
	schema, err := schemafield.LoadFile(ctx, path, name)
	if err != nil {
		return nil, err
	}
	return NewForm(schema, factory, opts...)
}
