// Package theming resolves style tokens for widgets from a go-theme
// selection. Builders only consume the resulting Palette; choosing and
// loading themes stays with the application.
package theming

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ErrSelectorRequired is returned when Resolve has no selector to query.
var ErrSelectorRequired = errors.New("theming: theme selector is required")

// Palette is the flattened token set of one theme variant.
type Palette struct {
	Theme   string
	Variant string
	Tokens  map[string]string
}

// Resolve selects name/variant through selector and returns its palette.
func Resolve(selector theme.ThemeSelector, name, variant string, opts ...theme.QueryOption) (Palette, error) {
	if selector == nil {
		return Palette{}, ErrSelectorRequired
	}
	selection, err := selector.Select(name, variant, opts...)
	if err != nil {
		return Palette{}, fmt.Errorf("theming: select %q/%q: %w", name, variant, err)
	}
	return FromSelection(selection), nil
}

// FromSelection flattens the manifest tokens of selection, with the
// selected variant's tokens taking precedence.
func FromSelection(selection *theme.Selection) Palette {
	if selection == nil {
		return Palette{}
	}
	palette := Palette{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  map[string]string{},
	}
	manifest := selection.Manifest
	if manifest == nil {
		return palette
	}
	if palette.Theme == "" {
		palette.Theme = manifest.Name
	}
	maps.Copy(palette.Tokens, manifest.Tokens)
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		maps.Copy(palette.Tokens, variant.Tokens)
	}
	return palette
}

// Token returns the trimmed value of key.
func (p Palette) Token(key string) (string, bool) {
	value, ok := p.Tokens[strings.TrimSpace(key)]
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// IsZero reports whether the palette has no tokens.
func (p Palette) IsZero() bool { return len(p.Tokens) == 0 }

// CSSVars maps every token to a custom property name ("brand" becomes
// "--brand"; dots become dashes).
func (p Palette) CSSVars() map[string]string {
	if len(p.Tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(p.Tokens))
	for key, value := range p.Tokens {
		out[cssVarName(key)] = value
	}
	return out
}

// Var returns a var() reference to the custom property of key.
func (p Palette) Var(key string) string {
	return "var(" + cssVarName(key) + ")"
}

// Keys returns the token keys in sorted order.
func (p Palette) Keys() []string {
	keys := make([]string, 0, len(p.Tokens))
	for key := range p.Tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// RendererConfig exposes the palette in the shape go-theme renderers use.
func (p Palette) RendererConfig() *theme.RendererConfig {
	return &theme.RendererConfig{
		Theme:   p.Theme,
		Variant: p.Variant,
		Tokens:  maps.Clone(p.Tokens),
		CSSVars: p.CSSVars(),
	}
}

func cssVarName(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "--")
	return "--" + strings.ReplaceAll(key, ".", "-")
}
