package theming

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
)

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, name+"/"+variant)
	return s.selection, s.err
}

func testManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":         "#123456",
			"input.padding": "4px",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
			},
		},
	}
}

func TestResolve_MergesVariantTokens(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: testManifest(),
	}}

	palette, err := Resolve(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"acme/dark"}, selector.calls); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{"brand": "#654321", "input.padding": "4px"}
	if diff := cmp.Diff(want, palette.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if got := palette.CSSVars()["--input-padding"]; got != "4px" {
		t.Fatalf("expected css var for dotted token, got %q", got)
	}
	if got := palette.Var("input.padding"); got != "var(--input-padding)" {
		t.Fatalf("unexpected var reference %q", got)
	}

	cfg := palette.RendererConfig()
	if cfg.Theme != "acme" || cfg.Variant != "dark" || cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("unexpected renderer config %+v", cfg)
	}
}

func TestResolve_Errors(t *testing.T) {
	if _, err := Resolve(nil, "acme", ""); !errors.Is(err, ErrSelectorRequired) {
		t.Fatalf("expected ErrSelectorRequired, got %v", err)
	}
	boom := errors.New("unknown theme")
	if _, err := Resolve(&stubThemeSelector{err: boom}, "nope", ""); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped selector error, got %v", err)
	}
}

func TestFromSelection_UnknownVariantKeepsBaseTokens(t *testing.T) {
	palette := FromSelection(&theme.Selection{Variant: "light", Manifest: testManifest()})
	if palette.Theme != "acme" {
		t.Fatalf("expected theme name from manifest, got %q", palette.Theme)
	}
	if value, ok := palette.Token("brand"); !ok || value != "#123456" {
		t.Fatalf("expected base brand token, got %q", value)
	}
	if _, ok := palette.Token("missing"); ok {
		t.Fatalf("expected missing token")
	}
	if diff := cmp.Diff([]string{"brand", "input.padding"}, palette.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if !FromSelection(nil).IsZero() {
		t.Fatalf("nil selection should produce an empty palette")
	}
}
