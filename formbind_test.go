package formbind_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind"
	"github.com/goliatone/go-formbind/pkg/native/headless"
	"github.com/goliatone/go-formbind/pkg/schemafield"
)

type stubThemeSelector struct {
	selection *theme.Selection
}

func (s stubThemeSelector) Select(string, string, ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, nil
}

const signupSchema = `{
  "type": "object",
  "required": ["email"],
  "properties": {
    "email": {"type": "string", "format": "email", "x-formbind-class-token": "input.classes"},
    "newsletter": {"type": "boolean", "default": true}
  }
}`

func TestLoadFormWithTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signup.json")
	if err := os.WriteFile(path, []byte(signupSchema), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	themed, err := formbind.WithTheme(stubThemeSelector{selection: &theme.Selection{
		Theme: "acme",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"input.classes": "input input-lg"},
		},
	}}, "acme", "")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}

	widgets := schemafield.NewHeadless()
	group, err := formbind.LoadForm(context.Background(), path, "", widgets,
		schemafield.WithBuilderOptions(themed),
		schemafield.WithFormatValidation(),
	)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}

	raw, _ := widgets.Widget("email")
	email := raw.(*headless.TextField)
	if diff := cmp.Diff([]string{"input", "input-lg"}, email.ClassNames()); diff != "" {
		t.Fatalf("class names mismatch (-want +got):\n%s", diff)
	}

	email.Input("not-an-email")
	if group.Validate() {
		t.Fatalf("expected format validation to reject the address")
	}
	email.Input("dev@example.com")
	if !group.Validate() {
		t.Fatalf("expected valid form, got %v", group.Errors())
	}

	newsletter := true
	address := "dev@example.com"
	want := map[string]any{"email": &address, "newsletter": newsletter}
	if diff := cmp.Diff(want, group.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultSettings(t *testing.T) {
	settings := formbind.DefaultSettings()
	if !settings.EmptyPolicy.EmptyAsNil || settings.Logger == nil {
		t.Fatalf("unexpected defaults %+v", settings)
	}
}
