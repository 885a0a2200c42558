package schemafield_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/builders"
	"github.com/goliatone/go-formbind/pkg/condition"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/l10n"
	"github.com/goliatone/go-formbind/pkg/native/headless"
	"github.com/goliatone/go-formbind/pkg/schemafield"
)

const personSchema = `{
  "type": "object",
  "required": ["name", "role"],
  "properties": {
    "name": {"type": "string", "title": "Full name", "minLength": 2, "x-formbind-placeholder": "Jane Doe"},
    "age": {"type": "integer", "minimum": 0, "maximum": 130},
    "score": {"type": "number", "default": 1.5},
    "active": {"type": "boolean"},
    "born": {"type": "string", "format": "date"},
    "role": {"type": "string", "enum": ["admin", "user"]},
    "tags": {"type": "array", "items": {"type": "string", "enum": ["a", "b", "c"]}},
    "address": {
      "type": "object",
      "properties": {
        "city": {"type": "string", "description": "City name", "readOnly": true}
      }
    },
    "attachments": {"type": "array", "items": {"type": "object"}}
  }
}`

func loadSchema(t *testing.T, raw string) *openapi3.Schema {
	t.Helper()
	var schema openapi3.Schema
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	return &schema
}

func buildPerson(t *testing.T, opts ...schemafield.Option) (*form.Group, *schemafield.Headless) {
	t.Helper()
	widgets := schemafield.NewHeadless()
	group, err := schemafield.New(widgets, opts...).Build(loadSchema(t, personSchema))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return group, widgets
}

func widget[W any](t *testing.T, widgets *schemafield.Headless, path string) W {
	t.Helper()
	raw, ok := widgets.Widget(path)
	if !ok {
		t.Fatalf("no widget for %q", path)
	}
	w, ok := raw.(W)
	if !ok {
		t.Fatalf("widget for %q is %T", path, raw)
	}
	return w
}

func TestBuildBindsSupportedPropertiesInOrder(t *testing.T) {
	group, _ := buildPerson(t)

	var paths []string
	for _, f := range group.Fields() {
		paths = append(paths, f.Path())
	}
	want := []string{"active", "address.city", "age", "born", "name", "role", "score", "tags"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildConfiguresWidgets(t *testing.T) {
	_, widgets := buildPerson(t)

	name := widget[*headless.TextField](t, widgets, "name")
	if name.Label() != "Full name" || name.Placeholder() != "Jane Doe" {
		t.Fatalf("unexpected name widget label %q placeholder %q", name.Label(), name.Placeholder())
	}
	if !name.IsRequiredIndicatorVisible() {
		t.Fatalf("expected required indicator on name")
	}
	if name.ID() != "field-name" {
		t.Fatalf("unexpected id %q", name.ID())
	}

	city := widget[*headless.TextField](t, widgets, "address.city")
	if city.Label() != "city" || city.Title() != "City name" || !city.IsReadOnly() {
		t.Fatalf("unexpected city widget: label %q title %q read-only %v", city.Label(), city.Title(), city.IsReadOnly())
	}
	if city.ID() != "field-address-city" {
		t.Fatalf("unexpected nested id %q", city.ID())
	}

	role := widget[*headless.Select[string]](t, widgets, "role")
	if diff := cmp.Diff([]string{"admin", "user"}, role.Items()); diff != "" {
		t.Fatalf("role items mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAppliesDefaults(t *testing.T) {
	group, _ := buildPerson(t)

	score := 1.5
	got := group.Values()["score"]
	if diff := cmp.Diff(&score, got); diff != "" {
		t.Fatalf("default mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupValidationUsesRequiredAndSchemaRules(t *testing.T) {
	group, widgets := buildPerson(t)

	if group.Validate() {
		t.Fatalf("expected required fields to fail")
	}
	errs := group.Errors()
	if diff := cmp.Diff([]string{"Value is required"}, errs["name"]); diff != "" {
		t.Fatalf("name errors mismatch (-want +got):\n%s", diff)
	}
	if len(errs["role"]) != 1 {
		t.Fatalf("expected role to be required, got %v", errs["role"])
	}

	widget[*headless.TextField](t, widgets, "name").Input("J")
	widget[*headless.TextField](t, widgets, "age").Input("200")
	widget[*headless.Select[string]](t, widgets, "role").Choose(1)

	if group.Validate() {
		t.Fatalf("expected schema constraints to fail")
	}
	errs = group.Errors()
	if len(errs["name"]) != 1 || len(errs["age"]) != 1 {
		t.Fatalf("expected minLength and maximum failures, got %v", errs)
	}
	if _, ok := errs["role"]; ok {
		t.Fatalf("expected role to be valid, got %v", errs["role"])
	}

	widget[*headless.TextField](t, widgets, "name").Input("Jane")
	widget[*headless.TextField](t, widgets, "age").Input("42")
	if !group.Validate() {
		t.Fatalf("expected valid form, got %v", group.Errors())
	}
}

func TestSetValuesDrivesWidgets(t *testing.T) {
	group, widgets := buildPerson(t)

	err := group.SetValues(map[string]any{
		"name": "Ann",
		"age":  float64(42),
		"role": "user",
		"tags": []any{"a", "c"},
		"born": "2024-01-02",
		"address": map[string]any{
			"city": "Lisbon",
		},
	})
	if err != nil {
		t.Fatalf("set values: %v", err)
	}

	if got := widget[*headless.TextField](t, widgets, "age").Value(); got != "42" {
		t.Fatalf("unexpected age text %q", got)
	}
	role := widget[*headless.Select[string]](t, widgets, "role").Value()
	if role == nil || *role != "user" {
		t.Fatalf("unexpected role selection %v", role)
	}
	if diff := cmp.Diff([]string{"a", "c"}, widget[*headless.CheckboxGroup[string]](t, widgets, "tags").Value()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	born := widget[*headless.DatePicker](t, widgets, "born").Value()
	if born == nil || !born.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", born)
	}

	values := group.Values()
	address, ok := values["address"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested address map, got %T", values["address"])
	}
	if city, _ := address["city"].(*string); city == nil || *city != "Lisbon" {
		t.Fatalf("unexpected city %v", address["city"])
	}
	if diff := cmp.Diff([]any{"a", "c"}, values["tags"]); diff != "" {
		t.Fatalf("tag values mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelCodesResolveThroughCatalog(t *testing.T) {
	catalog := l10n.NewCatalog()
	catalog.Add(language.German, map[string]string{"person.name": "Name", "person.address.city": "Stadt"})
	ctx := l10n.NewContext(l10n.WithResolver(catalog), l10n.WithLocale(language.German))

	_, widgets := buildPerson(t,
		schemafield.WithLabelCodes("person."),
		schemafield.WithBuilderOptions(builders.WithLocalization(ctx)),
	)

	if got := widget[*headless.TextField](t, widgets, "name").Label(); got != "Name" {
		t.Fatalf("expected translated label, got %q", got)
	}
	if got := widget[*headless.TextField](t, widgets, "address.city").Label(); got != "Stadt" {
		t.Fatalf("expected translated nested label, got %q", got)
	}
	if got := widget[*headless.Checkbox](t, widgets, "active").Label(); got != "active" {
		t.Fatalf("expected fallback label, got %q", got)
	}
}

func TestBuildRejectsNonObjects(t *testing.T) {
	_, err := schemafield.New(nil).Build(openapi3.NewStringSchema())
	if !errors.Is(err, schemafield.ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
}

func TestBuildReportsDuplicatePaths(t *testing.T) {
	builder := schemafield.New(nil)
	group := form.NewGroup()
	schema := loadSchema(t, `{"type":"object","properties":{"name":{"type":"string"}}}`)

	if err := builder.BindTo(group, "", schema); err != nil {
		t.Fatalf("first bind: %v", err)
	}
	err := builder.BindTo(group, "", schema)
	if !errors.Is(err, form.ErrDuplicatePath) {
		t.Fatalf("expected duplicate path error, got %v", err)
	}
}

func TestBuildReportsInvalidDefaults(t *testing.T) {
	schema := loadSchema(t, `{"type":"object","properties":{"count":{"type":"integer","default":"many"}}}`)
	_, err := schemafield.New(nil).Build(schema)
	if err == nil || !strings.Contains(err.Error(), `default for "count"`) {
		t.Fatalf("expected default error, got %v", err)
	}
	if !errors.Is(err, form.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
}

const companySchema = `{
  "type": "object",
  "required": ["company_name"],
  "properties": {
    "company": {"type": "boolean"},
    "company_name": {"type": "string", "x-formbind-visible-if": "company == true"}
  }
}`

func TestConditionExtensionGuardsFields(t *testing.T) {
	widgets := schemafield.NewHeadless()
	group, err := schemafield.New(widgets).Build(loadSchema(t, companySchema))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	name := widget[*headless.TextField](t, widgets, "company_name")
	if group.IsActive("company_name") || name.IsEnabled() {
		t.Fatalf("expected company_name to start inactive")
	}
	if !group.Validate() {
		t.Fatalf("inactive required field must not fail, got %v", group.Errors())
	}
	if diff := cmp.Diff(map[string]any{"company": false}, group.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	widget[*headless.Checkbox](t, widgets, "company").Toggle()
	if !group.IsActive("company_name") || !name.IsEnabled() {
		t.Fatalf("expected company_name to activate")
	}
	if group.Validate() {
		t.Fatalf("expected the active required field to fail")
	}
	if got := group.ErrorsFor("company_name"); len(got) == 0 {
		t.Fatalf("expected errors for company_name")
	}
}

func TestConditionExtensionReportsSyntaxErrors(t *testing.T) {
	schema := loadSchema(t, `{"type":"object","properties":{"x":{"type":"string","x-formbind-visible-if":"a ="}}}`)
	_, err := schemafield.New(nil).Build(schema)
	if !errors.Is(err, condition.ErrSyntax) || !strings.Contains(err.Error(), `condition for "x"`) {
		t.Fatalf("expected condition syntax error, got %v", err)
	}
}
