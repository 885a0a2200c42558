package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/convert"
	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/l10n"
	"github.com/goliatone/go-formbind/pkg/native/headless"
	"github.com/goliatone/go-formbind/pkg/validation"
)

func failing(message string) validation.Validator[string] {
	return validation.ValidatorFunc[string](func(string) error { return errors.New(message) })
}

func passing() validation.Validator[string] {
	return validation.ValidatorFunc[string](func(string) error { return nil })
}

func newTextInput() (*headless.TextField, *validation.Input[string]) {
	field := headless.NewTextField()
	return field, validation.New(input.New[string](field))
}

func TestValidate_AggregatesFailuresInOrder(t *testing.T) {
	_, in := newTextInput()
	in.AddValidator(failing("first")).AddValidator(passing()).AddValidator(failing("third"))

	result := in.Validate()
	if result.IsValid() {
		t.Fatalf("expected invalid result")
	}
	if diff := cmp.Diff([]string{"first", "third"}, result.Messages()); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}
	if result.Err() == nil {
		t.Fatalf("expected joined error")
	}
}

func TestValidate_RequiredDefaultAndCustomMessage(t *testing.T) {
	_, in := newTextInput()
	in.SetRequired(true)

	result := in.Validate()
	if diff := cmp.Diff([]string{"Value is required"}, result.Messages()); diff != "" {
		t.Fatalf("default message mismatch (-want +got):\n%s", diff)
	}
	if result.Failures[0].Code != validation.CodeRequired {
		t.Fatalf("expected required code, got %q", result.Failures[0].Code)
	}

	var cfg validation.Configurator[string]
	cfg.RequiredMessage(l10n.Text("Name please"))
	custom := cfg.Configure(input.New[string](headless.NewTextField()))
	if diff := cmp.Diff([]string{"Name please"}, custom.Validate().Messages()); diff != "" {
		t.Fatalf("custom message mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RequiredRunsFirst(t *testing.T) {
	_, in := newTextInput()
	in.AddValidator(failing("custom"))
	in.SetRequired(true)

	got := in.Validate().Messages()
	if diff := cmp.Diff([]string{"Value is required", "custom"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RequiredMessageLocalized(t *testing.T) {
	catalog := l10n.NewCatalog()
	catalog.Add(language.German, map[string]string{validation.CodeRequired: "Wert ist erforderlich"})
	ctx := l10n.NewContext(l10n.WithResolver(catalog), l10n.WithLocale(language.German))

	in := validation.New(input.New[string](headless.NewTextField()), validation.WithContext(ctx))
	in.SetRequired(true)

	if diff := cmp.Diff([]string{"Wert ist erforderlich"}, in.Validate().Messages()); diff != "" {
		t.Fatalf("localized message mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusMachine(t *testing.T) {
	field, in := newTextInput()
	in.SetRequired(true)

	if in.Status() != validation.NotValidated {
		t.Fatalf("expected initial NotValidated, got %s", in.Status())
	}

	in.Validate()
	if in.Status() != validation.Invalid || !field.IsInvalid() {
		t.Fatalf("expected invalid status and widget state")
	}
	if field.ErrorMessage() != "Value is required" {
		t.Fatalf("unexpected widget message %q", field.ErrorMessage())
	}

	field.Input("x")
	if in.Status() != validation.NotValidated {
		t.Fatalf("expected reset to NotValidated on change, got %s", in.Status())
	}

	in.SetValidateOnValueChange(true)
	field.Input("")
	if in.Status() != validation.Invalid {
		t.Fatalf("expected immediate validation, got %s", in.Status())
	}
	field.Input("ok")
	if in.Status() != validation.Valid || field.IsInvalid() {
		t.Fatalf("expected valid status and cleared widget state")
	}
}

func TestStatusHandlerReceivesEveryRun(t *testing.T) {
	_, in := newTextInput()
	var statuses []validation.Status
	in.SetStatusHandler(func(component any, result validation.Result) {
		if _, ok := component.(*headless.TextField); !ok {
			t.Fatalf("expected the widget as component, got %T", component)
		}
		statuses = append(statuses, result.Status)
	})
	in.AddValidator(validation.MinLength(3))

	in.Validate()
	_ = in.SetValue("ab")
	in.Validate()

	want := []validation.Status{validation.Valid, validation.Invalid}
	if diff := cmp.Diff(want, statuses); diff != "" {
		t.Fatalf("statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigurator_NoSideEffectsUntilConfigure(t *testing.T) {
	var cfg validation.Configurator[string]
	handled := 0
	cfg.Required()
	cfg.WithValidator(failing("rule"))
	cfg.StatusHandler(func(any, validation.Result) { handled++ })
	cfg.ValidateOnValueChange(true)

	field := headless.NewTextField()
	base := input.New[string](field)
	if base.IsRequired() || handled != 0 {
		t.Fatalf("configuration must not touch the input before Configure")
	}

	in := cfg.Configure(base)
	if !in.IsRequired() || !field.IsRequiredIndicatorVisible() {
		t.Fatalf("expected required after Configure")
	}
	field.Input("x")
	if handled != 1 {
		t.Fatalf("expected validate-on-change to run the handler once, got %d", handled)
	}
	if diff := cmp.Diff([]string{"rule"}, in.LastResult().Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestProgrammerErrorsPanic(t *testing.T) {
	cases := map[string]func(){
		"nil validator": func() {
			_, in := newTextInput()
			in.AddValidator(nil)
		},
		"nil status handler": func() {
			var cfg validation.Configurator[string]
			cfg.StatusHandler(nil)
		},
		"nil required validator": func() {
			var cfg validation.Configurator[string]
			cfg.RequiredValidator(nil)
		},
		"invalid pattern": func() {
			validation.Pattern("(")
		},
	}

	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				if !ok || !errors.Is(err, validation.ErrIllegalArgument) {
					t.Fatalf("expected ErrIllegalArgument panic, got %v", err)
				}
			}()
			fn()
		})
	}
}

func TestValidate_ReportsConversionFailure(t *testing.T) {
	field := headless.NewTextField()
	amount := input.From(input.New[string](field), convert.Converter[string, *int](convert.NewNumber[int]()))
	in := validation.New(amount)

	field.Input("12a")
	result := in.Validate()
	if result.IsValid() || result.Failures[0].Code != validation.CodeConversion {
		t.Fatalf("expected conversion failure, got %+v", result)
	}
}

func TestValidate_ConversionFailureSkipsRequired(t *testing.T) {
	field := headless.NewTextField()
	amount := input.From(input.New[string](field), convert.Converter[string, *int](convert.NewNumber[int]()))
	in := validation.New(amount)
	in.SetRequired(true)

	field.Input("12a")
	result := in.Validate()
	if diff := cmp.Diff([]string{"Invalid value"}, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if result.Failures[0].Code != validation.CodeConversion {
		t.Fatalf("expected conversion code, got %q", result.Failures[0].Code)
	}

	field.Input("")
	result = in.Validate()
	if diff := cmp.Diff([]string{"Value is required"}, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidators(t *testing.T) {
	type check struct {
		name  string
		err   error
		valid bool
	}
	n := 5
	checks := []check{
		{name: "not blank", err: validation.NotBlank().Validate("  "), valid: false},
		{name: "min length ok", err: validation.MinLength(2).Validate("ab"), valid: true},
		{name: "min length skips empty", err: validation.MinLength(2).Validate(""), valid: true},
		{name: "min length short", err: validation.MinLength(3).Validate("ab"), valid: false},
		{name: "max length runes", err: validation.MaxLength(2).Validate("äö"), valid: true},
		{name: "pattern", err: validation.Pattern(`[a-z]+`).Validate("abc1"), valid: false},
		{name: "email", err: validation.Email().Validate("dev@example.com"), valid: true},
		{name: "email display name", err: validation.Email().Validate("Dev <dev@example.com>"), valid: false},
		{name: "email no tld", err: validation.Email().Validate("dev@localhost"), valid: false},
		{name: "range", err: validation.Range(1, 10).Validate(11), valid: false},
		{name: "in", err: validation.In("a", "b").Validate("b"), valid: true},
		{name: "deref nil", err: validation.Deref(validation.Range(1, 3)).Validate(nil), valid: true},
		{name: "deref value", err: validation.Deref(validation.Range(1, 3)).Validate(&n), valid: false},
		{name: "each", err: validation.Each(validation.In(1, 2)).Validate([]int{1, 3}), valid: false},
		{name: "not nil", err: validation.NotNil[int]().Validate(nil), valid: false},
		{name: "func", err: validation.Func(func(v int) bool { return v%2 == 0 }, l10n.Text("even")).Validate(4), valid: true},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if (c.err == nil) != c.valid {
				t.Fatalf("unexpected outcome: %v", c.err)
			}
		})
	}
}

func TestAll_JoinsLocalizedMessages(t *testing.T) {
	_, in := newTextInput()
	in.AddValidator(validation.All(validation.MinLength(5), validation.Pattern(`\d+`)))
	_ = in.SetValue("abc")

	result := in.Validate()
	if len(result.Failures) != 1 {
		t.Fatalf("expected a single composite failure, got %d", len(result.Failures))
	}
	want := "Use at least 5 characters\nValue has an invalid format"
	if result.Failures[0].Message != want {
		t.Fatalf("unexpected composite message %q", result.Failures[0].Message)
	}
}
