package input_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/convert"
	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/native/headless"
)

func newAmountInput() (*headless.TextField, input.Input[*float64]) {
	field := headless.NewTextField()
	amount := input.From(input.New[string](field), convert.Converter[string, *float64](
		convert.NewNumber[float64](convert.WithAllowNegative(false), convert.WithDecimals(0, 2)),
	))
	return field, amount
}

func TestFrom_NumericScenario(t *testing.T) {
	field, amount := newAmountInput()

	if err := amount.SetValue(ptr(-3.14)); !errors.Is(err, convert.ErrConversion) {
		t.Fatalf("expected conversion error for a negative value, got %v", err)
	}
	if field.Value() != "" {
		t.Fatalf("failed SetValue must not touch the widget, got %q", field.Value())
	}

	field.Input("3.14")
	if diff := cmp.Diff(ptr(3.14), amount.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	field.Input("3")
	if diff := cmp.Diff(ptr(3.0), amount.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	if err := amount.SetValue(ptr(12.5)); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if field.Value() != "12.5" {
		t.Fatalf("expected presentation 12.5, got %q", field.Value())
	}
}

func TestFrom_ClientConversionFailureMarksInvalid(t *testing.T) {
	field, amount := newAmountInput()

	var received []*float64
	amount.AddValueChangeListener(func(e input.ValueChangeEvent[*float64]) {
		received = append(received, e.New)
	})

	field.Input("-3.14")
	if !field.IsInvalid() {
		t.Fatalf("expected widget to be flagged invalid")
	}
	if field.ErrorMessage() == "" {
		t.Fatalf("expected a conversion message on the widget")
	}
	if amount.Value() != nil {
		t.Fatalf("expected empty model value, got %v", *amount.Value())
	}
	if !input.HasConversionError(amount) {
		t.Fatalf("expected pending conversion error")
	}

	field.Input("4")
	if field.IsInvalid() || input.HasConversionError(amount) {
		t.Fatalf("expected invalid state to clear after a valid edit")
	}

	want := []*float64{nil, ptr(4.0)}
	if diff := cmp.Diff(want, received); diff != "" {
		t.Fatalf("listener values mismatch (-want +got):\n%s", diff)
	}
}

func TestFrom_EmptyValuePolicy(t *testing.T) {
	cases := []struct {
		name   string
		policy convert.EmptyPolicy
		typed  string
		want   *string
	}{
		{name: "empty as nil", policy: convert.EmptyPolicy{EmptyAsNil: true}, typed: "", want: nil},
		{name: "blank as nil", policy: convert.EmptyPolicy{BlankAsNil: true}, typed: "  ", want: nil},
		{name: "literal kept", policy: convert.EmptyPolicy{}, typed: "  ", want: ptr("  ")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			field := headless.NewTextField()
			field.SetValue("seed")
			in := input.From(input.New[string](field), convert.NullableString(tc.policy))

			field.Input(tc.typed)
			if diff := cmp.Diff(tc.want, in.Value()); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFrom_ForwardsToSource(t *testing.T) {
	field := headless.NewTextField()
	in := input.From(input.New[string](field), convert.NullableString(convert.EmptyPolicy{EmptyAsNil: true}))

	in.SetEnabled(false)
	in.SetRequired(true)
	in.Focus()

	if field.IsEnabled() || !field.IsRequiredIndicatorVisible() || !field.IsFocused() {
		t.Fatalf("expected capabilities to reach the widget")
	}
	if in.Component() != field {
		t.Fatalf("expected composed input to expose the widget")
	}
	if !in.IsEmpty() {
		t.Fatalf("expected nil value to be empty")
	}

	_ = in.SetValue(ptr("x"))
	in.Clear()
	if field.Value() != "" || in.Value() != nil {
		t.Fatalf("expected Clear to reset the widget")
	}
}

type summary struct{ text string }

func TestAdapters_Memoized(t *testing.T) {
	in := input.New[string](headless.NewTextField())
	built := 0
	input.RegisterAdapter(in, func(source input.Input[string]) *summary {
		built++
		return &summary{text: source.Value()}
	})

	first, ok := input.As[*summary](in)
	if !ok {
		t.Fatalf("expected adapter")
	}
	second, _ := input.As[*summary](in)
	if first != second || built != 1 {
		t.Fatalf("expected memoized adapter, built %d times", built)
	}

	other := input.New[string](headless.NewTextField())
	if _, ok := input.As[*summary](other); ok {
		t.Fatalf("adapters are private to an input")
	}
}

func TestAdapters_LastRegistrationWins(t *testing.T) {
	in := input.New[string](headless.NewTextField())
	input.RegisterAdapter(in, func(input.Input[string]) *summary { return &summary{text: "first"} })
	input.RegisterAdapter(in, func(input.Input[string]) *summary { return &summary{text: "second"} })

	got, _ := input.As[*summary](in)
	if got.text != "second" {
		t.Fatalf("expected last registration to win, got %q", got.text)
	}
}
