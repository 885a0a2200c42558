package convert

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func ptr[T any](v T) *T { return &v }

func TestNullableString_EmptyPolicy(t *testing.T) {
	cases := []struct {
		name   string
		policy EmptyPolicy
		input  string
		want   *string
	}{
		{name: "empty as nil", policy: EmptyPolicy{EmptyAsNil: true}, input: "", want: nil},
		{name: "empty kept when policy off", policy: EmptyPolicy{}, input: "", want: ptr("")},
		{name: "blank kept with empty policy only", policy: EmptyPolicy{EmptyAsNil: true}, input: "   ", want: ptr("   ")},
		{name: "blank as nil", policy: EmptyPolicy{BlankAsNil: true}, input: " \t ", want: nil},
		{name: "blank policy implies empty", policy: EmptyPolicy{BlankAsNil: true}, input: "", want: nil},
		{name: "literal preserved", policy: EmptyPolicy{EmptyAsNil: true, BlankAsNil: true}, input: " hi ", want: ptr(" hi ")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NullableString(tc.policy).ToModel(tc.input)
			if err != nil {
				t.Fatalf("ToModel: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConverters_RoundTrip(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		c := NewNumber[int]()
		for _, v := range []int{0, 42, -7, 1234567} {
			assertRoundTrip(t, Converter[string, *int](c), &v)
		}
	})
	t.Run("float with bounded decimals", func(t *testing.T) {
		c := NewNumber[float64](WithDecimals(0, 2))
		for _, v := range []float64{0, 3.25, -1.5, 1000.01} {
			assertRoundTrip(t, Converter[string, *float64](c), &v)
		}
	})
	t.Run("grouped german float", func(t *testing.T) {
		c := NewNumber[float64](WithLocale(language.German), WithGrouping(true))
		for _, v := range []float64{1234.5, -987654.25} {
			assertRoundTrip(t, Converter[string, *float64](c), &v)
		}
	})
	t.Run("time of day with seconds", func(t *testing.T) {
		c := NewTimeOfDay(WithSeconds(true))
		v := Clock(13, 45, 30)
		assertRoundTrip(t, Converter[string, *time.Time](c), &v)
	})
	t.Run("date", func(t *testing.T) {
		v := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
		assertRoundTrip(t, Date(""), &v)
	})
	t.Run("nil values", func(t *testing.T) {
		assertRoundTrip(t, Converter[string, *int](NewNumber[int]()), nil)
		assertRoundTrip(t, Converter[string, *time.Time](NewTimeOfDay()), nil)
	})
}

func assertRoundTrip[T any](t *testing.T, c Converter[string, *T], value *T) {
	t.Helper()
	text, err := c.ToPresentation(value)
	if err != nil {
		t.Fatalf("ToPresentation(%v): %v", value, err)
	}
	back, err := c.ToModel(text)
	if err != nil {
		t.Fatalf("ToModel(%q): %v", text, err)
	}
	if diff := cmp.Diff(value, back); diff != "" {
		t.Fatalf("round trip through %q mismatch (-want +got):\n%s", text, diff)
	}
}

func TestNumber_NonNegativeTwoDecimals(t *testing.T) {
	c := NewNumber[float64](WithAllowNegative(false), WithDecimals(0, 2))

	_, err := c.ToModel("-3.14")
	if !errors.Is(err, ErrConversion) {
		t.Fatalf("expected conversion error for -3.14, got %v", err)
	}

	got, err := c.ToModel("3.14")
	if err != nil {
		t.Fatalf("ToModel(3.14): %v", err)
	}
	if got == nil || *got != 3.14 {
		t.Fatalf("expected 3.14, got %v", got)
	}

	got, err = c.ToModel("3")
	if err != nil {
		t.Fatalf("ToModel(3): %v", err)
	}
	if got == nil || *got != 3.0 {
		t.Fatalf("expected 3.0, got %v", got)
	}

	if _, err := c.ToModel("3.141"); !errors.Is(err, ErrConversion) {
		t.Fatalf("expected conversion error for too many decimals, got %v", err)
	}
	if _, err := c.ToPresentation(ptr(-1.0)); !errors.Is(err, ErrConversion) {
		t.Fatalf("expected conversion error presenting a negative value, got %v", err)
	}
}

func TestNumber_Presentation(t *testing.T) {
	cases := []struct {
		name  string
		conv  *Number[float64]
		value float64
		want  string
	}{
		{name: "rounds to max decimals", conv: NewNumber[float64](WithDecimals(0, 2)), value: 3.14159, want: "3.14"},
		{name: "pads to min decimals", conv: NewNumber[float64](WithDecimals(2, 4)), value: 3, want: "3.00"},
		{name: "min decimals capped by max", conv: NewNumber[float64](WithDecimals(3, 2)), value: 3.14, want: "3.14"},
		{name: "grouping", conv: NewNumber[float64](WithGrouping(true)), value: 1234567.5, want: "1,234,567.5"},
		{name: "german separators", conv: NewNumber[float64](WithLocale(language.German), WithGrouping(true)), value: 1234.5, want: "1.234,5"},
		{name: "explicit symbols", conv: NewNumber[float64](WithSymbols(Symbols{Decimal: ',', Grouping: '\''}), WithGrouping(true)), value: 10000.25, want: "10'000,25"},
		{name: "negative zero", conv: NewNumber[float64](), value: math.Copysign(0, -1), want: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.conv.ToPresentation(&tc.value)
			if err != nil {
				t.Fatalf("ToPresentation: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNumber_MinAboveMaxKeepsRoundTrip(t *testing.T) {
	c := NewNumber[float64]()
	c.SetMinDecimals(3)
	c.SetMaxDecimals(2)

	value := 3.1
	text, err := c.ToPresentation(&value)
	if err != nil {
		t.Fatalf("ToPresentation: %v", err)
	}
	if text != "3.10" {
		t.Fatalf("expected 3.10, got %q", text)
	}
	back, err := c.ToModel(text)
	if err != nil || back == nil || *back != value {
		t.Fatalf("round trip failed: %v %v", back, err)
	}
}

func TestNumber_IntegerRejectsDecimalsAndOverflow(t *testing.T) {
	ints := NewNumber[int]()
	if _, err := ints.ToModel("3.5"); !errors.Is(err, ErrConversion) {
		t.Fatalf("expected decimals to be rejected for int, got %v", err)
	}

	bytes := NewNumber[uint8]()
	_, err := bytes.ToModel("300")
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected *ConversionError, got %T", err)
	}
	if !errors.Is(convErr, errOutOfRange) {
		t.Fatalf("expected out of range cause, got %v", convErr.Err)
	}
	if strings.Contains(bytes.ValidationPattern(), "-") {
		t.Fatalf("unsigned pattern must not accept a sign: %q", bytes.ValidationPattern())
	}
}

func TestNumber_ConfigChangeRegeneratesPattern(t *testing.T) {
	c := NewNumber[float64]()
	calls := 0
	c.OnConfigChange(func() { calls++ })

	before := c.ValidationPattern()
	c.SetAllowNegative(false)
	after := c.ValidationPattern()

	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}
	if before == after {
		t.Fatalf("pattern was not regenerated: %q", after)
	}
	if strings.HasPrefix(after, "-?") {
		t.Fatalf("pattern still accepts negatives: %q", after)
	}

	c.SetLocale(language.German)
	if got := c.Symbols(); got.Decimal != ',' {
		t.Fatalf("expected german decimal comma, got %q", got.Decimal)
	}
	if calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", calls)
	}
	if v, err := c.ToModel("2,5"); err != nil || *v != 2.5 {
		t.Fatalf("expected 2.5 after locale change, got %v (%v)", v, err)
	}
}

func TestTimeOfDay(t *testing.T) {
	c := NewTimeOfDay()

	got, err := c.ToModel("9:05")
	if err != nil {
		t.Fatalf("ToModel: %v", err)
	}
	if diff := cmp.Diff(ptr(Clock(9, 5, 0)), got); diff != "" {
		t.Fatalf("clock mismatch (-want +got):\n%s", diff)
	}
	if _, err := c.ToModel("25:00"); !errors.Is(err, ErrConversion) {
		t.Fatalf("expected out of range error, got %v", err)
	}
	if _, err := c.ToModel("10:00:15"); !errors.Is(err, ErrConversion) {
		t.Fatalf("seconds must be rejected when disabled, got %v", err)
	}

	text, _ := c.ToPresentation(ptr(Clock(7, 30, 59)))
	if text != "07:30" {
		t.Fatalf("expected seconds to be dropped, got %q", text)
	}

	notified := 0
	c.OnConfigChange(func() { notified++ })
	c.SetSeparator('.')
	c.SetSeconds(true)
	if notified != 2 {
		t.Fatalf("expected 2 notifications, got %d", notified)
	}
	if _, err := c.ToModel("10.00.15"); err != nil {
		t.Fatalf("expected dotted time with seconds to parse: %v", err)
	}
}

func TestChainAndReverse(t *testing.T) {
	upper := Func(
		func(s string) (string, error) { return strings.ToUpper(s), nil },
		func(s string) (string, error) { return strings.ToLower(s), nil },
	)
	chained := Chain[string, string, *string](upper, NullableString(EmptyPolicy{EmptyAsNil: true}))

	got, err := chained.ToModel("abc")
	if err != nil || got == nil || *got != "ABC" {
		t.Fatalf("unexpected chained model %v (%v)", got, err)
	}
	text, _ := chained.ToPresentation(ptr("XYZ"))
	if text != "xyz" {
		t.Fatalf("unexpected chained presentation %q", text)
	}

	reversed := Reverse(upper)
	if v, _ := reversed.ToModel("ABC"); v != "abc" {
		t.Fatalf("unexpected reversed model %q", v)
	}

	if _, err := Func[string, int](nil, nil).ToModel("x"); !errors.Is(err, ErrConversion) {
		t.Fatalf("expected missing func conversion error, got %v", err)
	}
}

func TestPatternOf(t *testing.T) {
	number := NewNumber[int](WithAllowNegative(false))
	if got := PatternOf(Nullable[string](Identity[string]())); got != "" {
		t.Fatalf("expected empty pattern, got %q", got)
	}
	if got := PatternOf(number); got != `\d+` {
		t.Fatalf("unexpected integer pattern %q", got)
	}
}

func TestNullable(t *testing.T) {
	c := Nullable(Bool("yes", "no"))
	if v, err := c.ToModel("  "); err != nil || v != nil {
		t.Fatalf("expected nil for blank text, got %v (%v)", v, err)
	}
	v, err := c.ToModel("no")
	if err != nil || v == nil || *v {
		t.Fatalf("expected false pointer, got %v (%v)", v, err)
	}
	if _, err := c.ToModel("maybe"); !errors.Is(err, ErrConversion) {
		t.Fatalf("expected conversion error, got %v", err)
	}
	for _, tc := range []struct {
		value *bool
		want  string
	}{{nil, ""}, {ptr(true), "yes"}} {
		got, err := c.ToPresentation(tc.value)
		if err != nil || got != tc.want {
			t.Fatalf("presentation of %v: got %q (%v), want %q", tc.value, got, err, tc.want)
		}
	}

	number := Nullable[*int](NewNumber[int](WithAllowNegative(false)))
	if got := PatternOf(number); got != `\d+` {
		t.Fatalf("expected the inner pattern, got %q", got)
	}
}

func TestBool(t *testing.T) {
	c := Bool("yes", "no")
	if v, err := c.ToModel("YES"); err != nil || !v {
		t.Fatalf("expected true, got %v (%v)", v, err)
	}
	if v, err := c.ToModel(""); err != nil || v {
		t.Fatalf("expected false for empty text, got %v (%v)", v, err)
	}
	if _, err := c.ToModel("maybe"); !errors.Is(err, ErrConversion) {
		t.Fatalf("expected conversion error, got %v", err)
	}
}
