package convert

import (
	"strings"
	"time"
)

// EmptyPolicy decides which presentation strings are treated as "no value".
type EmptyPolicy struct {
	// EmptyAsNil maps "" to nil.
	EmptyAsNil bool
	// BlankAsNil maps whitespace-only strings to nil. It implies EmptyAsNil.
	BlankAsNil bool
}

// IsNil reports whether text is a nil value under the policy.
func (p EmptyPolicy) IsNil(text string) bool {
	if p.BlankAsNil {
		return strings.TrimSpace(text) == ""
	}
	return p.EmptyAsNil && text == ""
}

// NullableString converts between a widget's text and a nullable model
// string. The nil model value is presented as "". Lossy: with both policy
// flags off, ToModel("") yields a pointer to "" rather than nil, and with
// BlankAsNil whitespace-only text does not survive a round trip.
func NullableString(policy EmptyPolicy) Converter[string, *string] {
	return nullableString{policy: policy}
}

type nullableString struct {
	policy EmptyPolicy
}

func (c nullableString) ToModel(text string) (*string, error) {
	if c.policy.IsNil(text) {
		return nil, nil
	}
	return &text, nil
}

func (c nullableString) ToPresentation(value *string) (string, error) {
	if value == nil {
		return "", nil
	}
	return *value, nil
}

// Bool converts between a checkbox-like boolean and display text, for
// widgets that only hold text (prompts, plain inputs). Matching is
// case-insensitive; "" maps to false.
func Bool(trueText, falseText string) Converter[string, bool] {
	return boolText{trueText: trueText, falseText: falseText}
}

type boolText struct {
	trueText  string
	falseText string
}

func (c boolText) ToModel(text string) (bool, error) {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return false, nil
	case strings.EqualFold(trimmed, c.trueText):
		return true, nil
	case strings.EqualFold(trimmed, c.falseText):
		return false, nil
	default:
		return false, newError(text, "model", "", errUnsupportedValue)
	}
}

func (c boolText) ToPresentation(value bool) (string, error) {
	if value {
		return c.trueText, nil
	}
	return c.falseText, nil
}

// Date converts between text in layout and a nullable date at UTC midnight.
// Lossy: the clock part of a model value is dropped.
func Date(layout string) Converter[string, *time.Time] {
	if strings.TrimSpace(layout) == "" {
		layout = time.DateOnly
	}
	return dateText{layout: layout}
}

type dateText struct {
	layout string
}

func (c dateText) ToModel(text string) (*time.Time, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(c.layout, trimmed, time.UTC)
	if err != nil {
		return nil, newError(text, "model", "", err)
	}
	day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	return &day, nil
}

func (c dateText) ToPresentation(value *time.Time) (string, error) {
	if value == nil {
		return "", nil
	}
	return value.UTC().Format(c.layout), nil
}

// Nullable lifts c so that the zero presentation value maps to a nil model
// value and back.
func Nullable[T any](c Converter[string, T]) Converter[string, *T] {
	return nullable[T]{inner: c}
}

type nullable[T any] struct {
	inner Converter[string, T]
}

func (c nullable[T]) ToModel(text string) (*T, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	value, err := c.inner.ToModel(text)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (c nullable[T]) ToPresentation(value *T) (string, error) {
	if value == nil {
		return "", nil
	}
	return c.inner.ToPresentation(*value)
}

func (c nullable[T]) ValidationPattern() string {
	return PatternOf(c.inner)
}
