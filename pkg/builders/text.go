package builders

import (
	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/convert"
	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/native"
	"github.com/goliatone/go-formbind/pkg/validation"
)

// StringBuilder binds a text widget to a nullable string. Which texts count
// as nil follows the empty policy (Settings.EmptyPolicy by default).
type StringBuilder struct {
	Common[*StringBuilder]
	TextEntry[*StringBuilder]
	Base[*string, *StringBuilder]

	widget native.HasValue[string]
	policy convert.EmptyPolicy
}

// String starts a builder for widget.
func String(widget native.HasValue[string], opts ...Option) *StringBuilder {
	s := resolveSettings(opts)
	b := &StringBuilder{widget: widget, policy: s.EmptyPolicy}
	b.Base = newBase[*string](b, widget, s)
	b.Common = newCommon(b, widget, b.loc, s)
	b.TextEntry = newTextEntry(b, widget, b.loc)
	return b
}

// EmptyAsNil maps "" to nil.
func (b *StringBuilder) EmptyAsNil(on bool) *StringBuilder {
	b.policy.EmptyAsNil = on
	return b
}

// BlankAsNil maps whitespace-only text to nil.
func (b *StringBuilder) BlankAsNil(on bool) *StringBuilder {
	b.policy.BlankAsNil = on
	return b
}

func (b *StringBuilder) Build() input.Input[*string] {
	base := input.New(b.widget, b.inputOptions()...)
	return b.finish(input.From(base, convert.NullableString(b.policy), b.inputOptions()...))
}

func (b *StringBuilder) BuildValidatable() *validation.Input[*string] {
	return b.validatable(b.Build())
}

// NumberBuilder binds a text widget to a nullable number parsed in the
// locale of the localization context. The native pattern follows the
// converter configuration.
type NumberBuilder[N convert.Numeric] struct {
	Common[*NumberBuilder[N]]
	TextEntry[*NumberBuilder[N]]
	Base[*N, *NumberBuilder[N]]

	widget    native.HasValue[string]
	converter *convert.Number[N]
	// fixedLocale is set once Locale or Separators chose the separators.
	fixedLocale bool
}

// Number starts a builder for widget.
func Number[N convert.Numeric](widget native.HasValue[string], opts ...Option) *NumberBuilder[N] {
	s := resolveSettings(opts)
	b := &NumberBuilder[N]{widget: widget}
	b.Base = newBase[*N](b, widget, s)
	b.Common = newCommon(b, widget, b.loc, s)
	b.TextEntry = newTextEntry(b, widget, b.loc)
	b.converter = convert.NewNumber[N](convert.WithLocale(b.loc.Context().Locale()))
	b.PatternFrom(b.converter)
	return b
}

// Locale switches the locale used for separators. It defaults to the
// locale of the localization context in effect when Build runs.
func (b *NumberBuilder[N]) Locale(tag language.Tag) *NumberBuilder[N] {
	b.fixedLocale = true
	b.converter.SetLocale(tag)
	return b
}

func (b *NumberBuilder[N]) AllowNegative(allow bool) *NumberBuilder[N] {
	b.converter.SetAllowNegative(allow)
	return b
}

func (b *NumberBuilder[N]) MinDecimals(digits int) *NumberBuilder[N] {
	b.converter.SetMinDecimals(digits)
	return b
}

func (b *NumberBuilder[N]) MaxDecimals(digits int) *NumberBuilder[N] {
	b.converter.SetMaxDecimals(digits)
	return b
}

func (b *NumberBuilder[N]) Grouping(on bool) *NumberBuilder[N] {
	b.converter.SetGrouping(on)
	return b
}

// Separators forces explicit separators instead of locale detection.
func (b *NumberBuilder[N]) Separators(symbols convert.Symbols) *NumberBuilder[N] {
	b.fixedLocale = true
	b.converter.SetSymbols(symbols)
	return b
}

// Converter exposes the converter, whose setters keep the pattern in sync.
func (b *NumberBuilder[N]) Converter() *convert.Number[N] { return b.converter }

func (b *NumberBuilder[N]) Build() input.Input[*N] {
	if locale := b.loc.Context().Locale(); !b.fixedLocale && locale != b.converter.Locale() {
		b.converter.SetLocale(locale)
	}
	base := input.New(b.widget, b.inputOptions()...)
	return b.finish(input.From[string, *N](base, b.converter, b.inputOptions()...))
}

func (b *NumberBuilder[N]) BuildValidatable() *validation.Input[*N] {
	return b.validatable(b.Build())
}
