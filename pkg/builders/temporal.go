package builders

import (
	"time"

	"github.com/goliatone/go-formbind/pkg/convert"
	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/l10n"
	"github.com/goliatone/go-formbind/pkg/native"
	"github.com/goliatone/go-formbind/pkg/validation"
)

// TimeBuilder binds a text widget to a nullable time of day.
type TimeBuilder struct {
	Common[*TimeBuilder]
	TextEntry[*TimeBuilder]
	Base[*time.Time, *TimeBuilder]

	widget    native.HasValue[string]
	converter *convert.TimeOfDay
}

// Time starts a builder for widget.
func Time(widget native.HasValue[string], opts ...Option) *TimeBuilder {
	s := resolveSettings(opts)
	b := &TimeBuilder{widget: widget, converter: convert.NewTimeOfDay()}
	b.Base = newBase[*time.Time](b, widget, s)
	b.Common = newCommon(b, widget, b.loc, s)
	b.TextEntry = newTextEntry(b, widget, b.loc)
	b.PatternFrom(b.converter)
	return b
}

func (b *TimeBuilder) Separator(separator rune) *TimeBuilder {
	b.converter.SetSeparator(separator)
	return b
}

func (b *TimeBuilder) Seconds(on bool) *TimeBuilder {
	b.converter.SetSeconds(on)
	return b
}

func (b *TimeBuilder) Build() input.Input[*time.Time] {
	base := input.New(b.widget, b.inputOptions()...)
	return b.finish(input.From[string, *time.Time](base, b.converter, b.inputOptions()...))
}

func (b *TimeBuilder) BuildValidatable() *validation.Input[*time.Time] {
	return b.validatable(b.Build())
}

// DateBuilder binds a date picker.
type DateBuilder struct {
	Common[*DateBuilder]
	Base[*time.Time, *DateBuilder]

	widget   native.HasValue[*time.Time]
	calendar event.Registration
}

// Date starts a builder for widget.
func Date(widget native.HasValue[*time.Time], opts ...Option) *DateBuilder {
	s := resolveSettings(opts)
	b := &DateBuilder{widget: widget}
	b.Base = newBase[*time.Time](b, widget, s)
	b.Common = newCommon(b, widget, b.loc, s)
	return b
}

// Calendar localizes the picker captions with resolve. Like labels, the
// captions are resolved on first attach when localization is deferred.
func (b *DateBuilder) Calendar(resolve func(*l10n.Context) native.CalendarI18n) *DateBuilder {
	picker, ok := b.widget.(native.HasCalendarI18n)
	if !ok || resolve == nil {
		return b
	}
	if b.calendar != nil {
		b.calendar.Remove()
	}
	b.calendar = l10n.Apply(b.loc.Context(), b.loc.Deferred(), b.widget, func(ctx *l10n.Context) {
		picker.SetCalendarI18n(resolve(ctx))
	})
	return b
}

func (b *DateBuilder) Build() input.Input[*time.Time] {
	return b.finish(input.New(b.widget, b.inputOptions()...))
}

func (b *DateBuilder) BuildValidatable() *validation.Input[*time.Time] {
	return b.validatable(b.Build())
}

// BooleanBuilder binds a checkbox.
type BooleanBuilder struct {
	Common[*BooleanBuilder]
	Base[bool, *BooleanBuilder]

	widget native.HasValue[bool]
}

// Boolean starts a builder for widget. An unchecked box counts as empty,
// so Required means "must be checked".
func Boolean(widget native.HasValue[bool], opts ...Option) *BooleanBuilder {
	s := resolveSettings(opts)
	b := &BooleanBuilder{widget: widget}
	b.Base = newBase[bool](b, widget, s)
	b.Common = newCommon(b, widget, b.loc, s)
	return b
}

func (b *BooleanBuilder) Build() input.Input[bool] {
	return b.finish(input.New(b.widget, b.inputOptions()...))
}

func (b *BooleanBuilder) BuildValidatable() *validation.Input[bool] {
	return b.validatable(b.Build())
}
