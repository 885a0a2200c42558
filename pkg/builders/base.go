package builders

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbind/pkg/configurator"
	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/native"
	"github.com/goliatone/go-formbind/pkg/validation"
)

// ErrIllegalArgument is wrapped by panics caused by invalid builder input.
var ErrIllegalArgument = errors.New("builders: illegal argument")

// Common groups the configurators every builder exposes.
type Common[B any] struct {
	configurator.IDConfigurator[B]
	configurator.LabelConfigurator[B]
	configurator.TitleConfigurator[B]
	configurator.StyleConfigurator[B]
	configurator.SizeConfigurator[B]
	configurator.EnabledConfigurator[B]
	configurator.FocusConfigurator[B]
	configurator.LocalizationConfigurator[B]
}

func newCommon[B any](owner B, widget any, loc *configurator.Localization, s Settings) Common[B] {
	return Common[B]{
		IDConfigurator:           configurator.NewID(owner, widget),
		LabelConfigurator:        configurator.NewLabel(owner, widget, loc, nil),
		TitleConfigurator:        configurator.NewTitle(owner, widget, loc, nil),
		StyleConfigurator:        configurator.NewStyle(owner, widget, s.Palette),
		SizeConfigurator:         configurator.NewSize(owner, widget),
		EnabledConfigurator:      configurator.NewEnabled(owner, widget),
		FocusConfigurator:        configurator.NewFocus(owner, widget),
		LocalizationConfigurator: configurator.NewLocalizationConfigurator(owner, loc),
	}
}

// TextEntry groups the configurators of free text widgets.
type TextEntry[B any] struct {
	configurator.PlaceholderConfigurator[B]
	configurator.AutocompleteConfigurator[B]
	configurator.ValueChangeModeConfigurator[B]
	configurator.KeyNotifierConfigurator[B]
	configurator.CompositionNotifierConfigurator[B]
	configurator.PatternConfigurator[B]
}

func newTextEntry[B any](owner B, widget any, loc *configurator.Localization) TextEntry[B] {
	return TextEntry[B]{
		PlaceholderConfigurator:         configurator.NewPlaceholder(owner, widget, loc, nil),
		AutocompleteConfigurator:        configurator.NewAutocomplete(owner, widget),
		ValueChangeModeConfigurator:     configurator.NewValueChangeMode(owner, widget),
		KeyNotifierConfigurator:         configurator.NewKeyNotifier(owner, widget),
		CompositionNotifierConfigurator: configurator.NewCompositionNotifier(owner, widget),
		PatternConfigurator:             configurator.NewPattern(owner, widget),
	}
}

// Base holds what every builder collects before building: validation
// settings, value change listeners and build hooks.
type Base[T, B any] struct {
	configurator.ValidatableConfigurator[T, B]

	owner     B
	settings  Settings
	widget    any
	loc       *configurator.Localization
	listeners []func(input.ValueChangeEvent[T])
	hooks     []func(input.Input[T])
}

func newBase[T, B any](owner B, widget any, s Settings) Base[T, B] {
	if widget == nil {
		panic(fmt.Errorf("%w: widget is nil", ErrIllegalArgument))
	}
	return Base[T, B]{
		ValidatableConfigurator: configurator.NewValidatable[T](owner),
		owner:                   owner,
		settings:                s,
		widget:                  widget,
		loc:                     configurator.NewLocalization(s.Localization, s.DeferLocalization),
	}
}

// OnValueChange registers fn on the built input.
func (b *Base[T, B]) OnValueChange(fn func(input.ValueChangeEvent[T])) B {
	if fn == nil {
		panic(fmt.Errorf("%w: value change listener is nil", ErrIllegalArgument))
	}
	b.listeners = append(b.listeners, fn)
	return b.owner
}

// OnBuild runs fn with the built input before it is returned.
func (b *Base[T, B]) OnBuild(fn func(input.Input[T])) B {
	if fn == nil {
		panic(fmt.Errorf("%w: build hook is nil", ErrIllegalArgument))
	}
	b.hooks = append(b.hooks, fn)
	return b.owner
}

// Settings returns the settings the builder was created with.
func (b *Base[T, B]) Settings() Settings { return b.settings }

// Widget returns the native widget being configured.
func (b *Base[T, B]) Widget() any { return b.widget }

func (b *Base[T, B]) inputOptions() []input.Option {
	return []input.Option{input.WithLogger(b.settings.Logger)}
}

func (b *Base[T, B]) finish(in input.Input[T]) input.Input[T] {
	if b.Validation().IsRequired() {
		in.SetRequired(true)
	}
	for _, fn := range b.listeners {
		in.AddValueChangeListener(fn)
	}
	for _, hook := range b.hooks {
		hook(in)
	}
	return in
}

func (b *Base[T, B]) validatable(in input.Input[T]) *validation.Input[T] {
	v := validation.New(in,
		validation.WithContext(b.loc.Context()),
		validation.WithLogger(b.settings.Logger),
	)
	v.SetValidateOnValueChange(b.settings.ValidateOnChange)
	b.Validation().Apply(v)
	return v
}

// Buildable is implemented by every builder producing an Input[T].
type Buildable[T, B any] interface {
	OnBuild(func(input.Input[T])) B
}

// WithAdapter registers factory as adapter A on the input b builds.
func WithAdapter[A, T, B any](b Buildable[T, B], factory func(input.Input[T]) A) B {
	if factory == nil {
		panic(fmt.Errorf("%w: adapter factory is nil", ErrIllegalArgument))
	}
	return b.OnBuild(func(in input.Input[T]) {
		input.RegisterAdapter(in, factory)
	})
}

func captionable[ITEM any](widget any) (native.HasItemCaption[ITEM], bool) {
	w, ok := widget.(native.HasItemCaption[ITEM])
	return w, ok
}
