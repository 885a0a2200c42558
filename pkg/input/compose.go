package input

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formbind/pkg/adapter"
	"github.com/goliatone/go-formbind/pkg/convert"
	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/native"
	"github.com/goliatone/go-formbind/pkg/property"
)

type converted[S, T any] struct {
	source    Input[S]
	conv      convert.Converter[S, T]
	logger    *slog.Logger
	required  *property.Handler[bool]
	isEmpty   func(T) bool
	empty     func() T
	adapters  *adapter.Registry
	listeners event.Listeners[ValueChangeEvent[T]]

	// conversionInvalid records that this input, not a validator, flagged
	// the widget invalid.
	conversionInvalid bool
}

// From composes source with conv. Value changes, enabled, read-only,
// required and focus operations are forwarded to source; SetValue converts
// with ToPresentation before delegating.
//
// Client edits that cannot be converted do not surface as errors: the widget
// is flagged invalid (when it implements native.HasValidation) and listeners
// receive the empty value.
func From[S, T any](source Input[S], conv convert.Converter[S, T], opts ...Option) Input[T] {
	if source == nil {
		panic(fmt.Errorf("%w: source input is nil", ErrIllegalArgument))
	}
	if conv == nil {
		panic(fmt.Errorf("%w: converter is nil", ErrIllegalArgument))
	}
	s := newSettings(opts)
	c := &converted[S, T]{
		source:   source,
		conv:     conv,
		logger:   s.logger,
		required: s.required,
		adapters: adapter.NewRegistry(adapter.WithLogger(s.logger)),
	}
	c.empty = emptyValueFor(s, c.convertedEmpty)
	c.isEmpty = emptinessFor(s, c.empty)
	source.AddValueChangeListener(c.onSourceChange)
	return c
}

func (c *converted[S, T]) convertedEmpty() T {
	value, err := c.conv.ToModel(c.source.EmptyValue())
	if err != nil {
		var zero T
		return zero
	}
	return value
}

func (c *converted[S, T]) Value() T {
	value, err := c.conv.ToModel(c.source.Value())
	if err != nil {
		return c.empty()
	}
	return value
}

func (c *converted[S, T]) SetValue(value T) error {
	presentation, err := c.conv.ToPresentation(value)
	if err != nil {
		if !errors.Is(err, convert.ErrConversion) {
			err = fmt.Errorf("%w: %w", convert.ErrConversion, err)
		}
		return fmt.Errorf("input: set value: %w", err)
	}
	if err := c.source.SetValue(presentation); err != nil {
		return err
	}
	c.clearConversionError()
	return nil
}

func (c *converted[S, T]) EmptyValue() T { return c.empty() }
func (c *converted[S, T]) IsEmpty() bool { return c.isEmpty(c.Value()) }

func (c *converted[S, T]) Clear() {
	c.source.Clear()
	c.clearConversionError()
}

func (c *converted[S, T]) AddValueChangeListener(fn func(ValueChangeEvent[T])) event.Registration {
	mustListener(fn)
	return c.listeners.Add(fn)
}

func (c *converted[S, T]) onSourceChange(e ValueChangeEvent[S]) {
	next, err := c.conv.ToModel(e.New)
	if err != nil {
		c.reportConversionError(e.New, err)
		next = c.empty()
	} else {
		c.clearConversionError()
	}
	previous, err := c.conv.ToModel(e.Old)
	if err != nil {
		previous = c.empty()
	}
	c.listeners.Fire(ValueChangeEvent[T]{
		Source:     c,
		Old:        previous,
		New:        next,
		FromClient: e.FromClient,
	})
}

func (c *converted[S, T]) reportConversionError(value S, err error) {
	c.logger.Debug("input: client value could not be converted",
		slog.Any("value", value),
		slog.String("error", err.Error()),
	)
	if w, ok := c.Component().(native.HasValidation); ok {
		w.SetInvalid(true)
		w.SetErrorMessage(err.Error())
		c.conversionInvalid = true
	}
}

func (c *converted[S, T]) clearConversionError() {
	if !c.conversionInvalid {
		return
	}
	c.conversionInvalid = false
	if w, ok := c.Component().(native.HasValidation); ok {
		w.SetInvalid(false)
		w.SetErrorMessage("")
	}
}

func (c *converted[S, T]) Focus()                    { c.source.Focus() }
func (c *converted[S, T]) SetEnabled(enabled bool)   { c.source.SetEnabled(enabled) }
func (c *converted[S, T]) IsEnabled() bool           { return c.source.IsEnabled() }
func (c *converted[S, T]) SetReadOnly(readOnly bool) { c.source.SetReadOnly(readOnly) }
func (c *converted[S, T]) IsReadOnly() bool          { return c.source.IsReadOnly() }

func (c *converted[S, T]) SetRequired(required bool) {
	if c.required != nil {
		c.required.SetValue(required)
		return
	}
	c.source.SetRequired(required)
}

func (c *converted[S, T]) IsRequired() bool {
	if c.required != nil {
		return c.required.Value()
	}
	return c.source.IsRequired()
}

func (c *converted[S, T]) Component() any              { return c.source.Component() }
func (c *converted[S, T]) Adapters() *adapter.Registry { return c.adapters }

// ConversionInvalid reports whether the last client edit could not be
// converted.
func (c *converted[S, T]) ConversionInvalid() bool { return c.conversionInvalid }
