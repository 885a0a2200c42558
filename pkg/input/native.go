package input

import (
	"fmt"

	"github.com/goliatone/go-formbind/pkg/adapter"
	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/native"
	"github.com/goliatone/go-formbind/pkg/property"
)

type widgetInput[T any] struct {
	widget   native.HasValue[T]
	required property.Handler[bool]
	isEmpty  func(T) bool
	empty    func() T
	adapters *adapter.Registry
}

// New wraps widget. The model type equals the widget's native value type;
// use From to convert it.
func New[T any](widget native.HasValue[T], opts ...Option) Input[T] {
	if widget == nil {
		panic(fmt.Errorf("%w: widget is nil", ErrIllegalArgument))
	}
	s := newSettings(opts)
	in := &widgetInput[T]{
		widget:   widget,
		required: s.requiredHandler(widget),
		adapters: adapter.NewRegistry(adapter.WithLogger(s.logger)),
	}
	in.empty = emptyValueFor(s, widget.EmptyValue)
	in.isEmpty = emptinessFor(s, in.empty)
	return in
}

func (in *widgetInput[T]) Value() T      { return in.widget.Value() }
func (in *widgetInput[T]) EmptyValue() T { return in.empty() }
func (in *widgetInput[T]) IsEmpty() bool { return in.isEmpty(in.widget.Value()) }

func (in *widgetInput[T]) SetValue(value T) error {
	in.widget.SetValue(value)
	return nil
}

func (in *widgetInput[T]) Clear() {
	in.widget.SetValue(in.widget.EmptyValue())
}

func (in *widgetInput[T]) AddValueChangeListener(fn func(ValueChangeEvent[T])) event.Registration {
	mustListener(fn)
	return in.widget.AddValueChangeListener(func(change native.ValueChange[T]) {
		fn(ValueChangeEvent[T]{
			Source:     in,
			Old:        change.Old,
			New:        change.New,
			FromClient: change.FromClient,
		})
	})
}

func (in *widgetInput[T]) Focus() {
	if w, ok := in.widget.(native.Focusable); ok {
		w.Focus()
	}
}

func (in *widgetInput[T]) SetEnabled(enabled bool) {
	if w, ok := in.widget.(native.HasEnabled); ok {
		w.SetEnabled(enabled)
	}
}

func (in *widgetInput[T]) IsEnabled() bool {
	if w, ok := in.widget.(native.HasEnabled); ok {
		return w.IsEnabled()
	}
	return true
}

func (in *widgetInput[T]) SetReadOnly(readOnly bool) {
	if w, ok := in.widget.(native.HasReadOnly); ok {
		w.SetReadOnly(readOnly)
	}
}

func (in *widgetInput[T]) IsReadOnly() bool {
	if w, ok := in.widget.(native.HasReadOnly); ok {
		return w.IsReadOnly()
	}
	return false
}

func (in *widgetInput[T]) SetRequired(required bool) { in.required.SetValue(required) }
func (in *widgetInput[T]) IsRequired() bool          { return in.required.Value() }

func (in *widgetInput[T]) Component() any              { return in.widget }
func (in *widgetInput[T]) Adapters() *adapter.Registry { return in.adapters }
