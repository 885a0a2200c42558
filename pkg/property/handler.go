// Package property pairs a getter and a setter describing how a logical
// property maps onto a native widget.
package property

import "github.com/goliatone/go-formbind/pkg/native"

// Handler maps a logical property onto a widget. A Handler with a nil Set is
// read-only; a nil Get reports the zero value.
type Handler[T any] struct {
	Get func() T
	Set func(T)
}

// New builds a Handler from a getter and a setter.
func New[T any](get func() T, set func(T)) Handler[T] {
	return Handler[T]{Get: get, Set: set}
}

// Value returns the current property value.
func (h Handler[T]) Value() T {
	if h.Get == nil {
		var zero T
		return zero
	}
	return h.Get()
}

// SetValue updates the property when a setter is configured. It reports
// whether the value was applied.
func (h Handler[T]) SetValue(value T) bool {
	if h.Set == nil {
		return false
	}
	h.Set(value)
	return true
}

// Supported reports whether the handler can write the property.
func (h Handler[T]) Supported() bool {
	return h.Set != nil
}

// Field keeps the value in memory. It serves widgets that do not expose the
// property natively.
func Field[T any](initial T) Handler[T] {
	value := initial
	return Handler[T]{
		Get: func() T { return value },
		Set: func(v T) { value = v },
	}
}

// Required maps the required flag onto the widget's required indicator,
// falling back to an in-memory flag.
func Required(widget any) Handler[bool] {
	if w, ok := widget.(native.HasRequiredIndicator); ok {
		return New(w.IsRequiredIndicatorVisible, w.SetRequiredIndicatorVisible)
	}
	return Field(false)
}

// Label maps to native.HasLabel.
func Label(widget any) Handler[string] {
	if w, ok := widget.(native.HasLabel); ok {
		return New(w.Label, w.SetLabel)
	}
	return Handler[string]{}
}

// Placeholder maps to native.HasPlaceholder.
func Placeholder(widget any) Handler[string] {
	if w, ok := widget.(native.HasPlaceholder); ok {
		return New(w.Placeholder, w.SetPlaceholder)
	}
	return Handler[string]{}
}

// Title maps to native.HasTitle.
func Title(widget any) Handler[string] {
	if w, ok := widget.(native.HasTitle); ok {
		return New(w.Title, w.SetTitle)
	}
	return Handler[string]{}
}
