// Package input binds a native widget to a typed value. An Input either wraps
// a widget directly (New) or composes another Input with a converter (From),
// so that callers always deal with the logical model type regardless of what
// the widget holds natively.
package input

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/goliatone/go-formbind/pkg/adapter"
	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/property"
)

// ErrIllegalArgument is wrapped by the panics raised for programmer errors
// such as registering a nil listener.
var ErrIllegalArgument = errors.New("input: illegal argument")

// Input is a typed value holder bound to a widget.
type Input[T any] interface {
	Value() T
	// SetValue updates the widget programmatically. It fails with an error
	// wrapping convert.ErrConversion when the value cannot be represented.
	SetValue(T) error
	EmptyValue() T
	IsEmpty() bool
	// Clear resets the widget to its empty value.
	Clear()
	// AddValueChangeListener registers fn. Listeners run synchronously in
	// registration order. A nil fn panics.
	AddValueChangeListener(fn func(ValueChangeEvent[T])) event.Registration

	Focus()
	SetEnabled(bool)
	IsEnabled() bool
	SetReadOnly(bool)
	IsReadOnly() bool
	SetRequired(bool)
	IsRequired() bool

	// Component returns the wrapped native widget.
	Component() any
	// Adapters returns the registry private to this input.
	Adapters() *adapter.Registry
}

// ValueChangeEvent describes a value transition.
type ValueChangeEvent[T any] struct {
	Source     Input[T]
	Old        T
	New        T
	FromClient bool
}

// Option configures an Input.
type Option func(*settings)

type settings struct {
	logger   *slog.Logger
	isEmpty  any
	empty    any
	required *property.Handler[bool]
}

func newSettings(opts []Option) settings {
	s := settings{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// WithLogger sets the logger used for conversion diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIsEmpty replaces the emptiness predicate. T must match the Input's
// model type.
func WithIsEmpty[T any](fn func(T) bool) Option {
	return func(s *settings) {
		if fn != nil {
			s.isEmpty = fn
		}
	}
}

// WithEmptyValue overrides the value reported by EmptyValue. T must match
// the Input's model type.
func WithEmptyValue[T any](value T) Option {
	return func(s *settings) { s.empty = value }
}

// WithRequiredHandler maps the required flag onto a custom property.
func WithRequiredHandler(handler property.Handler[bool]) Option {
	return func(s *settings) { s.required = &handler }
}

func (s settings) requiredHandler(widget any) property.Handler[bool] {
	if s.required != nil {
		return *s.required
	}
	return property.Required(widget)
}

func emptinessFor[T any](s settings, empty func() T) func(T) bool {
	if s.isEmpty == nil {
		return func(value T) bool { return IsZeroOrEmpty(value, empty()) }
	}
	fn, ok := s.isEmpty.(func(T) bool)
	if !ok {
		panic(fmt.Errorf("%w: empty predicate %T does not accept %s", ErrIllegalArgument, s.isEmpty, typeName[T]()))
	}
	return fn
}

func emptyValueFor[T any](s settings, fallback func() T) func() T {
	if s.empty == nil {
		return fallback
	}
	value, ok := s.empty.(T)
	if !ok {
		panic(fmt.Errorf("%w: empty value %T is not a %s", ErrIllegalArgument, s.empty, typeName[T]()))
	}
	return func() T { return value }
}

// IsZeroOrEmpty is the default emptiness predicate: nil pointers, empty
// slices and maps, and values equal to empty are empty.
func IsZeroOrEmpty[T any](value, empty T) bool {
	rv := reflect.ValueOf(&value).Elem()
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
	case reflect.Slice, reflect.Map:
		if rv.Len() == 0 {
			return true
		}
	}
	return reflect.DeepEqual(value, empty)
}

func mustListener[T any](fn func(ValueChangeEvent[T])) {
	if fn == nil {
		panic(fmt.Errorf("%w: value change listener is nil", ErrIllegalArgument))
	}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
