package input

import (
	"fmt"

	"github.com/goliatone/go-formbind/pkg/adapter"
)

// AdapterHost is implemented by every Input regardless of its model type.
type AdapterHost interface {
	Adapters() *adapter.Registry
}

// ConversionState is implemented by inputs composed with From.
type ConversionState interface {
	ConversionInvalid() bool
}

// RegisterAdapter exposes A on in. The factory runs lazily on the first As
// call and its result is reused afterwards. A later registration for the
// same A replaces the earlier one.
func RegisterAdapter[T, A any](in Input[T], factory func(Input[T]) A) {
	if in == nil {
		panic(fmt.Errorf("%w: input is nil", ErrIllegalArgument))
	}
	if factory == nil {
		panic(fmt.Errorf("%w: adapter factory is nil", ErrIllegalArgument))
	}
	err := adapter.Register(in.Adapters(), func() A { return factory(in) })
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrIllegalArgument, err))
	}
}

// As returns the adapter of type A registered on in.
func As[A any](in AdapterHost) (A, bool) {
	if in == nil {
		var zero A
		return zero, false
	}
	return adapter.Get[A](in.Adapters())
}

// HasConversionError reports whether in holds client text its converter
// rejected.
func HasConversionError(in any) bool {
	state, ok := in.(ConversionState)
	return ok && state.ConversionInvalid()
}
