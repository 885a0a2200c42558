// Package convert maps between the value a widget natively holds (the
// presentation type) and the logical value exposed to callers (the model
// type). Converters are pure; locale-aware converters keep their
// configuration and regenerate their validation pattern when it changes.
package convert

// Converter maps presentation values S to model values T and back.
//
// ToModel fails with an error wrapping ErrConversion when the presentation
// value cannot be represented. ToPresentation fails only for model values the
// current configuration cannot represent (for example a negative number when
// negatives are disallowed). For representable values
// ToModel(ToPresentation(t)) == t, except for documented lossy cases.
type Converter[S, T any] interface {
	ToModel(S) (T, error)
	ToPresentation(T) (S, error)
}

// Patterned converters expose a regular expression describing the
// presentation values they accept, suitable for a widget's native pattern.
type Patterned interface {
	ValidationPattern() string
}

// Observable converters notify when their configuration (and therefore
// their validation pattern) changes.
type Observable interface {
	OnConfigChange(func())
}

// PatternOf returns the validation pattern of c, or "" when c does not
// declare one.
func PatternOf(c any) string {
	if p, ok := c.(Patterned); ok {
		return p.ValidationPattern()
	}
	return ""
}

// Func builds a Converter from two functions.
func Func[S, T any](toModel func(S) (T, error), toPresentation func(T) (S, error)) Converter[S, T] {
	return funcConverter[S, T]{toModel: toModel, toPresentation: toPresentation}
}

type funcConverter[S, T any] struct {
	toModel        func(S) (T, error)
	toPresentation func(T) (S, error)
}

func (c funcConverter[S, T]) ToModel(value S) (T, error) {
	if c.toModel == nil {
		var zero T
		return zero, newError(value, "model", "", errMissingFunc)
	}
	return c.toModel(value)
}

func (c funcConverter[S, T]) ToPresentation(value T) (S, error) {
	if c.toPresentation == nil {
		var zero S
		return zero, newError(value, "presentation", "", errMissingFunc)
	}
	return c.toPresentation(value)
}

// Identity returns a converter that passes values through unchanged.
func Identity[T any]() Converter[T, T] {
	return identity[T]{}
}

type identity[T any] struct{}

func (identity[T]) ToModel(value T) (T, error)        { return value, nil }
func (identity[T]) ToPresentation(value T) (T, error) { return value, nil }

// Reverse swaps the direction of c.
func Reverse[S, T any](c Converter[S, T]) Converter[T, S] {
	return reversed[S, T]{inner: c}
}

type reversed[S, T any] struct {
	inner Converter[S, T]
}

func (r reversed[S, T]) ToModel(value T) (S, error)        { return r.inner.ToPresentation(value) }
func (r reversed[S, T]) ToPresentation(value S) (T, error) { return r.inner.ToModel(value) }

// Chain composes first (S<->M) and second (M<->T) into S<->T. The validation
// pattern, when present, is taken from first since it faces the widget.
func Chain[S, M, T any](first Converter[S, M], second Converter[M, T]) Converter[S, T] {
	return chained[S, M, T]{first: first, second: second}
}

type chained[S, M, T any] struct {
	first  Converter[S, M]
	second Converter[M, T]
}

func (c chained[S, M, T]) ToModel(value S) (T, error) {
	mid, err := c.first.ToModel(value)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.second.ToModel(mid)
}

func (c chained[S, M, T]) ToPresentation(value T) (S, error) {
	mid, err := c.second.ToPresentation(value)
	if err != nil {
		var zero S
		return zero, err
	}
	return c.first.ToPresentation(mid)
}

func (c chained[S, M, T]) ValidationPattern() string {
	return PatternOf(c.first)
}
