// Package form groups inputs under dotted paths so a whole form can be
// read, filled and validated as one nested value map.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/native"
	"github.com/goliatone/go-formbind/pkg/validation"
)

var (
	// ErrDuplicatePath is returned when a path is bound twice.
	ErrDuplicatePath = errors.New("form: path already bound")
	// ErrInvalidPath is returned for blank paths.
	ErrInvalidPath = errors.New("form: invalid path")
	// ErrTypeMismatch is returned when SetValues gets a value the input
	// cannot hold.
	ErrTypeMismatch = errors.New("form: value type mismatch")
	// ErrUnknownPath is returned when a path has no bound field.
	ErrUnknownPath = errors.New("form: path not bound")
)

// Field is a type-erased binding of one input.
type Field interface {
	Path() string
	Value() any
	SetValue(any) error
	Clear()
	Component() any
}

// Validatable is implemented by fields whose input validates.
type Validatable interface {
	Validate() validation.Result
}

// Condition decides whether a field is active given the current values.
type Condition interface {
	Eval(values map[string]any) (bool, error)
}

// Group is an ordered set of fields addressed by dotted paths.
//
// A field guarded by a Condition is active only while the condition holds.
// Inactive fields are disabled, left out of Values and skipped by Validate.
type Group struct {
	fields     []Field
	index      map[string]Field
	errors     map[string][]string
	conditions map[string]Condition
	inactive   map[string]bool
	refreshing bool
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{
		index:      make(map[string]Field),
		errors:     make(map[string][]string),
		conditions: make(map[string]Condition),
		inactive:   make(map[string]bool),
	}
}

// Bind adds in under path. When in is a *validation.Input the field takes
// part in Validate.
func Bind[T any](g *Group, path string, in input.Input[T]) error {
	if g == nil {
		return errors.New("form: group is nil")
	}
	path = strings.TrimSpace(path)
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") || strings.Contains(path, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if in == nil {
		return fmt.Errorf("form: input for %q is nil", path)
	}
	if _, exists := g.index[path]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicatePath, path)
	}
	f := &field[T]{path: path, in: in}
	g.fields = append(g.fields, f)
	g.index[path] = f
	in.AddValueChangeListener(func(input.ValueChangeEvent[T]) { g.Refresh() })
	return nil
}

// MustBind is Bind that panics on error.
func MustBind[T any](g *Group, path string, in input.Input[T]) {
	if err := Bind(g, path, in); err != nil {
		panic(err)
	}
}

// Fields returns the fields in binding order.
func (g *Group) Fields() []Field {
	if g == nil {
		return nil
	}
	return append([]Field(nil), g.fields...)
}

// Field returns the field bound at path.
func (g *Group) Field(path string) (Field, bool) {
	if g == nil {
		return nil, false
	}
	f, ok := g.index[path]
	return f, ok
}

// SetCondition guards the field at path with cond and re-evaluates every
// condition. A nil cond removes the guard.
func (g *Group) SetCondition(path string, cond Condition) error {
	if g == nil {
		return errors.New("form: group is nil")
	}
	if _, ok := g.index[path]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}
	if cond == nil {
		delete(g.conditions, path)
		delete(g.inactive, path)
		setEnabled(g.index[path], true)
		return nil
	}
	g.conditions[path] = cond
	return g.Refresh()
}

// Refresh re-evaluates the conditions against all current values and
// enables or disables the guarded fields. A condition that fails to
// evaluate leaves its field inactive; the failures are joined.
func (g *Group) Refresh() error {
	if g == nil || len(g.conditions) == 0 || g.refreshing {
		return nil
	}
	g.refreshing = true
	defer func() { g.refreshing = false }()

	values := g.collect(false)
	var errs []error
	for _, f := range g.fields {
		cond, ok := g.conditions[f.Path()]
		if !ok {
			continue
		}
		active, err := cond.Eval(values)
		if err != nil {
			errs = append(errs, fmt.Errorf("form: condition for %s: %w", f.Path(), err))
			active = false
		}
		g.inactive[f.Path()] = !active
		setEnabled(f, active)
	}
	return errors.Join(errs...)
}

// IsActive reports whether the field at path is bound and not switched off
// by its condition.
func (g *Group) IsActive(path string) bool {
	if g == nil {
		return false
	}
	_, ok := g.index[path]
	return ok && !g.inactive[path]
}

// Values collects the model values of the active fields into a nested map.
func (g *Group) Values() map[string]any {
	return g.collect(true)
}

func (g *Group) collect(activeOnly bool) map[string]any {
	out := make(map[string]any)
	if g == nil {
		return out
	}
	for _, f := range g.fields {
		if activeOnly && g.inactive[f.Path()] {
			continue
		}
		// A field whose path conflicts with the container an earlier
		// field created is skipped.
		_ = SetPath(out, f.Path(), f.Value())
	}
	return out
}

func setEnabled(f Field, enabled bool) {
	if widget, ok := f.Component().(native.HasEnabled); ok {
		widget.SetEnabled(enabled)
	}
}

// SetValues fills the fields whose path is present in values. Fields
// without a value are left untouched. Every failure is reported.
func (g *Group) SetValues(values map[string]any) error {
	if g == nil {
		return errors.New("form: group is nil")
	}
	var errs []error
	for _, f := range g.fields {
		value, ok := GetPath(values, f.Path())
		if !ok {
			continue
		}
		if err := f.SetValue(value); err != nil {
			errs = append(errs, fmt.Errorf("form: %s: %w", f.Path(), err))
		}
	}
	return errors.Join(errs...)
}

// Clear resets every field and drops the recorded errors.
func (g *Group) Clear() {
	if g == nil {
		return
	}
	for _, f := range g.fields {
		f.Clear()
	}
	clear(g.errors)
}

// Validate runs every active validatable field and records the messages by
// path. It reports whether all fields are valid.
func (g *Group) Validate() bool {
	if g == nil {
		return true
	}
	clear(g.errors)
	for _, f := range g.fields {
		v, ok := f.(Validatable)
		if !ok || g.inactive[f.Path()] {
			continue
		}
		if result := v.Validate(); !result.IsValid() {
			g.errors[f.Path()] = result.Messages()
		}
	}
	return len(g.errors) == 0
}

// Errors returns the messages recorded by the last Validate.
func (g *Group) Errors() map[string][]string {
	if g == nil {
		return nil
	}
	out := make(map[string][]string, len(g.errors))
	for path, messages := range g.errors {
		out[path] = append([]string(nil), messages...)
	}
	return out
}

// ErrorsFor returns the messages of path from the last Validate.
func (g *Group) ErrorsFor(path string) []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.errors[path]...)
}

type field[T any] struct {
	path string
	in   input.Input[T]
}

func (f *field[T]) Path() string          { return f.path }
func (f *field[T]) Value() any            { return f.in.Value() }
func (f *field[T]) Clear()                { f.in.Clear() }
func (f *field[T]) Component() any        { return f.in.Component() }
func (f *field[T]) Input() input.Input[T] { return f.in }

func (f *field[T]) SetValue(value any) error {
	typed, err := coerce[T](value)
	if err != nil {
		return err
	}
	return f.in.SetValue(typed)
}

func (f *field[T]) Validate() validation.Result {
	if v, ok := f.in.(Validatable); ok {
		return v.Validate()
	}
	return validation.Result{Status: validation.Valid}
}

// coerce converts a decoded value (JSON numbers, []any lists, plain values
// for pointer targets) to T.
func coerce[T any](value any) (T, error) {
	var zero T
	if value == nil {
		return zero, nil
	}
	if typed, ok := value.(T); ok {
		return typed, nil
	}
	target := reflect.TypeFor[T]()
	converted, ok := coerceValue(reflect.ValueOf(value), target)
	if !ok {
		return zero, fmt.Errorf("%w: %T is not a %s", ErrTypeMismatch, value, target)
	}
	return converted.Interface().(T), nil
}

func coerceValue(value reflect.Value, target reflect.Type) (reflect.Value, bool) {
	if value.Type() == target {
		return value, true
	}
	if target == timeType && value.Kind() == reflect.String {
		return parseTime(value.String())
	}
	switch target.Kind() {
	case reflect.Pointer:
		if value.Kind() == reflect.Pointer {
			if value.IsNil() {
				return reflect.Zero(target), true
			}
			value = value.Elem()
		}
		elem, ok := coerceValue(value, target.Elem())
		if !ok {
			return reflect.Value{}, false
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(elem)
		return ptr, true
	case reflect.Slice:
		if value.Kind() != reflect.Slice {
			return reflect.Value{}, false
		}
		out := reflect.MakeSlice(target, 0, value.Len())
		for i := 0; i < value.Len(); i++ {
			item := value.Index(i)
			if item.Kind() == reflect.Interface {
				item = item.Elem()
			}
			if !item.IsValid() {
				return reflect.Value{}, false
			}
			converted, ok := coerceValue(item, target.Elem())
			if !ok {
				return reflect.Value{}, false
			}
			out = reflect.Append(out, converted)
		}
		return out, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !isNumber(value.Kind()) {
			return reflect.Value{}, false
		}
		if isFloat(value.Kind()) && value.Float() != float64(int64(value.Float())) {
			return reflect.Value{}, false
		}
		converted := value.Convert(target)
		if !reflect.DeepEqual(converted.Convert(value.Type()).Interface(), value.Interface()) {
			return reflect.Value{}, false
		}
		return converted, true
	case reflect.Float32, reflect.Float64:
		if !isNumber(value.Kind()) {
			return reflect.Value{}, false
		}
		return value.Convert(target), true
	case reflect.Interface:
		if value.Type().Implements(target) {
			return value.Convert(target), true
		}
		return reflect.Value{}, false
	}
	if value.Type().ConvertibleTo(target) && value.Kind() == target.Kind() {
		return value.Convert(target), true
	}
	return reflect.Value{}, false
}

func isNumber(kind reflect.Kind) bool {
	return kind >= reflect.Int && kind <= reflect.Float64
}

func isFloat(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}

var timeType = reflect.TypeFor[time.Time]()

var timeLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly, time.TimeOnly, "15:04"}

func parseTime(text string) (reflect.Value, bool) {
	text = strings.TrimSpace(text)
	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return reflect.ValueOf(parsed), true
		}
	}
	return reflect.Value{}, false
}
