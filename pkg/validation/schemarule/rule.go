// Package schemarule derives validators from OpenAPI schemas. Model values
// are normalised to their JSON shape and checked with kin-openapi, so the
// constraints an API declares (length, pattern, range, enum, format) apply to
// the bound input as well.
package schemarule

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"github.com/goliatone/go-formbind/pkg/validation"
)

// Code is the message code used for schema failures.
const Code = "validation.schema"

// Option configures a schema validator.
type Option func(*config)

type config struct {
	formats bool
	multi   bool
}

// WithFormatValidation adds "email" and "uuid" format checks on top of the
// formats kin-openapi registers (date, date-time, byte).
func WithFormatValidation() Option {
	return func(c *config) { c.formats = true }
}

// WithAllErrors reports every schema violation instead of the first one.
func WithAllErrors() Option {
	return func(c *config) { c.multi = true }
}

// For returns a validator checking values against schema. nil values and
// nil pointers are treated as absent and pass; combine with the required
// rule to reject them.
func For[T any](schema *openapi3.Schema, opts ...Option) validation.Validator[T] {
	if schema == nil {
		panic(errors.Join(validation.ErrIllegalArgument, errors.New("schemarule: schema is nil")))
	}
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var visitOpts []openapi3.SchemaValidationOption
	if cfg.formats {
		visitOpts = append(visitOpts, openapi3.EnableFormatValidation())
	}
	if cfg.multi {
		visitOpts = append(visitOpts, openapi3.MultiErrors())
	}

	return validation.ValidatorFunc[T](func(value T) error {
		normalized, present := Normalize(value, schema.Format)
		if !present {
			return nil
		}
		if err := schema.VisitJSON(normalized, visitOpts...); err != nil {
			return toFailure(err)
		}
		if cfg.formats {
			return checkFormat(schema.Format, normalized)
		}
		return nil
	})
}

// ForRef is For applied to a resolved schema reference.
func ForRef[T any](ref *openapi3.SchemaRef, opts ...Option) validation.Validator[T] {
	if ref == nil || ref.Value == nil {
		panic(errors.Join(validation.ErrIllegalArgument, errors.New("schemarule: schema reference is not resolved")))
	}
	return For[T](ref.Value, opts...)
}

// Normalize converts value into the shapes kin-openapi understands: bool,
// string, float64, []any and map[string]any. Times are rendered as
// RFC 3339, or as a plain date or clock when format is "date" or "time".
// present is false for nil values.
func Normalize(value any, format string) (normalized any, present bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	if t, ok := rv.Interface().(time.Time); ok {
		switch format {
		case "date":
			return t.Format(time.DateOnly), true
		case "time":
			return t.Format(time.TimeOnly), true
		default:
			return t.Format(time.RFC3339), true
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Slice, reflect.Array:
		items := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, ok := Normalize(rv.Index(i).Interface(), "")
			if !ok {
				item = nil
			}
			items = append(items, item)
		}
		return items, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return rv.Interface(), true
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			item, ok := Normalize(iter.Value().Interface(), "")
			if ok {
				out[iter.Key().String()] = item
			}
		}
		return out, true
	default:
		return rv.Interface(), true
	}
}

func checkFormat(format string, value any) error {
	text, ok := value.(string)
	if !ok || text == "" {
		return nil
	}
	if _, registered := openapi3.SchemaStringFormats[format]; registered {
		return nil
	}
	var valid bool
	switch format {
	case "email":
		valid = validation.Email().Validate(text) == nil
	case "uuid":
		valid = uuid.Validate(text) == nil
	default:
		return nil
	}
	if valid {
		return nil
	}
	return validation.Message(Code+".format", "String doesn't match the format %q", format)
}

func toFailure(err error) error {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		failures := make([]error, 0, len(multi))
		for _, inner := range multi {
			failures = append(failures, toFailure(inner))
		}
		return errors.Join(failures...)
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		reason := strings.TrimSpace(schemaErr.Reason)
		if reason == "" {
			reason = "value does not match the schema"
		}
		return validation.Message(Code+"."+fieldOf(schemaErr), capitalize(reason))
	}
	return validation.Message(Code, capitalize(err.Error()))
}

func fieldOf(err *openapi3.SchemaError) string {
	if field := strings.TrimSpace(err.SchemaField); field != "" {
		return field
	}
	return "value"
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
