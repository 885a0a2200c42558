// Package validation decorates an input.Input with an ordered validator
// chain, a required rule and a status handler. Failing validators never
// panic or abort the chain: every failure is collected into a Result.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-formbind/pkg/l10n"
)

// ErrIllegalArgument is wrapped by the panics raised for programmer errors
// such as registering a nil validator.
var ErrIllegalArgument = errors.New("validation: illegal argument")

// Validator checks a value. A non-nil error is a failure.
type Validator[T any] interface {
	Validate(value T) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc[T any] func(value T) error

// Validate implements Validator.
func (f ValidatorFunc[T]) Validate(value T) error {
	return f(value)
}

// MessageError is a failure whose text can be localized. Message is used
// verbatim (formatted with Args) when Code has no translation.
type MessageError struct {
	Code    string
	Message string
	Args    []any
}

// Message returns a localizable failure.
func Message(code, fallback string, args ...any) *MessageError {
	return &MessageError{Code: code, Message: fallback, Args: args}
}

func (e *MessageError) Error() string {
	if len(e.Args) == 0 {
		return e.Message
	}
	return fmt.Sprintf(e.Message, e.Args...)
}

// Localizable exposes the failure as l10n text.
func (e *MessageError) Localizable() l10n.Localizable {
	return l10n.Code(e.Code, e.Message, e.Args...)
}

// Failure is one failed validator.
type Failure struct {
	// Message is the resolved, user facing text.
	Message string
	// Code is the message code, when the validator supplied one.
	Code string
	Err  error
}

func newFailure(ctx *l10n.Context, err error) Failure {
	failure := Failure{Message: resolveMessage(ctx, err), Err: err}
	var msgErr *MessageError
	if errors.As(err, &msgErr) {
		failure.Code = msgErr.Code
	}
	return failure
}

func resolveMessage(ctx *l10n.Context, err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		parts := make([]string, 0, len(joined.Unwrap()))
		for _, inner := range joined.Unwrap() {
			parts = append(parts, resolveMessage(ctx, inner))
		}
		return strings.Join(parts, "\n")
	}
	var msgErr *MessageError
	if errors.As(err, &msgErr) {
		return msgErr.Localizable().Resolve(ctx)
	}
	return err.Error()
}

// Status is the validation state of an input.
type Status int

const (
	NotValidated Status = iota
	Valid
	Invalid
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "not-validated"
	}
}

// Result aggregates the failures of one validation run, in validator order.
type Result struct {
	Status   Status
	Failures []Failure
}

// IsValid reports whether the run produced no failures.
func (r Result) IsValid() bool {
	return r.Status == Valid
}

// Messages returns the trimmed, de-duplicated failure messages.
func (r Result) Messages() []string {
	messages := make([]string, 0, len(r.Failures))
	for _, failure := range r.Failures {
		messages = append(messages, failure.Message)
	}
	return normalizeMessages(messages)
}

// Err joins the failures into a single error, or returns nil.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, failure := range r.Failures {
		errs = append(errs, failure.Err)
	}
	return errors.Join(errs...)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mustNotNil(value any, what string) {
	if isNil(value) {
		panic(fmt.Errorf("%w: %s is nil", ErrIllegalArgument, what))
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
