package validation

import (
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/l10n"
	"github.com/goliatone/go-formbind/pkg/native"
)

// Message codes used by the built-in rules.
const (
	CodeRequired   = "validation.required"
	CodeConversion = "validation.conversion"
)

// DefaultRequiredMessage is shown when a required input is empty and no
// custom message or validator was supplied.
var DefaultRequiredMessage = l10n.Code(CodeRequired, "Value is required")

var conversionMessage = l10n.Code(CodeConversion, "Invalid value")

// StatusHandler receives the outcome of every validation run. component is
// the native widget of the validated input.
type StatusHandler func(component any, result Result)

// DefaultStatusHandler flags widgets implementing native.HasValidation and
// shows the joined failure messages.
func DefaultStatusHandler(component any, result Result) {
	widget, ok := component.(native.HasValidation)
	if !ok {
		return
	}
	widget.SetInvalid(result.Status == Invalid)
	widget.SetErrorMessage(strings.Join(result.Messages(), "\n"))
}

// Option configures a validatable Input.
type Option func(*options)

type options struct {
	ctx    *l10n.Context
	logger *slog.Logger
}

// WithContext sets the localization context used for failure messages.
func WithContext(ctx *l10n.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithLogger sets the logger used to trace validation runs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Input decorates an input.Input with validation. It satisfies
// input.Input itself, so it can be used wherever the plain input was.
//
// Status starts at NotValidated. With validate-on-change enabled every value
// change runs Validate; otherwise a change resets the status to
// NotValidated until the next explicit Validate.
type Input[T any] struct {
	input.Input[T]

	validators        []Validator[T]
	requiredValidator Validator[T]
	handler           StatusHandler
	validateOnChange  bool
	status            Status
	last              Result
	ctx               *l10n.Context
	logger            *slog.Logger
}

// New wraps in.
func New[T any](in input.Input[T], opts ...Option) *Input[T] {
	mustNotNil(in, "input")
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	v := &Input[T]{
		Input:   in,
		handler: DefaultStatusHandler,
		ctx:     o.ctx,
		logger:  o.logger,
	}
	in.AddValueChangeListener(v.onValueChange)
	return v
}

// AddValidator appends validator to the chain.
func (v *Input[T]) AddValidator(validator Validator[T]) *Input[T] {
	mustNotNil(validator, "validator")
	v.validators = append(v.validators, validator)
	return v
}

// SetRequired toggles the required rule, which runs before every other
// validator.
func (v *Input[T]) SetRequired(required bool) {
	v.Input.SetRequired(required)
	v.reset()
}

// SetRequiredValidator replaces the default required rule. It does not make
// the input required by itself.
func (v *Input[T]) SetRequiredValidator(validator Validator[T]) {
	mustNotNil(validator, "required validator")
	v.requiredValidator = validator
}

// SetStatusHandler replaces the status handler.
func (v *Input[T]) SetStatusHandler(handler StatusHandler) {
	mustNotNil(handler, "status handler")
	v.handler = handler
}

// SetValidateOnValueChange toggles validation on every value change.
func (v *Input[T]) SetValidateOnValueChange(on bool) {
	v.validateOnChange = on
}

// ValidateOnValueChange reports the validate-on-change policy.
func (v *Input[T]) ValidateOnValueChange() bool { return v.validateOnChange }

// Status returns the status of the last run.
func (v *Input[T]) Status() Status { return v.status }

// LastResult returns the result of the last run.
func (v *Input[T]) LastResult() Result { return v.last }

// IsValid runs Validate and reports the outcome.
func (v *Input[T]) IsValid() bool { return v.Validate().IsValid() }

// Unwrap returns the decorated input.
func (v *Input[T]) Unwrap() input.Input[T] { return v.Input }

// Validate runs the chain against the current value, collects every
// failure in order and reports the result to the status handler.
func (v *Input[T]) Validate() Result {
	value := v.Value()
	var failures []Failure

	chain := v.chain()
	if input.HasConversionError(v.Input) {
		failures = append(failures, Failure{
			Message: conversionMessage.Resolve(v.ctx),
			Code:    CodeConversion,
			Err:     Message(CodeConversion, conversionMessage.Message),
		})
		// Text that failed to convert is not empty.
		chain = v.validators
	}
	for _, validator := range chain {
		if err := validator.Validate(value); err != nil {
			failures = append(failures, newFailure(v.ctx, err))
		}
	}

	result := Result{Status: Valid, Failures: failures}
	if len(failures) > 0 {
		result.Status = Invalid
	}
	v.status = result.Status
	v.last = result
	v.logger.Debug("validation: run",
		slog.String("status", result.Status.String()),
		slog.Int("failures", len(failures)),
	)
	v.handler(v.Component(), result)
	return result
}

func (v *Input[T]) chain() []Validator[T] {
	if !v.IsRequired() {
		return v.validators
	}
	required := v.requiredValidator
	if required == nil {
		required = Required[T](v.Input, DefaultRequiredMessage)
	}
	chain := make([]Validator[T], 0, len(v.validators)+1)
	chain = append(chain, required)
	return append(chain, v.validators...)
}

func (v *Input[T]) onValueChange(input.ValueChangeEvent[T]) {
	if v.validateOnChange {
		v.Validate()
		return
	}
	v.reset()
}

func (v *Input[T]) reset() {
	v.status = NotValidated
	v.last = Result{}
}

// Required returns a validator failing with message whenever in is empty.
// An empty message falls back to DefaultRequiredMessage.
func Required[T any](in input.Input[T], message l10n.Localizable) Validator[T] {
	mustNotNil(in, "input")
	if message.IsZero() {
		message = DefaultRequiredMessage
	}
	return ValidatorFunc[T](func(T) error {
		if in.IsEmpty() {
			return &MessageError{Code: message.Code, Message: message.Message, Args: message.Args}
		}
		return nil
	})
}
