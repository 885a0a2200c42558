package validation

import (
	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/l10n"
)

// Configurator accumulates validation settings while a builder is being
// configured. Nothing touches an input until Configure runs.
type Configurator[T any] struct {
	required          bool
	requiredMessage   l10n.Localizable
	requiredValidator Validator[T]
	validators        []Validator[T]
	handler           StatusHandler
	validateOnChange  *bool
}

// Required marks the input as required with the default message.
func (c *Configurator[T]) Required() {
	c.required = true
}

// RequiredMessage marks the input as required with a custom message.
func (c *Configurator[T]) RequiredMessage(message l10n.Localizable) {
	c.required = true
	c.requiredMessage = message
}

// RequiredValidator marks the input as required with a custom rule.
func (c *Configurator[T]) RequiredValidator(validator Validator[T]) {
	mustNotNil(validator, "required validator")
	c.required = true
	c.requiredValidator = validator
}

// WithValidator appends validator to the chain.
func (c *Configurator[T]) WithValidator(validator Validator[T]) {
	mustNotNil(validator, "validator")
	c.validators = append(c.validators, validator)
}

// StatusHandler replaces the default status handler.
func (c *Configurator[T]) StatusHandler(handler StatusHandler) {
	mustNotNil(handler, "status handler")
	c.handler = handler
}

// ValidateOnValueChange sets the validate-on-change policy.
func (c *Configurator[T]) ValidateOnValueChange(on bool) {
	c.validateOnChange = &on
}

// IsRequired reports whether a required rule was configured.
func (c *Configurator[T]) IsRequired() bool {
	return c.required
}

// Configure wraps in and installs the accumulated settings. When required,
// the required rule defaults to Required bound to in.
func (c *Configurator[T]) Configure(in input.Input[T], opts ...Option) *Input[T] {
	v := New(in, opts...)
	c.Apply(v)
	return v
}

// Apply installs the accumulated settings on an existing validatable input.
func (c *Configurator[T]) Apply(v *Input[T]) {
	mustNotNil(v, "validatable input")
	if c.handler != nil {
		v.SetStatusHandler(c.handler)
	}
	if c.validateOnChange != nil {
		v.SetValidateOnValueChange(*c.validateOnChange)
	}
	for _, validator := range c.validators {
		v.AddValidator(validator)
	}
	if !c.required {
		return
	}
	switch {
	case c.requiredValidator != nil:
		v.SetRequiredValidator(c.requiredValidator)
	case !c.requiredMessage.IsZero():
		v.SetRequiredValidator(Required(v.Unwrap(), c.requiredMessage))
	}
	v.SetRequired(true)
}
