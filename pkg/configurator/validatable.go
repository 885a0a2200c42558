package configurator

import (
	"github.com/goliatone/go-formbind/pkg/l10n"
	"github.com/goliatone/go-formbind/pkg/validation"
)

// ValidatableConfigurator accumulates validation settings for the input a
// builder produces. Nothing is installed until the builder builds.
type ValidatableConfigurator[T, B any] struct {
	owner  B
	config *validation.Configurator[T]
}

func NewValidatable[T, B any](owner B) ValidatableConfigurator[T, B] {
	return ValidatableConfigurator[T, B]{owner: owner, config: &validation.Configurator[T]{}}
}

// Required marks the input as required with the default message.
func (c *ValidatableConfigurator[T, B]) Required() B {
	c.config.Required()
	return c.owner
}

// RequiredMessage marks the input as required with literal message text.
func (c *ValidatableConfigurator[T, B]) RequiredMessage(message string) B {
	c.config.RequiredMessage(l10n.Text(message))
	return c.owner
}

// RequiredMessageCode marks the input as required with a localized message.
func (c *ValidatableConfigurator[T, B]) RequiredMessageCode(code, fallback string, args ...any) B {
	c.config.RequiredMessage(l10n.Code(code, fallback, args...))
	return c.owner
}

// RequiredValidator marks the input as required with a custom rule.
func (c *ValidatableConfigurator[T, B]) RequiredValidator(validator validation.Validator[T]) B {
	c.config.RequiredValidator(validator)
	return c.owner
}

// Validator appends a validator.
func (c *ValidatableConfigurator[T, B]) Validator(validator validation.Validator[T]) B {
	c.config.WithValidator(validator)
	return c.owner
}

func (c *ValidatableConfigurator[T, B]) StatusHandler(handler validation.StatusHandler) B {
	c.config.StatusHandler(handler)
	return c.owner
}

func (c *ValidatableConfigurator[T, B]) ValidateOnValueChange(on bool) B {
	c.config.ValidateOnValueChange(on)
	return c.owner
}

// Validation exposes the accumulated configuration.
func (c *ValidatableConfigurator[T, B]) Validation() *validation.Configurator[T] {
	return c.config
}
