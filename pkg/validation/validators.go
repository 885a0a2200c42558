package validation

import (
	"cmp"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formbind/pkg/l10n"
)

// Length and format rules accept the empty string so that optional inputs
// stay valid; pair them with the required rule to reject empty values.

// NotNil fails for nil pointers.
func NotNil[P any]() Validator[*P] {
	return ValidatorFunc[*P](func(value *P) error {
		if value == nil {
			return Message(CodeRequired, "Value is required")
		}
		return nil
	})
}

// NotBlank fails for empty or whitespace-only strings.
func NotBlank() Validator[string] {
	return ValidatorFunc[string](func(value string) error {
		if strings.TrimSpace(value) == "" {
			return Message("validation.not_blank", "Value must not be blank")
		}
		return nil
	})
}

// MinLength fails for strings shorter than minimum runes.
func MinLength(minimum int) Validator[string] {
	return ValidatorFunc[string](func(value string) error {
		if value != "" && utf8.RuneCountInString(value) < minimum {
			return Message("validation.min_length", "Use at least %d characters", minimum)
		}
		return nil
	})
}

// MaxLength fails for strings longer than maximum runes.
func MaxLength(maximum int) Validator[string] {
	return ValidatorFunc[string](func(value string) error {
		if utf8.RuneCountInString(value) > maximum {
			return Message("validation.max_length", "Use at most %d characters", maximum)
		}
		return nil
	})
}

// Pattern fails for strings not fully matching expr. An invalid expression
// panics.
func Pattern(expr string) Validator[string] {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		panic(fmt.Errorf("%w: pattern %q: %w", ErrIllegalArgument, expr, err))
	}
	return ValidatorFunc[string](func(value string) error {
		if value != "" && !re.MatchString(value) {
			return Message("validation.pattern", "Value has an invalid format")
		}
		return nil
	})
}

// Email fails for strings that are not a bare e-mail address.
func Email() Validator[string] {
	return ValidatorFunc[string](func(value string) error {
		if value == "" {
			return nil
		}
		invalid := Message("validation.email", "Enter a valid e-mail address")
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return invalid
		}
		domain := addr.Address[strings.LastIndex(addr.Address, "@")+1:]
		if !strings.Contains(domain, ".") {
			return invalid
		}
		return nil
	})
}

// Range fails for values outside [minimum, maximum].
func Range[N cmp.Ordered](minimum, maximum N) Validator[N] {
	return ValidatorFunc[N](func(value N) error {
		if value < minimum || value > maximum {
			return Message("validation.range", "Value must be between %v and %v", minimum, maximum)
		}
		return nil
	})
}

// In fails for values not listed in allowed.
func In[T comparable](allowed ...T) Validator[T] {
	return ValidatorFunc[T](func(value T) error {
		if !slices.Contains(allowed, value) {
			return Message("validation.in", "Value is not allowed")
		}
		return nil
	})
}

// Func adapts a predicate; message is used when ok returns false.
func Func[T any](ok func(T) bool, message l10n.Localizable) Validator[T] {
	mustNotNil(ok, "predicate")
	return ValidatorFunc[T](func(value T) error {
		if ok(value) {
			return nil
		}
		return &MessageError{Code: message.Code, Message: message.Message, Args: message.Args}
	})
}

// Deref lifts validator to pointers. nil passes.
func Deref[T any](validator Validator[T]) Validator[*T] {
	mustNotNil(validator, "validator")
	return ValidatorFunc[*T](func(value *T) error {
		if value == nil {
			return nil
		}
		return validator.Validate(*value)
	})
}

// Each applies validator to every element and reports the first failure.
func Each[T any](validator Validator[T]) Validator[[]T] {
	mustNotNil(validator, "validator")
	return ValidatorFunc[[]T](func(values []T) error {
		for _, value := range values {
			if err := validator.Validate(value); err != nil {
				return err
			}
		}
		return nil
	})
}

// All runs every validator and joins their failures.
func All[T any](validators ...Validator[T]) Validator[T] {
	for _, validator := range validators {
		mustNotNil(validator, "validator")
	}
	return ValidatorFunc[T](func(value T) error {
		var errs []error
		for _, validator := range validators {
			if err := validator.Validate(value); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
