package convert

import (
	"errors"
	"fmt"
)

// ErrConversion is wrapped by every error a converter returns.
var ErrConversion = errors.New("convert: conversion failed")

var (
	errMissingFunc      = errors.New("conversion function is not configured")
	errPatternMismatch  = errors.New("value does not match the expected pattern")
	errNegative         = errors.New("negative values are not allowed")
	errOutOfRange       = errors.New("value out of range")
	errUnsupportedValue = errors.New("unsupported value")
)

// ConversionError describes a value that could not be converted.
type ConversionError struct {
	// Value is the offending input.
	Value any
	// Target names the direction: "model" or "presentation".
	Target string
	// Pattern is the validation pattern in effect, if any.
	Pattern string
	Err     error
}

func newError(value any, target, pattern string, err error) *ConversionError {
	return &ConversionError{Value: value, Target: target, Pattern: pattern, Err: err}
}

func (e *ConversionError) Error() string {
	if e == nil {
		return ErrConversion.Error()
	}
	msg := fmt.Sprintf("convert: cannot convert %v to %s", e.Value, e.Target)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrConversion so callers can use errors.Is without caring
// about the concrete error.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

func (e *ConversionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
