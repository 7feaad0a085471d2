package service

import (
	"errors"
	"fmt"
)

// Service errors, matched with errors.Is by the transport layer
var (
	ErrValidation         = errors.New("validation failed")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid phone number or PIN")
	ErrRecordConflict     = errors.New("record id already used by another account")
	ErrStorage            = errors.New("storage failure")
)

// ValidationError names the offending field / Nomme le champ fautif
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
