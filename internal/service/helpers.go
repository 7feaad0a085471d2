package service

import (
	"regexp"
	"strings"
)

// pinPattern is exactly four ASCII digits / Exactement quatre chiffres
var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// field pairs a request field name with its value.
type field struct {
	name  string
	value string
}

// requireFields returns a ValidationError for the first empty field.
func requireFields(message string, fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return newValidationError(f.name, message)
		}
	}
	return nil
}

// isValidPIN reports whether pin is exactly four digits.
func isValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}
