// Package validation formats errors for values outside a closed set.
package validation

import (
	"fmt"
	"strings"
)

// FormatValidValues joins values for error messages.
func FormatValidValues[T fmt.Stringer](values []T) string {
	formatted := make([]string, 0, len(values))
	for _, value := range values {
		formatted = append(formatted, value.String())
	}
	return strings.Join(formatted, ", ")
}

// FormatInvalidValueError wraps base with the rejected input and the values
// that would have been accepted.
func FormatInvalidValueError[T fmt.Stringer](base error, value string, valid []T) error {
	return fmt.Errorf("%w: %q (valid: %s)", base, value, FormatValidValues(valid))
}
