package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyID is returned when a resource id is blank.
var ErrEmptyID = errors.New("id cannot be empty")

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateIDPresent ensures an id path segment is present.
func ValidateIDPresent(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s: %w", field, ErrEmptyID)
	}
	return nil
}

// NormalizeCurrency upper-cases a currency code and checks it is three
// letters. Empty input stays empty so callers can apply their default.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", nil
	}
	if !currencyCode.MatchString(code) {
		return "", fmt.Errorf("invalid currency code %q", code)
	}
	return code, nil
}
