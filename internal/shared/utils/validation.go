package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Text limits (in characters)
const (
	MaxMessageSize    = 16 * 1024 // question or analysis instructions
	MaxQueryLength    = 1024
	MaxLocationLength = 256
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil // Optional field, empty is OK
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Null bytes never reach a flow
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateMessage validates free text forwarded to a flow
func ValidateMessage(message, fieldName string, required bool) error {
	if err := ValidateString(message, fieldName, 1, MaxMessageSize, required); err != nil {
		return err
	}
	if !utf8.ValidString(message) {
		return fmt.Errorf("%s must be valid UTF-8", fieldName)
	}
	return nil
}

// ValidateHospitalSearch validates a hospital query and its optional location
func ValidateHospitalSearch(query, location string) error {
	if err := ValidateString(query, "query", 1, MaxQueryLength, true); err != nil {
		return err
	}
	return ValidateString(location, "location", 1, MaxLocationLength, false)
}
