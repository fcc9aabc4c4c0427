// Package validation provides composable field validators for the request
// security pipeline. A Validator returns an empty string when the value is
// acceptable and a user-facing message otherwise.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Required validates that a field is not empty and does not exceed maxLen characters.
// Uses rune count for proper Unicode support.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required"
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters", fieldName, maxLen)
		}
		return ""
	}
}

// RequiredRange validates that a field is not empty and is between minLen and maxLen characters.
// Uses rune count for proper Unicode support.
func RequiredRange(fieldName string, minLen, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required"
		}
		n := utf8.RuneCountInString(v)
		if n < minLen || n > maxLen {
			return fmt.Sprintf("%s must be between %d and %d characters", fieldName, minLen, maxLen)
		}
		return ""
	}
}

// Pattern validates that a non-empty field matches the provided regular expression.
func Pattern(fieldName, message string, re *regexp.Regexp) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !re.MatchString(v) {
			if message != "" {
				return message
			}
			return fieldName + " has an invalid format"
		}
		return ""
	}
}

// Email validates that a field is a well-formed email address.
func Email(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required"
		}
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return fieldName + " must be a valid email address"
		}
		return ""
	}
}

// PasswordComplexity mirrors the classic complexity rule: a length window
// plus a minimum number of satisfied character categories out of lowercase,
// uppercase, digit and symbol.
type PasswordComplexity struct {
	Min              int
	Max              int
	RequirementCount int
}

// DefaultPasswordComplexity is the sign-up password policy.
var DefaultPasswordComplexity = PasswordComplexity{Min: 8, Max: 30, RequirementCount: 4}

// Validate returns a Validator enforcing the policy. The message names the
// missing categories so the user knows what to add.
func (p PasswordComplexity) Validate(fieldName string) Validator {
	return func(v string) string {
		n := utf8.RuneCountInString(v)
		if n < p.Min || n > p.Max {
			return fmt.Sprintf("%s must be between %d and %d characters", fieldName, p.Min, p.Max)
		}

		var lower, upper, digit, symbol bool
		for _, r := range v {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			default:
				symbol = true
			}
		}

		met := 0
		var missing []string
		for _, c := range []struct {
			ok   bool
			name string
		}{
			{lower, "a lowercase letter"},
			{upper, "an uppercase letter"},
			{digit, "a digit"},
			{symbol, "a symbol"},
		} {
			if c.ok {
				met++
			} else {
				missing = append(missing, c.name)
			}
		}
		if met < p.RequirementCount {
			return fmt.Sprintf("%s must contain %s", fieldName, strings.Join(missing, ", "))
		}
		return ""
	}
}
