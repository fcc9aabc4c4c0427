package validation

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := Required("First name", 5)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"valid", "Alice", ""},
		{"empty", "", "First name is required"},
		{"whitespace only", "   ", "First name is required"},
		{"too long", "Alicia", "First name cannot exceed 5 characters"},
		{"trimmed before length check", "  Bob  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v(tt.value))
		})
	}
}

func TestRequiredRange(t *testing.T) {
	v := RequiredRange("Code", 3, 6)

	assert.Equal(t, "Code is required", v(""))
	assert.Equal(t, "Code must be between 3 and 6 characters", v("ab"))
	assert.Equal(t, "Code must be between 3 and 6 characters", v("abcdefg"))
	assert.Empty(t, v("abc"))
	assert.Empty(t, v("abcdef"))
}

func TestPattern(t *testing.T) {
	re := regexp.MustCompile(`^[a-z A-Z]+$`)
	v := Pattern("First name", "First name must contain english characters (a-z, A-Z) only", re)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"letters", "Alice", ""},
		{"letters with space", "Mary Jane", ""},
		{"empty passes", "", ""},
		{"digits rejected", "Alice2", "First name must contain english characters (a-z, A-Z) only"},
		{"symbols rejected", "Al!ce", "First name must contain english characters (a-z, A-Z) only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v(tt.value))
		})
	}
}

func TestPattern_DefaultMessage(t *testing.T) {
	v := Pattern("Token", "", regexp.MustCompile(`^[0-9]+$`))
	assert.Equal(t, "Token has an invalid format", v("abc"))
}

func TestEmail(t *testing.T) {
	v := Email("Email address")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"valid", "user@example.com", ""},
		{"valid with subdomain", "user@mail.example.com", ""},
		{"empty", "", "Email address is required"},
		{"missing at", "userexample.com", "Email address must be a valid email address"},
		{"missing domain", "user@", "Email address must be a valid email address"},
		{"display name rejected", "Alice <user@example.com>", "Email address must be a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v(tt.value))
		})
	}
}

func TestPasswordComplexity(t *testing.T) {
	v := DefaultPasswordComplexity.Validate("Password")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"all categories", "Abcd123!", ""},
		{"too short", "Ab1!", "Password must be between 8 and 30 characters"},
		{"too long", strings.Repeat("Ab1!", 8), "Password must be between 8 and 30 characters"},
		{"missing upper and digit and symbol", "abcdefgh", "Password must contain an uppercase letter, a digit, a symbol"},
		{"missing symbol", "Abcdefg1", "Password must contain a symbol"},
		{"missing digit", "Abcdefg!", "Password must contain a digit"},
		{"missing lowercase", "ABCDEFG1!", "Password must contain a lowercase letter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v(tt.value))
		})
	}
}

func TestPasswordComplexity_RelaxedCount(t *testing.T) {
	relaxed := PasswordComplexity{Min: 8, Max: 30, RequirementCount: 3}
	v := relaxed.Validate("Password")

	assert.Empty(t, v("Abcdefg1"), "three of four categories should satisfy the relaxed policy")
	assert.NotEmpty(t, v("abcdefgh"))
}
