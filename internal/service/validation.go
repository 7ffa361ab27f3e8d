package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/petcare-service/internal/auth"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

const minPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	rutPattern   = regexp.MustCompile(`^\d{1,2}\.\d{3}\.\d{3}-[\dkK]$`)
)

// fieldErrors collects per-field validation messages.
type fieldErrors map[string]any

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "required"
	}
}

func (f fieldErrors) email(field, value string) {
	if _, set := f[field]; set {
		return
	}
	if !ValidEmail(value) {
		f[field] = "must be a valid email address"
	}
}

func (f fieldErrors) err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewInvalidInput(message, f)
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s) && !strings.Contains(s, "..")
}

// ValidRut reports whether s has the NN.NNN.NNN-C shape. The check
// character is not verified against the digits.
func ValidRut(s string) bool {
	return rutPattern.MatchString(s)
}

func validPassword(s string) bool {
	return utf8.RuneCountInString(s) >= minPasswordLength
}

// passwordTooLong counts bytes, not characters.
func passwordTooLong(s string) bool {
	return len(s) > auth.MaxPasswordBytes
}
