// Package validate holds the input-format checks used by the account
// workflows.
package validate

import (
	"regexp"
	"unicode"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsEmail reports whether s looks like a valid email address.
func IsEmail(s string) bool {
	return emailRE.MatchString(s)
}

// IsStrongPassword reports whether s is at least 8 characters and contains a
// lowercase letter, an uppercase letter, a digit, and a symbol.
func IsStrongPassword(s string) bool {
	if len([]rune(s)) < 8 {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, c := range s {
		switch {
		case unicode.IsLower(c):
			lower = true
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsDigit(c):
			digit = true
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
