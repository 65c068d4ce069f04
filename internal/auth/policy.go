package auth

import (
	"fmt"
	"unicode"
)

// MinPasswordLength is the smallest accepted password length.
const MinPasswordLength = 8

// ValidatePassword checks a candidate plaintext password against the
// strength policy. It returns false with a human-readable reason when
// the password is rejected.
func ValidatePassword(password string) (bool, string) {
	if password == "" {
		return false, "password must not be empty"
	}
	if len(password) < MinPasswordLength {
		return false, fmt.Sprintf("password must be at least %d characters long", MinPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return false, "password must contain at least one uppercase letter"
	case !hasLower:
		return false, "password must contain at least one lowercase letter"
	case !hasDigit:
		return false, "password must contain at least one digit"
	case !hasSymbol:
		return false, "password must contain at least one symbol"
	}

	return true, ""
}
