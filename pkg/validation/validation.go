// Package validation holds the pure input rules shared by registration and
// account management. No I/O.
package validation

import (
	"fmt"
	"regexp"
)

// PasswordMinLength is the minimum accepted password length.
const PasswordMinLength = 8

// UsernameMinLength is the minimum accepted username length.
const UsernameMinLength = 3

var usernameRegex = regexp.MustCompile(`^[a-z0-9]+$`)

// ValidateUsername checks that a username is lowercase alphanumeric and at
// least UsernameMinLength characters. Returns nil when valid.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) < UsernameMinLength {
		return fmt.Errorf("username must be at least %d characters", UsernameMinLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain lowercase letters and digits")
	}
	return nil
}

// ValidatePassword checks minimum password strength. Returns nil when valid.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters", PasswordMinLength)
	}
	return nil
}
