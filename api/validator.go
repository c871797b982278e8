package main

import (
	"regexp"
	"unicode"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$")

const weakPasswordMessage = "Password must be at least 8 characters long and contain at least one uppercase letter, one number, and one symbol."

func isValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// isStrongPassword requires length >= 8 plus at least one uppercase letter,
// one digit and one non-alphanumeric symbol. bcrypt only looks at the first
// 72 bytes, so longer passwords are rejected outright.
func isStrongPassword(password string) bool {
	if len(password) < 8 || len(password) > 72 {
		return false
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsDigit(c):
			hasDigit = true
		case !unicode.IsLetter(c) && !unicode.IsDigit(c):
			hasSymbol = true
		}
	}
	return hasUpper && hasDigit && hasSymbol
}
