package auth

import (
	"fmt"
	"strings"
)

// weakPasswordList contains common passwords rejected for the operator account.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"qwerty",
	"letmein",
	"welcome",
	"changeme",
	"default",
	"root",
	"test",
}

const minPasswordLength = 12

// ValidateAdminPassword rejects short, repetitive or well-known passwords for the
// token-issuing account. It is checked once at startup.
func ValidateAdminPassword(pass string) error {
	if len(pass) < minPasswordLength {
		return fmt.Errorf("ADMIN_USER_PASSWORD must be at least %d characters", minPasswordLength)
	}
	if isRepeatedChar(pass) || isDigitRun(pass) {
		return fmt.Errorf("ADMIN_USER_PASSWORD must not be a simple pattern")
	}

	lower := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		// variations such as "admin1234567" are still weak
		if lower == weak || (strings.HasPrefix(lower, weak) && len(pass) < minPasswordLength+5) {
			return fmt.Errorf("ADMIN_USER_PASSWORD must not be based on a common password")
		}
	}
	return nil
}

func isRepeatedChar(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return len(s) > 0
}

// isDigitRun matches ascending or descending digit sequences with wraparound ("789012...").
func isDigitRun(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	up, down := true, true
	for i := 1; i < len(s); i++ {
		d := (int(s[i]) - int(s[i-1]) + 10) % 10
		up = up && d == 1
		down = down && d == 9
	}
	return up || down
}
