// Package password validates credential strength for new auth entries.
package password

import (
	"strings"
	"unicode"
)

// MinLength is the minimum accepted password length.
const MinLength = 8

// Rule names, in the order they are evaluated and reported.
const (
	RuleMinLength = "at least 8 characters"
	RuleUppercase = "an uppercase letter"
	RuleLowercase = "a lowercase letter"
	RuleDigit     = "a digit"
	RuleSpecial   = "a special character"
	RuleNotID     = "must not contain the employee ID"
)

// Validate checks the password against all six strength rules and
// returns the names of every rule it fails. A nil/empty result means
// the password is acceptable.
func Validate(pw, employeeID string) []string {
	var failed []string

	if len(pw) < MinLength {
		failed = append(failed, RuleMinLength)
	}

	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !upper {
		failed = append(failed, RuleUppercase)
	}
	if !lower {
		failed = append(failed, RuleLowercase)
	}
	if !digit {
		failed = append(failed, RuleDigit)
	}
	if !special {
		failed = append(failed, RuleSpecial)
	}

	if employeeID != "" && strings.Contains(strings.ToLower(pw), strings.ToLower(employeeID)) {
		failed = append(failed, RuleNotID)
	}
	return failed
}

// OK reports whether the password passes every rule.
func OK(pw, employeeID string) bool {
	return len(Validate(pw, employeeID)) == 0
}
