package domain

import "unicode"

// Weakness is a single reason a password fails the strength policy.
type Weakness string

const (
	WeaknessNotLongEnough  Weakness = "NotLongEnough"
	WeaknessNoUpperCase    Weakness = "NoUpperCase"
	WeaknessNoLowerCase    Weakness = "NoLowerCase"
	WeaknessNoSpecialChars Weakness = "NoSpecialChars"
	WeaknessNoNumeric      Weakness = "NoNumeric"
	WeaknessNoAlphabetic   Weakness = "NoAlphabetic"
)

// FindWeaknesses evaluates the password strength policy. The checks are
// independent: a password accumulates every weakness that applies. An empty
// result means the password is acceptable; callers distinguish the cases by
// list emptiness only. Pure function, no I/O.
//
// NoSpecialChars fires when the password is entirely alphanumeric. It flags
// the absence of special characters, which reads backwards but is intended.
func FindWeaknesses(password string) []Weakness {
	var weaknesses []Weakness

	if len(password) < 8 {
		weaknesses = append(weaknesses, WeaknessNotLongEnough)
	}

	var hasDigit, hasLetter, hasUpper, hasLower bool
	allAlphanumeric := true
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		default:
			allAlphanumeric = false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}

	if !hasDigit {
		weaknesses = append(weaknesses, WeaknessNoNumeric)
	}
	if !hasLetter {
		weaknesses = append(weaknesses, WeaknessNoAlphabetic)
	}
	if allAlphanumeric {
		weaknesses = append(weaknesses, WeaknessNoSpecialChars)
	}
	if !hasUpper {
		weaknesses = append(weaknesses, WeaknessNoUpperCase)
	}
	if !hasLower {
		weaknesses = append(weaknesses, WeaknessNoLowerCase)
	}

	return weaknesses
}
