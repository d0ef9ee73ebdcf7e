package cpid

import (
	"strings"
	"unicode"
)

const (
	// shift is the fixed rotation applied independently to letters
	// (within A-Z) and digits (within 0-9).
	shift = 1

	// padLetter fills in for missing initials and short letter runs.
	padLetter = 'X'

	codeLetters = 3
	codeDigits  = 3
)

// Derive produces the 6-character pseudonym for a person. It is pure and
// total: any input, including empty strings, yields a well-formed code of
// three letters followed by three digits.
func Derive(firstName, lastName, idFragment string) string {
	seed := string(initial(firstName)) + string(initial(lastName)) + idSuffix(idFragment)

	var rotated strings.Builder
	rotated.Grow(len(seed))
	for _, r := range seed {
		rotated.WriteRune(rotate(r))
	}

	letters := make([]rune, 0, codeLetters)
	digits := make([]rune, 0, codeDigits)
	for _, r := range rotated.String() {
		switch {
		case unicode.IsLetter(r) && len(letters) < codeLetters:
			letters = append(letters, r)
		case unicode.IsDigit(r) && len(digits) < codeDigits:
			digits = append(digits, r)
		}
	}
	for len(letters) < codeLetters {
		letters = append(letters, padLetter)
	}
	for len(digits) < codeDigits {
		digits = append(digits, '0')
	}

	return string(letters) + string(digits)
}

// initial returns the uppercased first character of a name, or the
// placeholder letter when the name is empty. The first character is used
// as-is even when it is not alphabetic; the rotation step handles it.
func initial(name string) rune {
	for _, r := range name {
		return unicode.ToUpper(r)
	}
	return padLetter
}

// idSuffix keeps the last three characters of the stringified ID
// fragment, left-padding with zeros when it is shorter than three.
func idSuffix(fragment string) string {
	runes := []rune(fragment)
	if len(runes) >= 3 {
		return string(runes[len(runes)-3:])
	}
	return strings.Repeat("0", 3-len(runes)) + fragment
}

// rotate applies the fixed Caesar-style shift: letters rotate within A-Z
// (lowercase input is uppercased first), digits within 0-9, and anything
// else passes through unchanged.
func rotate(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		r = r - 'a' + 'A'
		fallthrough
	case r >= 'A' && r <= 'Z':
		return 'A' + (r-'A'+shift)%26
	case r >= '0' && r <= '9':
		return '0' + (r-'0'+shift)%10
	default:
		return r
	}
}
