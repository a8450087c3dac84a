// Package validate checks registration form fields. Field checks are
// syntactic and never fail with an error; the IMEI check also asks the
// Wialon unit directory whether the device is known.
package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

// MaxAssetNameLength is the exclusive upper bound on asset name length.
const MaxAssetNameLength = 60

// IMEILength is the number of digits in an IMEI.
const IMEILength = 15

// emailSuffixes are the accepted endings of an email domain.
var emailSuffixes = []string{".com", ".net", ".edu", ".org", ".gov", ".me", ".io"}

// ValidateName reports whether value is non-empty and made of letters only.
func ValidateName(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ValidateAssetName reports whether value is shorter than
// MaxAssetNameLength characters.
func ValidateAssetName(value string) bool {
	return utf8.RuneCountInString(value) < MaxAssetNameLength
}

// ValidateEmail splits value on "@" and accepts it when the local part is
// alphanumeric and the second segment ends in an allowed top-level domain.
func ValidateEmail(value string) bool {
	parts := strings.Split(value, "@")
	if len(parts) < 2 {
		return false
	}
	if !isAlnum(parts[0]) {
		return false
	}
	for _, suffix := range emailSuffixes {
		if strings.HasSuffix(parts[1], suffix) {
			return true
		}
	}
	return false
}

// ValidatePhone performs no checking yet.
func ValidatePhone(string) domain.Outcome {
	return domain.OutcomeUnchecked
}

// ValidateVIN performs no checking yet.
func ValidateVIN(string) domain.Outcome {
	return domain.OutcomeUnchecked
}

// CheckIMEIFormat reports whether value is 15 digits with a valid Luhn
// check digit. It says nothing about whether the device is registered.
func CheckIMEIFormat(value string) bool {
	if len(value) != IMEILength {
		return false
	}

	sum := 0
	for i := range IMEILength {
		c := value[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		// Double every second digit counting from the left, starting at
		// the second one.
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func outcome(ok bool) domain.Outcome {
	if ok {
		return domain.OutcomeValid
	}
	return domain.OutcomeInvalid
}
