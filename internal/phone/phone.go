// Package phone normalizes loosely formatted Ukrainian phone numbers into
// the canonical "+380XXXXXXXXX" form.
package phone

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat indicates input that cannot be mapped to the canonical form.
var ErrInvalidFormat = errors.New("phone: invalid format")

// countryPrefix is the digit prefix every canonical number carries after "+".
const countryPrefix = "380"

const (
	nationalLen      = 10 // 0XXXXXXXXX
	internationalLen = 12 // 380XXXXXXXXX
)

// Number is a validated phone number in canonical form.
// The zero value represents "no number"; use Parse to construct one.
type Number struct {
	value string
}

// Parse normalizes raw and returns it as a Number.
func Parse(raw string) (Number, error) {
	v, err := Normalize(raw)
	if err != nil {
		return Number{}, err
	}
	return Number{value: v}, nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse(raw string) Number {
	n, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return n
}

// Normalize maps raw to "+380XXXXXXXXX". All non-digit characters are
// discarded first; the remaining digits must be either a 10-digit national
// number starting with 0 or a 12-digit number starting with 380.
func Normalize(raw string) (string, error) {
	digits := extractDigits(raw)

	switch {
	case len(digits) == nationalLen && digits[0] == '0':
		return "+38" + digits, nil
	case len(digits) == internationalLen && strings.HasPrefix(digits, countryPrefix):
		return "+" + digits, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}
}

func extractDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// String returns the canonical form, or "" for the zero value.
func (n Number) String() string {
	return n.value
}

// IsZero reports whether n holds no number.
func (n Number) IsZero() bool {
	return n.value == ""
}

// Equal reports whether n and other hold the same canonical value.
func (n Number) Equal(other Number) bool {
	return n.value == other.value
}

// Masked returns the number with every digit except the last four replaced
// by '*', e.g. "+********4451". Intended for log output.
func (n Number) Masked() string {
	runes := []rune(n.value)
	keep := 4
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] < '0' || runes[i] > '9' {
			continue
		}
		if keep > 0 {
			keep--
			continue
		}
		runes[i] = '*'
	}
	return string(runes)
}
