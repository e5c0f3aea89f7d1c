package domain

import (
	"math/rand"
	"sync"
)

// Account numbers are 22 digits: a 2-digit type prefix, 18 pseudo-random
// digits, and 2 check digits. The check digits are computed from the
// preceding 20 digits with the Luhn mod-10 algorithm, so a single-digit
// transcription error is detectable by recomputation. Uniqueness against
// existing numbers is the persistence layer's job (retry on collision).
const (
	accountNumberLength = 22
	accountNumberBase   = 20
	randomDigits        = 18
)

// AccountNumberGenerator produces checksum-terminated account numbers from
// an injected random source, so tests can seed it deterministically.
type AccountNumberGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewAccountNumberGenerator creates a generator backed by src.
func NewAccountNumberGenerator(src rand.Source) *AccountNumberGenerator {
	return &AccountNumberGenerator{rnd: rand.New(src)}
}

// Generate returns a new account number for the given account type.
func (g *AccountNumberGenerator) Generate(accountType AccountType) string {
	buf := make([]byte, 0, accountNumberLength)
	buf = append(buf, accountType.NumberPrefix()...)

	g.mu.Lock()
	for i := 0; i < randomDigits; i++ {
		buf = append(buf, byte('0'+g.rnd.Intn(10)))
	}
	g.mu.Unlock()

	return string(appendCheckDigits(buf))
}

// Checksum returns the 2 check digits for a 20-digit base.
func Checksum(base string) (string, error) {
	if len(base) != accountNumberBase || !allDigits(base) {
		return "", ErrInvalidAccountNumber
	}

	full := appendCheckDigits([]byte(base))

	return string(full[accountNumberBase:]), nil
}

// ValidateAccountNumber recomputes the check digits and compares them
// against the trailing 2 digits of number.
func ValidateAccountNumber(number string) error {
	if len(number) != accountNumberLength || !allDigits(number) {
		return ErrInvalidAccountNumber
	}

	full := appendCheckDigits([]byte(number[:accountNumberBase]))
	if string(full) != number {
		return ErrInvalidAccountNumber
	}

	return nil
}

// appendCheckDigits appends d1 = Luhn digit over the base and d2 = Luhn
// digit over base||d1.
func appendCheckDigits(base []byte) []byte {
	base = append(base, luhnCheckDigit(base))
	return append(base, luhnCheckDigit(base))
}

// luhnCheckDigit computes the digit that makes the Luhn weighted
// positional sum of digits||d divisible by 10. Digits are doubled from the
// rightmost position of the padded number, i.e. every digit at an even
// offset from the end of the input.
func luhnCheckDigit(digits []byte) byte {
	sum := 0

	double := true
	for i := len(digits) - 1; i >= 0; i-- {
		n := int(digits[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}

		sum += n
		double = !double
	}

	return byte('0' + (10-sum%10)%10)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
