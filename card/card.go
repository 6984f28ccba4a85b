// file: card/card.go

// Package card mints account identities: card numbers carrying a Luhn check
// digit and four-digit PINs.
package card

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	// IssuerID is the fixed six-digit prefix of every issued card number.
	IssuerID = "400000"
	// NumberLength is the full card number length including the check digit.
	NumberLength = 16
	// PayloadLength is the number of digits the check digit is computed over.
	PayloadLength = NumberLength - 1
	// PinLength is the number of digits in a PIN.
	PinLength = 4

	accountDigits = PayloadLength - len(IssuerID)
	maxPin        = 9999
)

var ErrInvalidPayload = errors.New("card payload must be 15 decimal digits")

// Generator produces card numbers and PINs from its random source.
// It does not check uniqueness; that is the ledger's job.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator drawing from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// NewDefaultGenerator returns a Generator seeded from the clock and the
// runtime's random source.
func NewDefaultGenerator() *Generator {
	return NewGenerator(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
}

// GenerateCardNumber returns IssuerID followed by nine random digits and the
// Luhn check digit.
func (g *Generator) GenerateCardNumber() string {
	var b strings.Builder
	b.Grow(NumberLength)
	b.WriteString(IssuerID)
	for i := 0; i < accountDigits; i++ {
		b.WriteByte(byte('0' + g.rnd.IntN(10)))
	}

	payload := b.String()
	// payload is built from digits only, so Checksum cannot fail here.
	sum, _ := Checksum(payload)
	b.WriteByte(byte('0' + sum))
	return b.String()
}

// GeneratePin returns a zero-padded PIN drawn uniformly from 0000-9999.
func (g *Generator) GeneratePin() string {
	return fmt.Sprintf("%0*d", PinLength, g.rnd.IntN(maxPin+1))
}

// Checksum computes the Luhn check digit of a 15-digit payload. Digits at
// even 0-based positions are doubled, with 9 subtracted when the result
// exceeds 9.
func Checksum(payload string) (int, error) {
	if len(payload) != PayloadLength || !isDigits(payload) {
		return 0, ErrInvalidPayload
	}

	total := 0
	for i := 0; i < len(payload); i++ {
		d := int(payload[i] - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		total += d
	}
	return (10 - total%10) % 10, nil
}

// VerifyLuhn reports whether number is a well-formed card number whose last
// digit is the Luhn check digit of the first fifteen.
func VerifyLuhn(number string) bool {
	if !IsWellFormed(number) {
		return false
	}
	sum, err := Checksum(number[:PayloadLength])
	if err != nil {
		return false
	}
	return int(number[PayloadLength]-'0') == sum
}

// IsWellFormed reports whether number is exactly sixteen ASCII digits.
// It does not look at the check digit.
func IsWellFormed(number string) bool {
	return len(number) == NumberLength && isDigits(number)
}

// IsWellFormedPin reports whether pin is exactly four ASCII digits.
func IsWellFormedPin(pin string) bool {
	return len(pin) == PinLength && isDigits(pin)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
