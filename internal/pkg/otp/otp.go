package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"
)

// CodeLength is the number of digits in a generated code.
const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// Generator produces one-time codes for challenge flows.
type Generator interface {
	// Generate returns a new zero-padded numeric code.
	Generate() (string, error)
}

// Numeric implements Generator with uniformly distributed 6-digit codes
// drawn from crypto/rand. "000000" through "999999" are all equally likely.
type Numeric struct{}

// NewNumeric returns a numeric code generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a new zero-padded 6-digit code.
func (*Numeric) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Expired reports whether a code's expiry has passed at the given time.
// A code expiring exactly at now is still valid.
func Expired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}

// Match compares a submitted code against the stored code in constant time.
// Codes are compared exactly, no trimming or normalization.
func Match(submitted, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}
