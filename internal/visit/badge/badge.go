// Package badge generates and verifies short badge codes. The code is the
// low-tech fallback to the pass token: printed on the approval email, typed
// at the kiosk, stored only as a bcrypt hash.
package badge

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	dErrors "foyer/pkg/domain-errors"
)

// codeDigits is the badge code length. Six digits keeps codes typeable at
// the kiosk; bcrypt's cost makes online guessing impractical anyway.
const codeDigits = 6

// Generate produces a random numeric badge code and its bcrypt hash. The
// plain code goes to the visitor; only the hash is stored.
func Generate() (code, hash string, err error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", "", fmt.Errorf("generate badge code: %w", err)
	}
	n := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	code = fmt.Sprintf("%06d", n%1000000)

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hash badge code: %w", err)
	}
	return code, string(hashed), nil
}

// Verify checks a presented code against the stored hash.
func Verify(hash, code string) error {
	if hash == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "no badge code on file")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return dErrors.New(dErrors.CodeUnauthorized, "badge code does not match")
	}
	return nil
}
