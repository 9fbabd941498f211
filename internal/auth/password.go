package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashFormat is returned when a stored password hash cannot be
// decoded as bcrypt. It indicates corrupt data at rest, not a wrong
// password.
var ErrHashFormat = errors.New("credential hash is malformed")

// HashPassword returns the bcrypt hash of plain using the given cost.
// bcrypt embeds a fresh random salt on every call, so hashing the same
// password twice yields two different encodings. Out-of-range costs
// fall back to the bcrypt default.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash and a plain password. Mismatch
// and empty passwords report false without error; the comparison is
// constant-time inside bcrypt. Any other failure means the stored hash
// itself is unreadable and surfaces as ErrHashFormat.
func VerifyPassword(hash, plain string) (bool, error) {
	if plain == "" {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrHashFormat
	}
}
