// Package hashing wraps bcrypt for password storage. The work factor is
// fixed so every stored hash carries the same cost.
package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for all new hashes.
const Cost = 10

// ErrMalformedHash indicates the stored value is not a bcrypt hash at all.
var ErrMalformedHash = errors.New("malformed password hash")

// Hash derives a salted bcrypt hash from the plaintext. The salt is random
// per call, so hashing the same input twice yields different strings.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A wrong password
// is (false, nil); only an undecodable hash is an error. Comparison timing is
// bcrypt's own and does not depend on where a mismatch occurs.
func Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}
