// Package token issues and verifies the signed session tokens handed to
// clients after login. Tokens are stateless: there is no server-side session
// table, so the short TTL is the only bound on a token's lifetime.
package token

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL caps session lifetime at one hour.
const DefaultTTL = time.Hour

var (
	// ErrInvalidToken covers bad signatures and malformed payloads.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the session token payload. Email and first name are denormalized
// so the dashboard can greet the user without a store round trip.
type Claims struct {
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	jwtlib.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string { return c.Subject }

// Issuer signs and verifies session tokens with a process-wide secret fixed
// at startup.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue creates a signed token for the given subject. Expiry is issuance
// time plus the configured TTL.
func (i *Issuer) Issue(subjectID, email, firstName string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     email,
		FirstName: firstName,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(i.ttl)),
		},
	}
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a raw token and returns its
// claims. Expired tokens yield ErrTokenExpired; everything else that fails
// verification yields ErrInvalidToken.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	tok, err := jwtlib.ParseWithClaims(raw, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
