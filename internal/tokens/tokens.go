// Package tokens issues and parses the signed bearer tokens used for
// authentication. Tokens are stateless: validity is determined entirely by
// the signed claims plus the clock, so there is no revocation store and a
// refresh always mints a new token from the current time.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed covers undecodable tokens, bad signatures, unexpected
	// algorithms and missing claims.
	ErrMalformed = errors.New("malformed token")

	// ErrExpired is returned when the token decodes and verifies but its
	// expiry has passed.
	ErrExpired = errors.New("token expired")
)

// Codec signs and verifies HS256 tokens with a process-wide secret and TTL,
// both fixed at construction.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue creates a signed token with the given subject, expiring at now+TTL.
func (c *Codec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse verifies raw against the codec secret and returns the subject claim.
// Expiry is evaluated against the supplied now. Any failure other than
// expiry reports ErrMalformed.
func (c *Codec) Parse(raw string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrMalformed
	}
	if claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}
