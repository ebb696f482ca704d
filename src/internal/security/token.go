package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// TokenCodec issues and validates the bearer tokens used by the API.
// Tokens are HS256-signed and carry the user's email as subject; nothing
// is persisted server-side.
type TokenCodec struct {
	secret       []byte
	expirationMs int
}

func NewTokenCodec(secret string, expirationMs int) *TokenCodec {
	return &TokenCodec{
		secret:       []byte(secret),
		expirationMs: expirationMs,
	}
}

// Generate signs a new token for the given subject. Expiry is wall-clock
// based: now + the configured lifetime in milliseconds.
func (t *TokenCodec) Generate(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(t.expirationMs) * time.Millisecond)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate reports whether the token has a valid signature and has not
// expired. Malformed, expired, wrong-signature and empty tokens all fold
// into false; failures are logged for diagnostics only.
func (t *TokenCodec) Validate(tokenString string) bool {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return t.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logrus.Debug("Token expired")
		} else {
			logrus.WithError(err).Debug("Token validation failed")
		}
		return false
	}

	return token.Valid
}

// Subject extracts the subject claim without verifying signature or
// expiry. Callers must Validate first; the result for an invalid token
// is unspecified.
func (t *TokenCodec) Subject(tokenString string) string {
	parser := jwt.NewParser()
	claims := &jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		logrus.WithError(err).Debug("Failed to parse token subject")
		return ""
	}
	return claims.Subject
}
