// Package auth implements the two cryptographic primitives of the server:
// stateless HS256 access tokens and bcrypt password digests.
package auth

import (
	"errors"
	"time"

	"github.com/dkrasnovs/notekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken issues a signed access token whose subject is the account's
// email. The token is self-contained: validity is determined purely by the
// signature and the expiry claim, no server-side session record exists.
func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken validates tokenString against secretKey and returns the
// subject claim. Failures are mapped to sentinel errors so callers can tell
// an unusable token from an expired one:
//
//	common.ErrInvalidToken: unparseable structure or signature mismatch
//	common.ErrTokenExpired: structurally valid, correctly signed, past exp
//
// Expiry uses the library's strict comparison against exp, no grace window.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
