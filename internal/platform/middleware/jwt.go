package middleware

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	id "reclaim/pkg/domain"
)

// HMACValidator validates HS256 tokens with a shared signing key. The subject
// claim carries the user ID.
type HMACValidator struct {
	key []byte
}

// NewHMACValidator builds a validator around the shared signing key.
func NewHMACValidator(signingKey string) *HMACValidator {
	return &HMACValidator{key: []byte(signingKey)}
}

// ValidateToken parses and verifies the token, returning the user ID from the
// subject claim.
func (v *HMACValidator) ValidateToken(tokenString string) (id.UserID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return id.UserID{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return id.UserID{}, errors.New("token invalid")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return id.UserID{}, errors.New("token missing subject")
	}
	userID, err := id.ParseUserID(subject)
	if err != nil {
		return id.UserID{}, fmt.Errorf("token subject: %w", err)
	}
	return userID, nil
}
