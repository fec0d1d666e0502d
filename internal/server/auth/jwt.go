// Package auth issues and checks the HS256 bearer tokens of the development
// backend. Tokens carry the user's e-mail and role.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the user's e-mail and role.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

func GenerateToken(email, role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: email,
		Role:  role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString. Every
// failure is reported as shared.ErrorInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Join(shared.ErrorInvalidToken, err)
		}
		return nil, shared.ErrorInvalidToken
	}

	if !token.Valid || claims.Email == "" {
		return nil, shared.ErrorInvalidToken
	}

	return claims, nil
}
