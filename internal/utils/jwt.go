package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type jwtCustomClaims struct {
	Key string `json:"key"`
	jwt.RegisteredClaims
}

// GenerateToken signs a JWT embedding the token lookup key. The bearer
// credential handed to clients is this signed string; only its hash is
// persisted server-side.
func GenerateToken(secret, key string, ttl time.Duration) (string, error) {
	claims := &jwtCustomClaims{
		Key: key,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   key,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token signature and returns the embedded key.
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*jwtCustomClaims); ok && token.Valid {
		return claims.Key, nil
	}

	return "", jwt.ErrTokenInvalidClaims
}
