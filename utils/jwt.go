package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cppla/postboard/config"
)

// Claims identifies the holder of an API token. Name becomes the author of
// comments written through the API.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateToken issues an API token for name, valid for duration.
func GenerateToken(name string, duration time.Duration) (string, error) {
	secret := config.Get().AppKey
	if secret == "" {
		return "", errors.New("APP_KEY is not set")
	}

	now := time.Now()
	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates an API token and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	secret := config.Get().AppKey
	if secret == "" {
		return nil, errors.New("APP_KEY is not set")
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Name == "" {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
