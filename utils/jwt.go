package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type OperatorClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func operatorSecret() []byte {
	secret := os.Getenv("JWT_SECRET_ADMIN")
	if secret == "" {
		secret = "default_admin_secret" // Fallback secret, should be changed in production
	}
	return []byte(secret)
}

func GenerateOperatorToken(username string) (string, error) {
	claims := OperatorClaims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Token expires in 24 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   username,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(operatorSecret())
}

func ParseOperatorToken(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return operatorSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*OperatorClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrInvalidKey
	}
	return claims, nil
}
