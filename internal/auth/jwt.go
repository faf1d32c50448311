package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL replica la vigencia de la sesión de caja: una semana.
const TokenTTL = 7 * 24 * time.Hour

type Claims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string) (string, error) {
	claims := &Claims{
		Operator: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
