package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la sesión.
// SessionID ata la cookie a la sesión viva del servidor: si el proceso se
// reinicia la sesión muere aunque la cookie siga en el navegador.
type Claims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"` // "admin" | "basic"
	Username  string `json:"username"`
	SessionID string `json:"sid"`
}

// Generate genera un token firmado con role, username y sessionID.
// No lleva ExpiresAt: la cookie es de sesión y la validez real la acota el
// SessionID contra el estado del servidor.
func Generate(secret, role, username, sessionID, issuer string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Role:      role,
		Username:  username,
		SessionID: sessionID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve role, username y sessionID.
// Retorna error si el token es inválido o tiene firma incorrecta.
func Parse(secret, tokenString string) (role, username, sessionID string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", fmt.Errorf("claims inválidos")
	}
	return claims.Role, claims.Username, claims.SessionID, nil
}
