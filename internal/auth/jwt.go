package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims del token de la API (RBAC simple: EsAdmin)
type Claims struct {
	UsuarioID uint `json:"usuario_id"`
	EsAdmin   bool `json:"es_admin"`
	jwt.RegisteredClaims
}

const VigenciaToken = 24 * time.Hour

func secreto() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerarToken emite un JWT HS256 con validez de 24h
func GenerarToken(usuarioID uint, esAdmin bool) (string, error) {
	ahora := time.Now()
	claims := &Claims{
		UsuarioID: usuarioID,
		EsAdmin:   esAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(usuarioID),
			ExpiresAt: jwt.NewNumericDate(ahora.Add(VigenciaToken)),
			IssuedAt:  jwt.NewNumericDate(ahora),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secreto())
}

// ValidarToken valida el token y devuelve las claims
func ValidarToken(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secreto(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido o expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("no se pudieron extraer las claims")
	}
	return claims, nil
}
