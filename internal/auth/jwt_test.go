package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerarYValidarToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto-de-prueba")

	token, err := GenerarToken(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UsuarioID)
	assert.True(t, claims.EsAdmin)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidarTokenBasura(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto-de-prueba")
	_, err := ValidarToken("no.es.token")
	assert.Error(t, err)
}

func TestValidarTokenConOtroSecreto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto-a")
	token, err := GenerarToken(1, false)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secreto-b")
	_, err = ValidarToken(token)
	assert.Error(t, err)
}
