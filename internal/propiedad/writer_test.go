package propiedad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConstruirFilas(t *testing.T) {
	bloque := map[string]any{
		"property_type":    "casa",
		"cadastral_number": "402567890123",
		"title_number":     "T-991",
		"surface_area":     250.5,
		"covered_area":     180.0,
		"property_value":   85000.0,
		"currency":         "USD",
		"description":      "Casa de dos niveles",
		"address_line1":    "Calle Primera 10",
		"address_line2":    "Ensanche Ozama",
		"city_id":          3.0,
		"postal_code":      "10801",
		"property_role":    "garantia",
		"notes":            "tasación vigente",
	}

	propiedad, vinculo, err := construirFilas(9, bloque, true)
	require.NoError(t, err)
	assert.Equal(t, "casa", propiedad.TipoPropiedad)
	assert.Equal(t, "402567890123", propiedad.NumeroCatastral)
	assert.Equal(t, "T-991", propiedad.TituloRegistro)
	assert.Equal(t, 250.5, propiedad.Superficie)
	assert.Equal(t, 180.0, propiedad.SuperficieCubierta)
	assert.Equal(t, 85000.0, propiedad.Valor)
	assert.Equal(t, "USD", propiedad.Moneda)
	assert.Equal(t, "Calle Primera 10", propiedad.DireccionLinea1)
	assert.Equal(t, "Ensanche Ozama", propiedad.DireccionLinea2)
	require.NotNil(t, propiedad.CiudadID)
	assert.Equal(t, uint(3), *propiedad.CiudadID)
	assert.Equal(t, "10801", propiedad.CodigoPostal)

	assert.Equal(t, uint(9), vinculo.ContratoID)
	assert.Equal(t, "garantia", vinculo.Rol)
	assert.True(t, vinculo.EsPrincipal)
	assert.Equal(t, "tasación vigente", vinculo.Notas)
}

func TestConstruirFilasSinDireccionNiCiudad(t *testing.T) {
	propiedad, vinculo, err := construirFilas(1, map[string]any{
		"property_type":  "solar",
		"property_value": 12000.0,
	}, false)
	require.NoError(t, err)
	assert.Empty(t, propiedad.DireccionLinea1)
	assert.Nil(t, propiedad.CiudadID)
	assert.Equal(t, "USD", propiedad.Moneda)
	assert.Equal(t, "garantia", vinculo.Rol)
	assert.False(t, vinculo.EsPrincipal)
}

func TestConstruirFilasTipoIlegible(t *testing.T) {
	_, _, err := construirFilas(1, map[string]any{"surface_area": "mucho"}, false)
	assert.Error(t, err)
}

func TestEscribirSinPropiedades(t *testing.T) {
	writer := NewWriter(zap.NewNop().Sugar())
	resultado := writer.Escribir(nil, 1, map[string]any{})
	assert.Empty(t, resultado.IDs)
	assert.Empty(t, resultado.Errores)
}

func TestEscribirEntradasIlegibles(t *testing.T) {
	writer := NewWriter(zap.NewNop().Sugar())
	datos := map[string]any{
		"properties": []any{"no-es-objeto", 42},
	}
	resultado := writer.Escribir(nil, 1, datos)
	assert.Empty(t, resultado.IDs)
	require.Len(t, resultado.Errores, 2)
	assert.Equal(t, 0, resultado.Errores[0].Indice)
	assert.Equal(t, 1, resultado.Errores[1].Indice)
}
