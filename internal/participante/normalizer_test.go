package participante

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizarClienteAnidado(t *testing.T) {
	bloque := map[string]any{
		"person": map[string]any{
			"p_first_name":          "Juan",
			"p_last_name":           "Pérez",
			"p_middle_name":         "Carlos",
			"p_nationality_country": "Dominicana",
			"p_marital_status":      "Soltero",
			"p_documents": []any{
				map[string]any{
					"document_type":   "Cédula",
					"document_number": "001-1234567-8",
					"is_primary":      true,
				},
			},
			"p_addresses": []any{
				map[string]any{
					"address_line1": "Calle Primera 10",
				},
			},
		},
	}

	s, err := Normalizar(bloque, RolCliente)
	require.NoError(t, err)
	assert.Equal(t, "Juan", s.Nombre)
	assert.Equal(t, "Pérez", s.Apellido)
	assert.Equal(t, "Carlos", s.SegundoNombre)
	assert.Equal(t, "Cliente", s.Ocupacion)
	assert.Equal(t, uint(1), s.RolPersonaID)
	require.Len(t, s.Documentos, 1)
	assert.Equal(t, "001-1234567-8", s.Documentos[0].NumeroDocumento)
	assert.True(t, s.Documentos[0].EsPrincipal)
	require.Len(t, s.Direcciones, 1)
	assert.Equal(t, "Casa", s.Direcciones[0].Tipo)
	assert.True(t, s.Direcciones[0].EsPrincipal)
}

func TestNormalizarReferidorPlano(t *testing.T) {
	bloque := map[string]any{
		"person": map[string]any{
			"first_name": "Ana",
			"last_name":  "Gómez",
			"documents": []any{
				map[string]any{"document_number": "002-7654321-0"},
			},
		},
	}

	s, err := Normalizar(bloque, RolReferidor)
	require.NoError(t, err)
	assert.Equal(t, "Ana", s.Nombre)
	assert.Equal(t, "Referidor", s.Ocupacion)
	assert.Equal(t, uint(8), s.RolPersonaID)
	require.Len(t, s.Documentos, 1)
	assert.True(t, s.Documentos[0].EsPrincipal, "el primer documento queda como principal")
}

func TestNormalizarDocumentoSuelto(t *testing.T) {
	bloque := map[string]any{
		"person": map[string]any{
			"p_first_name": "Luis",
			"p_last_name":  "Mata",
		},
		"person_document": map[string]any{
			"document_type":   "Pasaporte",
			"document_number": "PA123456",
		},
	}

	s, err := Normalizar(bloque, RolTestigo)
	require.NoError(t, err)
	require.Len(t, s.Documentos, 1)
	assert.Equal(t, "Pasaporte", s.Documentos[0].TipoDocumento)
	assert.True(t, s.Documentos[0].EsPrincipal)
}

func TestNormalizarNotarioDocumentoPorDefecto(t *testing.T) {
	bloque := map[string]any{
		"person": map[string]any{
			"p_first_name": "Rosa",
			"p_last_name":  "Núñez",
		},
		"notary_document": map[string]any{
			"document_number": "003-1112223-4",
		},
	}

	s, err := Normalizar(bloque, RolNotario)
	require.NoError(t, err)
	require.Len(t, s.Documentos, 1)
	assert.Equal(t, "Cédula", s.Documentos[0].TipoDocumento)
	assert.Equal(t, "Notario", s.Ocupacion)
	assert.Equal(t, uint(7), s.RolPersonaID)
}

func TestNormalizarEmpresa(t *testing.T) {
	bloque := map[string]any{
		"company_name": "Inversiones del Este SRL",
		"company_rnc":  "1-31-56789-2",
		"company_manager": []any{
			map[string]any{
				"name":            "Pedro Santana",
				"position":        "Gerente General",
				"document_number": "001-0000001-1",
				"is_main_manager": true,
			},
		},
		"company_address": map[string]any{
			"address_line1": "Av. Winston Churchill 95",
			"city":          "Santo Domingo",
		},
	}

	s, err := NormalizarEmpresa(bloque)
	require.NoError(t, err)
	assert.Equal(t, "Inversiones del Este SRL", s.Nombre)
	assert.Equal(t, "1-31-56789-2", s.RNC)
	require.Len(t, s.Gerentes, 1)
	assert.True(t, s.Gerentes[0].EsPrincipal)
	require.NotNil(t, s.Direccion)
	assert.Equal(t, "Santo Domingo", s.Direccion.Ciudad)
}

func TestTipoRolID(t *testing.T) {
	casos := map[Rol]uint{
		RolCliente:              1,
		RolInversionista:        2,
		RolTestigo:              3,
		RolNotario:              7,
		RolReferidor:            8,
		RolEmpresaCliente:       1,
		RolEmpresaInversionista: 2,
	}
	for rol, esperado := range casos {
		assert.Equal(t, esperado, rol.TipoRolID(), "rol=%s", rol)
	}
}
