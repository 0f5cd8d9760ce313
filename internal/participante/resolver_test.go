package participante

import (
	"errors"
	"testing"

	"github.com/inmobiliaria-rd/api-contratos/internal/persona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) CrearOCompletar(db *gorm.DB, s *persona.SolicitudPersona) (*persona.ResultadoRegistro, error) {
	args := m.Called(db, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*persona.ResultadoRegistro), args.Error(1)
}

func (m *MockRegistry) BuscarOInsertarEmpresa(db *gorm.DB, s *persona.SolicitudEmpresa) (uint, error) {
	args := m.Called(db, s)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockRegistry) BuscarPorID(db *gorm.DB, id uint) (*persona.Persona, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*persona.Persona), args.Error(1)
}

func (m *MockRegistry) ListarTodas(db *gorm.DB) ([]persona.Persona, error) {
	args := m.Called(db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]persona.Persona), args.Error(1)
}

func bloqueCliente(nombre string) map[string]any {
	return map[string]any{
		"person": map[string]any{
			"p_first_name": nombre,
			"p_last_name":  "Prueba",
		},
	}
}

func TestResolverTodosClasificaResoluciones(t *testing.T) {
	registro := new(MockRegistry)
	resolver := NewResolver(registro, zap.NewNop().Sugar())

	registro.On("CrearOCompletar", mock.Anything, mock.MatchedBy(func(s *persona.SolicitudPersona) bool {
		return s.Nombre == "Nuevo"
	})).Return(&persona.ResultadoRegistro{PersonaID: 10, Existia: false}, nil)
	registro.On("CrearOCompletar", mock.Anything, mock.MatchedBy(func(s *persona.SolicitudPersona) bool {
		return s.Nombre == "Existente"
	})).Return(&persona.ResultadoRegistro{PersonaID: 20, Existia: true}, nil)
	registro.On("CrearOCompletar", mock.Anything, mock.MatchedBy(func(s *persona.SolicitudPersona) bool {
		return s.Nombre == "Duplicado"
	})).Return(nil, &persona.ErrorPersonaDuplicada{PersonaID: 30, Mensaje: "ya existe"})

	datos := map[string]any{
		"clients": []any{
			bloqueCliente("Nuevo"),
			bloqueCliente("Existente"),
		},
		"investors": []any{
			bloqueCliente("Duplicado"),
		},
	}

	resueltos, fallos, resumen := resolver.ResolverTodos(nil, datos)
	require.Len(t, resueltos, 3)
	assert.Empty(t, fallos)

	assert.Equal(t, ResolucionNueva, resueltos[0].Resolucion)
	assert.Equal(t, uint(10), resueltos[0].PersonaID)
	assert.True(t, resueltos[0].EsPrincipal)

	assert.Equal(t, ResolucionExistente, resueltos[1].Resolucion)
	assert.False(t, resueltos[1].EsPrincipal)

	// el conflicto de duplicado trae el id vigente y cuenta como éxito
	assert.Equal(t, ResolucionReutilizada, resueltos[2].Resolucion)
	assert.Equal(t, uint(30), resueltos[2].PersonaID)
	assert.Equal(t, RolInversionista, resueltos[2].Rol)

	assert.Equal(t, 3, resumen.Total)
	assert.Equal(t, 3, resumen.Exitosos)
	assert.Equal(t, 1, resumen.Existentes)
	assert.Equal(t, 1, resumen.Reutilizadas)
	assert.Equal(t, 0, resumen.Errores)
}

func TestResolverTodosAcumulaFallosYContinua(t *testing.T) {
	registro := new(MockRegistry)
	resolver := NewResolver(registro, zap.NewNop().Sugar())

	registro.On("CrearOCompletar", mock.Anything, mock.MatchedBy(func(s *persona.SolicitudPersona) bool {
		return s.Nombre == "Roto"
	})).Return(nil, errors.New("error de conexión"))
	registro.On("CrearOCompletar", mock.Anything, mock.MatchedBy(func(s *persona.SolicitudPersona) bool {
		return s.Nombre == "Sano"
	})).Return(&persona.ResultadoRegistro{PersonaID: 5}, nil)

	datos := map[string]any{
		"clients": []any{
			bloqueCliente("Roto"),
			bloqueCliente("Sano"),
		},
	}

	resueltos, fallos, resumen := resolver.ResolverTodos(nil, datos)
	require.Len(t, resueltos, 1)
	require.Len(t, fallos, 1)
	assert.Equal(t, RolCliente, fallos[0].Rol)
	assert.Equal(t, 0, fallos[0].Indice)
	assert.Equal(t, "Roto Prueba", fallos[0].Nombre)
	assert.Equal(t, 1, resumen.Errores)
	assert.Equal(t, 1, resumen.Exitosos)

	// el siguiente de la lista se procesó aunque el primero falló
	assert.Equal(t, uint(5), resueltos[0].PersonaID)
	assert.False(t, resueltos[0].EsPrincipal)
}

func TestResolverTodosNotarioComoObjeto(t *testing.T) {
	registro := new(MockRegistry)
	resolver := NewResolver(registro, zap.NewNop().Sugar())

	registro.On("CrearOCompletar", mock.Anything, mock.Anything).
		Return(&persona.ResultadoRegistro{PersonaID: 7}, nil)

	datos := map[string]any{
		"notary": map[string]any{
			"person": map[string]any{
				"p_first_name": "Rosa",
				"p_last_name":  "Núñez",
			},
		},
	}

	resueltos, fallos, resumen := resolver.ResolverTodos(nil, datos)
	require.Len(t, resueltos, 1)
	assert.Empty(t, fallos)
	assert.Equal(t, RolNotario, resueltos[0].Rol)
	assert.Equal(t, 1, resumen.Total)
}

func TestResolverTodosEmpresas(t *testing.T) {
	registro := new(MockRegistry)
	resolver := NewResolver(registro, zap.NewNop().Sugar())

	registro.On("BuscarOInsertarEmpresa", mock.Anything, mock.MatchedBy(func(s *persona.SolicitudEmpresa) bool {
		return s.RNC == "1-31-00000-1"
	})).Return(uint(90), nil)

	datos := map[string]any{
		"client_company": map[string]any{
			"company_name": "Constructora Caribe",
			"company_rnc":  "1-31-00000-1",
		},
	}

	resueltos, fallos, resumen := resolver.ResolverTodos(nil, datos)
	require.Len(t, resueltos, 1)
	assert.Empty(t, fallos)
	assert.Equal(t, RolEmpresaCliente, resueltos[0].Rol)
	assert.Equal(t, uint(90), resueltos[0].EmpresaID)
	assert.Zero(t, resueltos[0].PersonaID)
	assert.True(t, resueltos[0].EsPrincipal)
	assert.Equal(t, 1, resumen.Exitosos)
}

func TestResolverTodosVacio(t *testing.T) {
	resolver := NewResolver(new(MockRegistry), zap.NewNop().Sugar())
	resueltos, fallos, resumen := resolver.ResolverTodos(nil, map[string]any{})
	assert.Empty(t, resueltos)
	assert.Empty(t, fallos)
	assert.Zero(t, resumen.Total)
}
