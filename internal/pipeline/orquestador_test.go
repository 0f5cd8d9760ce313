package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inmobiliaria-rd/api-contratos/internal/contrato"
	"github.com/inmobiliaria-rd/api-contratos/internal/documento"
	"github.com/inmobiliaria-rd/api-contratos/internal/notificacion"
	"github.com/inmobiliaria-rd/api-contratos/internal/participante"
	"github.com/inmobiliaria-rd/api-contratos/internal/parrafo"
	"github.com/inmobiliaria-rd/api-contratos/internal/persona"
	"github.com/inmobiliaria-rd/api-contratos/internal/prestamo"
	"github.com/inmobiliaria-rd/api-contratos/internal/propiedad"
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

type MockContratos struct {
	mock.Mock
}

func (m *MockContratos) Crear(db *gorm.DB, c *contrato.Contrato) error {
	args := m.Called(db, c)
	return args.Error(0)
}

func (m *MockContratos) BuscarPorID(db *gorm.DB, id uint) (*contrato.Contrato, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contrato.Contrato), args.Error(1)
}

func (m *MockContratos) BuscarPorNumero(db *gorm.DB, numero string) (*contrato.Contrato, error) {
	args := m.Called(db, numero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contrato.Contrato), args.Error(1)
}

func (m *MockContratos) ListarTodos(db *gorm.DB) ([]contrato.Contrato, error) {
	args := m.Called(db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]contrato.Contrato), args.Error(1)
}

func (m *MockContratos) ActualizarInfoDocumento(db *gorm.DB, id uint, archivo, rutaArchivo, rutaCarpeta string) error {
	args := m.Called(db, id, archivo, rutaArchivo, rutaCarpeta)
	return args.Error(0)
}

func (m *MockContratos) IncrementarVersion(db *gorm.DB, id uint) (int, error) {
	args := m.Called(db, id)
	return args.Int(0), args.Error(1)
}

func (m *MockContratos) RegistrarParticipantes(db *gorm.DB, contratoID uint, participantes []participante.Participante) []contrato.ErrorAsociacion {
	args := m.Called(db, contratoID, participantes)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]contrato.ErrorAsociacion)
}

func (m *MockContratos) CrearRelacionesClienteReferidor(db *gorm.DB, participantes []participante.Participante) (int, []contrato.ErrorAsociacion) {
	args := m.Called(db, participantes)
	if args.Get(1) == nil {
		return args.Int(0), nil
	}
	return args.Int(0), args.Get(1).([]contrato.ErrorAsociacion)
}

func (m *MockContratos) EliminarParticipantes(db *gorm.DB, contratoID uint) error {
	args := m.Called(db, contratoID)
	return args.Error(0)
}

func (m *MockContratos) Eliminar(db *gorm.DB, id uint) error {
	args := m.Called(db, id)
	return args.Error(0)
}

type MockAsignador struct {
	mock.Mock
}

func (m *MockAsignador) Asignar(db *gorm.DB, tipoContrato string) (string, bool) {
	args := m.Called(db, tipoContrato)
	return args.String(0), args.Bool(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Buscar(db *gorm.DB, rol, tipoContrato, seccion, servicio string) (string, error) {
	args := m.Called(db, rol, tipoContrato, seccion, servicio)
	return args.String(0), args.Error(1)
}

func armarOrquestador(t *testing.T, registro *MockRegistry, contratos *MockContratos, asignador *MockAsignador, store *MockStore, dirPlantillas string) *Orquestador {
	t.Helper()
	sugar := zap.NewNop().Sugar()
	return &Orquestador{
		Participantes: participante.NewResolver(registro, sugar),
		Contratos:     contratos,
		Asignador:     asignador,
		Parrafos:      parrafo.NewResolver(store, sugar),
		Prestamos:     prestamo.NewWriter(sugar),
		Propiedades:   propiedad.NewWriter(sugar),
		Generador:     documento.NewGenerador(dirPlantillas, t.TempDir(), sugar),
		Notificador:   notificacion.NewNotificador(sugar),
		Log:           sugar,
	}
}

func TestGenerarCompletoExitoso(t *testing.T) {
	plantillas := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(plantillas, "mortgage_template.tmpl"),
		[]byte("CONTRATO {{contract_number}}\n{{client_paragraph}}"), 0o644))

	registro := new(MockRegistry)
	contratos := new(MockContratos)
	asignador := new(MockAsignador)
	store := new(MockStore)
	orquestador := armarOrquestador(t, registro, contratos, asignador, store, plantillas)

	registro.On("CrearOCompletar", mock.Anything, mock.Anything).
		Return(&persona.ResultadoRegistro{PersonaID: 10}, nil)
	asignador.On("Asignar", mock.Anything, "mortgage").Return("MORTGAGE-2026-0001", false)
	contratos.On("Crear", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*contrato.Contrato).ID = 77
		}).Return(nil)
	contratos.On("RegistrarParticipantes", mock.Anything, uint(77), mock.Anything).Return(nil)
	contratos.On("CrearRelacionesClienteReferidor", mock.Anything, mock.Anything).Return(0, nil)
	contratos.On("ActualizarInfoDocumento", mock.Anything, uint(77), "MORTGAGE-2026-0001.txt", mock.Anything, mock.Anything).Return(nil)
	store.On("Buscar", mock.Anything, "client", "juridica", "identification", "mortgage").
		Return("Comparece {{client_name}}.", nil)

	datos := map[string]any{
		"contract_type": "mortgage",
		"clients": []any{
			map[string]any{
				"person": map[string]any{
					"p_first_name": "Juan",
					"p_last_name":  "Pérez",
				},
			},
		},
		"paragraph_request": []any{
			map[string]any{
				"person_role":       "client",
				"contract_type":     "juridica",
				"section":           "identification",
				"contract_services": "mortgage",
			},
		},
	}

	respuesta, err := orquestador.GenerarCompleto(nil, datos)
	require.NoError(t, err)
	assert.True(t, respuesta.Success)
	assert.Equal(t, uint(77), respuesta.ContractID)
	assert.Equal(t, "MORTGAGE-2026-0001", respuesta.ContractNumber)
	assert.Equal(t, "mortgage_template.tmpl", respuesta.TemplateUsed)
	assert.Nil(t, respuesta.Warnings)

	require.NotNil(t, respuesta.ProcessedData)
	assert.Equal(t, 1, respuesta.ProcessedData.ParticipantsCount)
	assert.Equal(t, "completada", respuesta.ProcessedData.DocumentGeneration)
	assert.Equal(t, 1, respuesta.ProcessedData.PersonsSummary.Exitosos)

	cuerpo, err := os.ReadFile(respuesta.Path)
	require.NoError(t, err)
	assert.Contains(t, string(cuerpo), "CONTRATO MORTGAGE-2026-0001")
	contratos.AssertExpectations(t)
}

func TestGenerarCompletoSinParticipantesAborta(t *testing.T) {
	registro := new(MockRegistry)
	contratos := new(MockContratos)
	orquestador := armarOrquestador(t, registro, contratos, new(MockAsignador), new(MockStore), t.TempDir())

	respuesta, err := orquestador.GenerarCompleto(nil, map[string]any{})
	assert.ErrorIs(t, err, ErrSinParticipantes)
	assert.False(t, respuesta.Success)
	assert.Zero(t, respuesta.ContractID)
	assert.Equal(t, "no_iniciada", respuesta.ProcessedData.DocumentGeneration)
	contratos.AssertNotCalled(t, "Crear", mock.Anything, mock.Anything)
}

func TestGenerarCompletoFalloTerminalDePlantilla(t *testing.T) {
	registro := new(MockRegistry)
	contratos := new(MockContratos)
	asignador := new(MockAsignador)
	store := new(MockStore)
	store.On("Buscar", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	// directorio de plantillas vacío
	orquestador := armarOrquestador(t, registro, contratos, asignador, store, t.TempDir())

	registro.On("CrearOCompletar", mock.Anything, mock.Anything).
		Return(&persona.ResultadoRegistro{PersonaID: 10}, nil)
	asignador.On("Asignar", mock.Anything, "mortgage").Return("MORTGAGE-2026-0002", true)
	contratos.On("Crear", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*contrato.Contrato).ID = 78
		}).Return(nil)
	contratos.On("RegistrarParticipantes", mock.Anything, uint(78), mock.Anything).Return(nil)
	contratos.On("CrearRelacionesClienteReferidor", mock.Anything, mock.Anything).Return(0, nil)
	contratos.On("EliminarParticipantes", mock.Anything, uint(78)).Return(nil)
	contratos.On("Eliminar", mock.Anything, uint(78)).Return(nil)

	datos := map[string]any{
		"clients": []any{
			map[string]any{"person": map[string]any{"p_first_name": "Juan"}},
		},
	}

	respuesta, err := orquestador.GenerarCompleto(nil, datos)
	require.Error(t, err)
	assert.False(t, respuesta.Success)
	assert.Equal(t, "revertida", respuesta.ProcessedData.DocumentGeneration)
	// las compensaciones corren en orden inverso: participantes y luego contrato
	contratos.AssertCalled(t, "EliminarParticipantes", mock.Anything, uint(78))
	contratos.AssertCalled(t, "Eliminar", mock.Anything, uint(78))
	contratos.AssertNotCalled(t, "ActualizarInfoDocumento",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerarCompletoAcumulaErroresDePersona(t *testing.T) {
	plantillas := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(plantillas, "mortgage_template.tmpl"), []byte("{{contract_number}}"), 0o644))

	registro := new(MockRegistry)
	contratos := new(MockContratos)
	asignador := new(MockAsignador)
	store := new(MockStore)
	store.On("Buscar", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	orquestador := armarOrquestador(t, registro, contratos, asignador, store, plantillas)

	registro.On("CrearOCompletar", mock.Anything, mock.MatchedBy(func(s *persona.SolicitudPersona) bool {
		return s.Nombre == "Roto"
	})).Return(nil, assert.AnError)
	registro.On("CrearOCompletar", mock.Anything, mock.MatchedBy(func(s *persona.SolicitudPersona) bool {
		return s.Nombre == "Sano"
	})).Return(&persona.ResultadoRegistro{PersonaID: 11}, nil)
	asignador.On("Asignar", mock.Anything, "mortgage").Return("MORTGAGE-2026-0003", false)
	contratos.On("Crear", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*contrato.Contrato).ID = 79
		}).Return(nil)
	contratos.On("RegistrarParticipantes", mock.Anything, uint(79), mock.Anything).Return(nil)
	contratos.On("CrearRelacionesClienteReferidor", mock.Anything, mock.Anything).Return(0, nil)
	contratos.On("ActualizarInfoDocumento", mock.Anything, uint(79), mock.Anything, mock.Anything, mock.Anything).Return(nil)

	datos := map[string]any{
		"clients": []any{
			map[string]any{"person": map[string]any{"p_first_name": "Roto"}},
			map[string]any{"person": map[string]any{"p_first_name": "Sano"}},
		},
	}

	respuesta, err := orquestador.GenerarCompleto(nil, datos)
	require.NoError(t, err)
	assert.True(t, respuesta.Success, "un fallo parcial de personas no impide el contrato")
	require.NotNil(t, respuesta.Warnings)
	require.Len(t, respuesta.Warnings.PersonErrors, 1)
	assert.Contains(t, respuesta.Warnings.Message, "1 participante")
	assert.Equal(t, 1, respuesta.ProcessedData.ParticipantsCount)
}

func TestGenerarCompletoConservaMensajeAlNoAnotar(t *testing.T) {
	plantillas := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(plantillas, "mortgage_template.tmpl"), []byte("{{contract_number}}"), 0o644))

	registro := new(MockRegistry)
	contratos := new(MockContratos)
	asignador := new(MockAsignador)
	store := new(MockStore)
	store.On("Buscar", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	orquestador := armarOrquestador(t, registro, contratos, asignador, store, plantillas)

	registro.On("CrearOCompletar", mock.Anything, mock.MatchedBy(func(s *persona.SolicitudPersona) bool {
		return s.Nombre == "Roto"
	})).Return(nil, assert.AnError)
	registro.On("CrearOCompletar", mock.Anything, mock.MatchedBy(func(s *persona.SolicitudPersona) bool {
		return s.Nombre == "Sano"
	})).Return(&persona.ResultadoRegistro{PersonaID: 12}, nil)
	asignador.On("Asignar", mock.Anything, "mortgage").Return("MORTGAGE-2026-0005", false)
	contratos.On("Crear", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*contrato.Contrato).ID = 80
		}).Return(nil)
	contratos.On("RegistrarParticipantes", mock.Anything, uint(80), mock.Anything).Return(nil)
	contratos.On("CrearRelacionesClienteReferidor", mock.Anything, mock.Anything).Return(0, nil)
	contratos.On("ActualizarInfoDocumento", mock.Anything, uint(80), mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	datos := map[string]any{
		"clients": []any{
			map[string]any{"person": map[string]any{"p_first_name": "Roto"}},
			map[string]any{"person": map[string]any{"p_first_name": "Sano"}},
		},
	}

	respuesta, err := orquestador.GenerarCompleto(nil, datos)
	require.NoError(t, err)
	require.NotNil(t, respuesta.Warnings)
	// el aviso de anotación se suma al de personas, no lo reemplaza
	assert.Contains(t, respuesta.Warnings.Message, "1 participante(s) no pudieron procesarse")
	assert.Contains(t, respuesta.Warnings.Message, "Documento generado pero no anotado")
}

func TestValidar(t *testing.T) {
	orquestador := &Orquestador{Log: zap.NewNop().Sugar()}

	valido := orquestador.Validar(map[string]any{
		"clients": []any{map[string]any{"person": map[string]any{}}},
		"loan":    map[string]any{"amount": 30000.0},
	})
	assert.True(t, valido.Valido)
	assert.True(t, valido.EsHipotecario)
	assert.Contains(t, valido.Bloques, "clients")
	assert.Contains(t, valido.Bloques, "loan")

	invalido := orquestador.Validar(map[string]any{
		"loan": map[string]any{"amount": 0.0},
	})
	assert.False(t, invalido.Valido)
	assert.Len(t, invalido.Problemas, 2)
}
