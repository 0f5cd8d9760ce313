package contrato

import (
	"time"

	"gorm.io/gorm"
)

// Estados del contrato.
const EstadoBorrador = 1

// Contrato es el registro legal. El número de contrato es único e
// inmutable una vez asignado; los campos de archivo se completan después
// de generar el documento.
type Contrato struct {
	gorm.Model
	NumeroContrato string `gorm:"size:60;not null;uniqueIndex" json:"numeroContrato"`
	TipoContrato   string `gorm:"size:50;not null" json:"tipoContrato"` // ej: "mortgage"
	TipoServicioID uint   `json:"tipoServicioId"`

	// Tipo de parte por lado, derivado del paragraph_request.
	TipoParteClienteID       uint `json:"tipoParteClienteId"`
	TipoParteInversionistaID uint `json:"tipoParteInversionistaId"`

	EstadoID      uint      `gorm:"default:1" json:"estadoId"`
	FechaContrato time.Time `json:"fechaContrato"`
	FechaInicio   time.Time `json:"fechaInicio"`
	FechaFin      time.Time `json:"fechaFin"`
	Titulo        string    `gorm:"size:255" json:"titulo"`
	Descripcion   string    `gorm:"size:500" json:"descripcion"`

	NombrePlantilla  string `gorm:"size:120" json:"nombrePlantilla"`
	ArchivoGenerado  string `gorm:"size:255" json:"archivoGenerado"`
	RutaArchivo      string `gorm:"size:500" json:"rutaArchivo"`
	RutaCarpeta      string `gorm:"size:500" json:"rutaCarpeta"`
	Version          int    `gorm:"default:1" json:"version"`
	Activo           bool   `gorm:"default:true" json:"activo"`

	Participantes []ContratoParticipante `gorm:"foreignKey:ContratoID" json:"participantes"`
}

// ContratoParticipante vincula una persona o empresa al contrato.
// Exactamente uno de PersonaID/EmpresaID es no nulo.
type ContratoParticipante struct {
	gorm.Model
	ContratoID  uint  `gorm:"not null;index" json:"contratoId"`
	PersonaID   *uint `gorm:"index" json:"personaId,omitempty"`
	EmpresaID   *uint `gorm:"index" json:"empresaId,omitempty"`
	TipoRolID   uint  `gorm:"not null" json:"tipoRolId"`
	EsPrincipal bool  `json:"esPrincipal"`
	Activo      bool  `gorm:"default:true" json:"activo"`
}

// Cliente y Referidor son las filas de negocio asociadas a la persona;
// los vínculos cliente-referidor se arman sobre estas filas, no sobre
// la persona directamente.
type Cliente struct {
	gorm.Model
	PersonaID uint `gorm:"not null;index" json:"personaId"`
	Activo    bool `gorm:"default:true" json:"activo"`
}

type Referidor struct {
	gorm.Model
	PersonaID uint `gorm:"not null;index" json:"personaId"`
	Activo    bool `gorm:"default:true" json:"activo"`
}

// ClienteReferidor registra que un referidor presentó a un cliente.
type ClienteReferidor struct {
	gorm.Model
	ClienteID     uint      `gorm:"not null;index" json:"clienteId"`
	ReferidorID   uint      `gorm:"not null;index" json:"referidorId"`
	FechaRelacion time.Time `json:"fechaRelacion"`
	Activo        bool      `gorm:"default:true" json:"activo"`
}
