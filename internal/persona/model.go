package persona

import (
	"time"

	"gorm.io/gorm"
)

// Persona es el registro maestro de personas físicas.
type Persona struct {
	gorm.Model
	Nombre          string     `gorm:"size:100;not null" json:"nombre"`
	SegundoNombre   string     `gorm:"size:100" json:"segundoNombre"`
	Apellido        string     `gorm:"size:100;not null" json:"apellido"`
	FechaNacimiento *time.Time `json:"fechaNacimiento,omitempty"`
	Genero          string     `gorm:"size:20" json:"genero"`
	Nacionalidad    string     `gorm:"size:60" json:"nacionalidad"`
	EstadoCivil     string     `gorm:"size:40" json:"estadoCivil"`
	Ocupacion       string     `gorm:"size:100" json:"ocupacion"`
	RolPersonaID    uint       `json:"rolPersonaId"`
	Activa          bool       `gorm:"default:true" json:"activa"`

	Documentos  []PersonaDocumento `gorm:"foreignKey:PersonaID" json:"documentos"`
	Direcciones []PersonaDireccion `gorm:"foreignKey:PersonaID" json:"direcciones"`
}

// PersonaDocumento es un documento de identidad de la persona.
// La unicidad del número de documento es la base de la deduplicación.
type PersonaDocumento struct {
	gorm.Model
	PersonaID       uint       `gorm:"not null;index" json:"personaId"`
	TipoDocumento   string     `gorm:"size:40;not null" json:"tipoDocumento"`
	NumeroDocumento string     `gorm:"size:60;not null;uniqueIndex" json:"numeroDocumento"`
	PaisEmisorID    uint       `json:"paisEmisorId"`
	EsPrincipal     bool       `json:"esPrincipal"`
	FechaEmision    *time.Time `json:"fechaEmision,omitempty"`
	FechaExpiracion *time.Time `json:"fechaExpiracion,omitempty"`
}

type PersonaDireccion struct {
	gorm.Model
	PersonaID    uint   `gorm:"not null;index" json:"personaId"`
	Linea1       string `gorm:"size:200" json:"linea1"`
	Linea2       string `gorm:"size:200" json:"linea2"`
	CiudadID     uint   `json:"ciudadId"`
	CodigoPostal string `gorm:"size:20" json:"codigoPostal"`
	Tipo         string `gorm:"size:40" json:"tipo"` // ej: "Casa", "Trabajo"
	EsPrincipal  bool   `json:"esPrincipal"`
}

// Empresa representa una sociedad que actúa como parte del contrato.
type Empresa struct {
	gorm.Model
	Nombre            string `gorm:"size:200;not null" json:"nombre"`
	RNC               string `gorm:"size:30;not null;uniqueIndex" json:"rnc"`
	RegistroMercantil string `gorm:"size:60" json:"registroMercantil"`
	Nacionalidad      string `gorm:"size:60" json:"nacionalidad"`
	Email             string `gorm:"size:120" json:"email"`
	Telefono          string `gorm:"size:40" json:"telefono"`
	SitioWeb          string `gorm:"size:120" json:"sitioWeb"`
	Tipo              string `gorm:"size:60" json:"tipo"`
	Descripcion       string `gorm:"size:500" json:"descripcion"`
	Activa            bool   `gorm:"default:true" json:"activa"`

	Gerentes    []EmpresaGerente  `gorm:"foreignKey:EmpresaID" json:"gerentes"`
	Direcciones []EmpresaDireccion `gorm:"foreignKey:EmpresaID" json:"direcciones"`
}

type EmpresaGerente struct {
	gorm.Model
	EmpresaID       uint   `gorm:"not null;index" json:"empresaId"`
	NombreCompleto  string `gorm:"size:200" json:"nombreCompleto"`
	Cargo           string `gorm:"size:100" json:"cargo"`
	Direccion       string `gorm:"size:200" json:"direccion"`
	NumeroDocumento string `gorm:"size:60;index" json:"numeroDocumento"`
	Nacionalidad    string `gorm:"size:60" json:"nacionalidad"`
	EstadoCivil     string `gorm:"size:40" json:"estadoCivil"`
	EsPrincipal     bool   `json:"esPrincipal"`
	Activo          bool   `gorm:"default:true" json:"activo"`
}

type EmpresaDireccion struct {
	gorm.Model
	EmpresaID    uint   `gorm:"not null;index" json:"empresaId"`
	Linea1       string `gorm:"size:200" json:"linea1"`
	Linea2       string `gorm:"size:200" json:"linea2"`
	Ciudad       string `gorm:"size:100" json:"ciudad"`
	CodigoPostal string `gorm:"size:20" json:"codigoPostal"`
	Tipo         string `gorm:"size:40" json:"tipo"` // ej: "Business"
	Email        string `gorm:"size:120" json:"email"`
	Telefono     string `gorm:"size:40" json:"telefono"`
	EsPrincipal  bool   `json:"esPrincipal"`
	Activa       bool   `gorm:"default:true" json:"activa"`
}
