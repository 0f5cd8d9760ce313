package parrafo

import "gorm.io/gorm"

// PlantillaParrafo es texto legal reutilizable, clave por rol de
// persona, tipo de contrato, sección y servicio. Dentro de una sección
// gana la plantilla activa de menor orden.
type PlantillaParrafo struct {
	gorm.Model
	RolPersona   string `gorm:"size:40;not null;index" json:"rolPersona"`    // client | investor | witness | notary
	TipoContrato string `gorm:"size:40;not null;index" json:"tipoContrato"`  // juridica | fisica_soltera | fisica_casada
	Seccion      string `gorm:"size:100;not null;index" json:"seccion"`
	Servicio     string `gorm:"size:40;not null;index" json:"servicio"` // mortgage | services | loan
	Titulo       string `gorm:"size:255" json:"titulo"`
	Contenido    string `gorm:"type:text;not null" json:"contenido"`
	Orden        int    `gorm:"default:1" json:"orden"`
	Activo       bool   `gorm:"default:true" json:"activo"`
}

// Solicitud es una entrada del arreglo paragraph_request.
type Solicitud struct {
	PersonRole       string `json:"person_role" mapstructure:"person_role"`
	ContractType     string `json:"contract_type" mapstructure:"contract_type"`
	Section          string `json:"section" mapstructure:"section"`
	ContractServices string `json:"contract_services" mapstructure:"contract_services"`
}

// Advertencia registra un párrafo no encontrado o fallido; nunca es un
// error fatal de la solicitud.
type Advertencia struct {
	Tipo         string `json:"tipo"` // missing_paragraph | paragraph_error
	RolPersona   string `json:"rolPersona"`
	TipoContrato string `json:"tipoContrato"`
	Seccion      string `json:"seccion"`
	Mensaje      string `json:"mensaje"`
}
