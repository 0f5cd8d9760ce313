package propiedad

import "time"

// Propiedad es un inmueble ofrecido como garantía o parte del contrato.
type Propiedad struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	TipoPropiedad      string    `json:"tipo_propiedad" gorm:"size:50"`
	NumeroCatastral    string    `json:"numero_catastral" gorm:"size:100"`
	TituloRegistro     string    `json:"titulo_registro" gorm:"size:100"`
	Superficie         float64   `json:"superficie"`
	SuperficieCubierta float64   `json:"superficie_cubierta"`
	Valor              float64   `json:"valor"`
	Moneda             string    `json:"moneda" gorm:"size:10;default:USD"`
	Descripcion        string    `json:"descripcion" gorm:"type:text"`
	DireccionLinea1    string    `json:"direccion_linea1" gorm:"size:300"`
	DireccionLinea2    string    `json:"direccion_linea2" gorm:"size:300"`
	CiudadID           *uint     `json:"ciudad_id"`
	CodigoPostal       string    `json:"codigo_postal" gorm:"size:20"`
	Activa             bool      `json:"activa" gorm:"default:true"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ContratoPropiedad vincula una propiedad con un contrato y su papel en él.
type ContratoPropiedad struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ContratoID  uint      `json:"contrato_id" gorm:"index;not null"`
	PropiedadID uint      `json:"propiedad_id" gorm:"index;not null"`
	Rol         string    `json:"rol" gorm:"size:50;default:garantia"`
	EsPrincipal bool      `json:"es_principal" gorm:"default:false"`
	Notas       string    `json:"notas" gorm:"type:text"`
	Activo      bool      `json:"activo" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}
