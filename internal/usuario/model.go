package usuario

import "time"

// Usuario es una cuenta de acceso a la API de contratos.
type Usuario struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Nombre           string    `json:"nombre" gorm:"size:150;not null"`
	Email            string    `json:"email" gorm:"size:150;uniqueIndex;not null"`
	Contrasena       string    `json:"-" gorm:"size:200;not null"`
	EsAdmin          bool      `json:"es_admin" gorm:"default:false"`
	Activo           bool      `json:"activo" gorm:"default:true"`
	DebeRedefinir    bool      `json:"debe_redefinir" gorm:"default:false"`
	UltimoAccesoEn   *time.Time `json:"ultimo_acceso_en"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
