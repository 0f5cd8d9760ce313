package prestamo

import "time"

// Prestamo guarda las condiciones financieras asociadas a un contrato.
type Prestamo struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ContratoID     uint      `json:"contrato_id" gorm:"index;not null"`
	Monto          float64   `json:"monto" gorm:"not null"`
	Moneda         string    `json:"moneda" gorm:"size:10;default:USD"`
	TasaInteres    float64   `json:"tasa_interes"`
	PlazoMeses     int       `json:"plazo_meses"`
	TipoPrestamo   string    `json:"tipo_prestamo" gorm:"size:50"`
	CuotaMensual   float64   `json:"cuota_mensual"`
	PagoFinal      float64   `json:"pago_final"`
	TasaDescuento  float64   `json:"tasa_descuento"`
	CantidadCuotas int       `json:"cantidad_cuotas"`
	TipoPago       string    `json:"tipo_pago" gorm:"size:50"`
	Activo         bool      `json:"activo" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CuentaBancaria es la cuenta de desembolso registrada junto al préstamo.
type CuentaBancaria struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ContratoID   uint      `json:"contrato_id" gorm:"index;not null"`
	Banco        string    `json:"banco" gorm:"size:150"`
	NumeroCuenta string    `json:"numero_cuenta" gorm:"size:50"`
	TipoCuenta   string    `json:"tipo_cuenta" gorm:"size:20;default:ahorros"`
	Titular      string    `json:"titular" gorm:"size:200"`
	Moneda       string    `json:"moneda" gorm:"size:10;default:USD"`
	Activa       bool      `json:"activa" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
