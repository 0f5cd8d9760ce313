package prestamo

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type prestamoCrudo struct {
	Amount       float64 `mapstructure:"amount"`
	Currency     string  `mapstructure:"currency"`
	InterestRate float64 `mapstructure:"interest_rate"`
	TermMonths   int     `mapstructure:"term_months"`
	LoanType     string  `mapstructure:"loan_type"`
	Pagos        struct {
		MonthlyPayment  float64 `mapstructure:"monthly_payment"`
		FinalPayment    float64 `mapstructure:"final_payment"`
		DiscountRate    float64 `mapstructure:"discount_rate"`
		PaymentQtyQuote int     `mapstructure:"payment_qty_quotes"`
		PaymentType     string  `mapstructure:"payment_type"`
	} `mapstructure:"loan_payments_details"`
}

type cuentaCruda struct {
	BankName      string `mapstructure:"bank_name"`
	AccountNumber string `mapstructure:"bank_account_number"`
	AccountType   string `mapstructure:"bank_account_type"`
	Currency      string `mapstructure:"bank_account_currency"`
}

// Resultado describe lo persistido por EscribirPrestamo. Un préstamo
// ausente o un fallo de escritura no detienen la generación del
// contrato, sólo se reportan.
type Resultado struct {
	PrestamoID uint   `json:"prestamo_id,omitempty"`
	CuentaID   uint   `json:"cuenta_id,omitempty"`
	Mensaje    string `json:"mensaje,omitempty"`
}

// Writer persiste el bloque loan y la cuenta bancaria de la solicitud.
type Writer struct {
	Log *zap.SugaredLogger
}

func NewWriter(log *zap.SugaredLogger) *Writer {
	return &Writer{Log: log}
}

// Escribir guarda el préstamo y la cuenta bancaria del contrato. Es de
// mejor esfuerzo: devuelve el detalle del fallo en Resultado.Mensaje en
// vez de abortar.
func (w *Writer) Escribir(db *gorm.DB, contratoID uint, datos map[string]any) Resultado {
	bloque, ok := datos["loan"].(map[string]any)
	if !ok {
		return Resultado{Mensaje: "sin datos de préstamo"}
	}

	prestamo, err := construirPrestamo(contratoID, bloque)
	if err != nil {
		w.Log.Warnw("préstamo no construido", "error", err)
		return Resultado{Mensaje: err.Error()}
	}
	if err := db.Create(prestamo).Error; err != nil {
		w.Log.Errorw("no se pudo guardar el préstamo", "contrato_id", contratoID, "error", err)
		return Resultado{Mensaje: fmt.Sprintf("error guardando préstamo: %v", err)}
	}

	resultado := Resultado{PrestamoID: prestamo.ID}
	if cuenta, ok := bloque["bank_account"].(map[string]any); ok {
		resultado.CuentaID, resultado.Mensaje = w.escribirCuenta(db, contratoID, cuenta, datos)
	}
	return resultado
}

// Revertir es la compensación: borra el préstamo y la cuenta del contrato.
func (w *Writer) Revertir(db *gorm.DB, contratoID uint) error {
	if err := db.Where("contrato_id = ?", contratoID).Delete(&CuentaBancaria{}).Error; err != nil {
		return err
	}
	return db.Where("contrato_id = ?", contratoID).Delete(&Prestamo{}).Error
}

func (w *Writer) escribirCuenta(db *gorm.DB, contratoID uint, bloque map[string]any, datos map[string]any) (uint, string) {
	cuenta, err := construirCuenta(contratoID, bloque, datos)
	if err != nil {
		return 0, err.Error()
	}
	if err := db.Create(cuenta).Error; err != nil {
		w.Log.Errorw("no se pudo guardar la cuenta bancaria", "contrato_id", contratoID, "error", err)
		return 0, fmt.Sprintf("error guardando cuenta bancaria: %v", err)
	}
	return cuenta.ID, ""
}

func construirPrestamo(contratoID uint, bloque map[string]any) (*Prestamo, error) {
	var crudo prestamoCrudo
	if err := decodificar(bloque, &crudo); err != nil {
		return nil, fmt.Errorf("datos de préstamo inválidos: %w", err)
	}
	if crudo.Amount <= 0 {
		return nil, fmt.Errorf("monto de préstamo no positivo")
	}
	return &Prestamo{
		ContratoID:     contratoID,
		Monto:          crudo.Amount,
		Moneda:         monedaODefecto(crudo.Currency),
		TasaInteres:    crudo.InterestRate,
		PlazoMeses:     crudo.TermMonths,
		TipoPrestamo:   crudo.LoanType,
		CuotaMensual:   crudo.Pagos.MonthlyPayment,
		PagoFinal:      crudo.Pagos.FinalPayment,
		TasaDescuento:  crudo.Pagos.DiscountRate,
		CantidadCuotas: crudo.Pagos.PaymentQtyQuote,
		TipoPago:       crudo.Pagos.PaymentType,
		Activo:         true,
	}, nil
}

// El titular no viaja en la solicitud: siempre se resuelve por prioridad.
func construirCuenta(contratoID uint, bloque map[string]any, datos map[string]any) (*CuentaBancaria, error) {
	var cruda cuentaCruda
	if err := decodificar(bloque, &cruda); err != nil {
		return nil, fmt.Errorf("cuenta bancaria inválida: %w", err)
	}
	if cruda.AccountNumber == "" {
		return nil, fmt.Errorf("cuenta bancaria sin número")
	}
	return &CuentaBancaria{
		ContratoID:   contratoID,
		Banco:        cruda.BankName,
		NumeroCuenta: cruda.AccountNumber,
		TipoCuenta:   NormalizarTipoCuenta(cruda.AccountType),
		Titular:      TitularPorPrioridad(datos),
		Moneda:       monedaODefecto(cruda.Currency),
		Activa:       true,
	}, nil
}

// TitularPorPrioridad elige el titular de la cuenta: la empresa del
// cliente, luego la del inversionista, luego el primer cliente persona
// física.
func TitularPorPrioridad(datos map[string]any) string {
	if nombre := nombreEmpresa(datos["client_company"]); nombre != "" {
		return nombre
	}
	if nombre := nombreEmpresa(datos["investor_company"]); nombre != "" {
		return nombre
	}
	if clientes, ok := datos["clients"].([]any); ok && len(clientes) > 0 {
		if primero, ok := clientes[0].(map[string]any); ok {
			if nombre := nombrePersona(primero); nombre != "" {
				return nombre
			}
		}
	}
	return "TITULAR NO ESPECIFICADO"
}

// NormalizarTipoCuenta acota el tipo a los valores conocidos.
func NormalizarTipoCuenta(tipo string) string {
	switch strings.ToLower(strings.TrimSpace(tipo)) {
	case "corriente", "checking":
		return "corriente"
	case "inversion", "inversión", "investment":
		return "inversion"
	default:
		return "ahorros"
	}
}

func nombreEmpresa(v any) string {
	bloque, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	if nombre, ok := bloque["company_name"].(string); ok && nombre != "" {
		return nombre
	}
	if nombre, ok := bloque["name"].(string); ok {
		return nombre
	}
	return ""
}

func nombrePersona(bloque map[string]any) string {
	objeto, ok := bloque["person"].(map[string]any)
	if !ok {
		objeto = bloque
	}
	nombre, _ := objeto["p_first_name"].(string)
	apellido, _ := objeto["p_last_name"].(string)
	if nombre == "" {
		nombre, _ = objeto["first_name"].(string)
	}
	if apellido == "" {
		apellido, _ = objeto["last_name"].(string)
	}
	return strings.TrimSpace(nombre + " " + apellido)
}

func monedaODefecto(m string) string {
	if m == "" {
		return "USD"
	}
	return strings.ToUpper(m)
}

func decodificar(entrada any, salida any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           salida,
	})
	if err != nil {
		return err
	}
	return dec.Decode(entrada)
}
