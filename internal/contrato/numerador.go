package contrato

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AsignadorNumero produce el número único legible del contrato.
type AsignadorNumero interface {
	Asignar(db *gorm.DB, tipoContrato string) (numero string, esRespaldo bool)
}

type asignadorSQL struct{}

func NewAsignadorNumero() AsignadorNumero {
	return &asignadorSQL{}
}

// Asignar delega en la función SQL generate_contract_number. Si la
// función falla se genera un número de respaldo con marca de tiempo y
// sufijo aleatorio; el sufijo evita colisiones entre asignaciones de
// respaldo dentro del mismo segundo.
func (a *asignadorSQL) Asignar(db *gorm.DB, tipoContrato string) (string, bool) {
	var numero string
	err := db.Raw("SELECT generate_contract_number(?)", tipoContrato).Scan(&numero).Error
	if err == nil && numero != "" {
		return numero, false
	}
	return NumeroRespaldo(tipoContrato, time.Now()), true
}

// NumeroRespaldo arma el número de contingencia: TIPO-FECHA-HORA-SUFIJO.
func NumeroRespaldo(tipoContrato string, t time.Time) string {
	sufijo := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(tipoContrato), t.Format("20060102-150405"), sufijo)
}
