package utils

import (
	"fmt"
	"strings"
	"time"
)

var meses = []string{
	"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

// FormatoFechaContrato es el formato de entrada de las fechas del contrato.
const FormatoFechaContrato = "02/01/2006"

// ParsearFechaContrato convierte "DD/MM/YYYY" a time.Time.
// Una fecha vacía o mal formada se resuelve como la fecha actual.
func ParsearFechaContrato(fecha string) time.Time {
	t, err := time.Parse(FormatoFechaContrato, strings.TrimSpace(fecha))
	if err != nil {
		return time.Now()
	}
	return t
}

// FechaLegal genera el texto legal de una fecha:
// 2026-03-26 -> "VEINTISÉIS (26) del mes de MARZO del año DOS MIL VEINTISÉIS (2026)".
func FechaLegal(t time.Time) string {
	dia := strings.ToUpper(NumeroEnLetras(int64(t.Day())))
	anio := strings.ToUpper(NumeroEnLetras(int64(t.Year())))
	return fmt.Sprintf("%s (%d) del mes de %s del año %s (%d)",
		dia, t.Day(), meses[int(t.Month())-1], anio, t.Year())
}

// FechaSimple devuelve la fecha en formato DD/MM/YYYY.
func FechaSimple(t time.Time) string {
	return t.Format(FormatoFechaContrato)
}

// PrimerPago es la fecha del primer pago: un mes después de la fecha del contrato.
func PrimerPago(t time.Time) time.Time {
	return t.AddDate(0, 1, 0)
}
