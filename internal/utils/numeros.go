package utils

import (
	"fmt"
	"strings"
)

var unidades = []string{
	"cero", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve",
	"diez", "once", "doce", "trece", "catorce", "quince", "dieciséis", "diecisiete",
	"dieciocho", "diecinueve", "veinte", "veintiuno", "veintidós", "veintitrés",
	"veinticuatro", "veinticinco", "veintiséis", "veintisiete", "veintiocho", "veintinueve",
}

var decenas = []string{
	"", "", "", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa",
}

var centenas = []string{
	"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
	"seiscientos", "setecientos", "ochocientos", "novecientos",
}

// NumeroEnLetras convierte la parte entera de un monto a letras en español.
func NumeroEnLetras(n int64) string {
	if n == 0 {
		return "cero"
	}
	if n < 0 {
		return "menos " + NumeroEnLetras(-n)
	}
	return strings.TrimSpace(enLetras(n))
}

func enLetras(n int64) string {
	switch {
	case n >= 1_000_000:
		millones := n / 1_000_000
		resto := n % 1_000_000
		var cabeza string
		if millones == 1 {
			cabeza = "un millón"
		} else {
			cabeza = apocopar(enLetras(millones)) + " millones"
		}
		if resto == 0 {
			return cabeza
		}
		return cabeza + " " + enLetras(resto)
	case n >= 1000:
		miles := n / 1000
		resto := n % 1000
		var cabeza string
		if miles == 1 {
			cabeza = "mil"
		} else {
			cabeza = apocopar(enLetras(miles)) + " mil"
		}
		if resto == 0 {
			return cabeza
		}
		return cabeza + " " + enLetras(resto)
	case n >= 100:
		if n == 100 {
			return "cien"
		}
		resto := n % 100
		if resto == 0 {
			return centenas[n/100]
		}
		return centenas[n/100] + " " + enLetras(resto)
	case n >= 30:
		resto := n % 10
		if resto == 0 {
			return decenas[n/10]
		}
		return decenas[n/10] + " y " + unidades[resto]
	default:
		return unidades[n]
	}
}

// "veintiuno mil" no existe; antes de mil/millones se apocopa a "veintiún"/"un".
func apocopar(texto string) string {
	if strings.HasSuffix(texto, "veintiuno") {
		return strings.TrimSuffix(texto, "veintiuno") + "veintiún"
	}
	if strings.HasSuffix(texto, "uno") {
		return strings.TrimSuffix(texto, "uno") + "un"
	}
	return texto
}

func textoMoneda(moneda string) (string, string) {
	switch moneda {
	case "USD":
		return "DÓLARES ESTADOUNIDENSES", "USD"
	case "DOP":
		return "PESOS DOMINICANOS", "RD$"
	default:
		return strings.ToUpper(moneda), moneda
	}
}

// FormatearMiles devuelve el monto con separador de miles y dos decimales: 30000 -> "30,000.00".
func FormatearMiles(monto float64) string {
	s := fmt.Sprintf("%.2f", monto)
	punto := strings.Index(s, ".")
	entera, decimal := s[:punto], s[punto:]
	negativo := strings.HasPrefix(entera, "-")
	if negativo {
		entera = entera[1:]
	}
	var b strings.Builder
	for i, d := range entera {
		if i > 0 && (len(entera)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	resultado := b.String() + decimal
	if negativo {
		resultado = "-" + resultado
	}
	return resultado
}

// MontoEnTextoLegal genera el texto legal de un monto:
// 30000.00 USD -> "TREINTA MIL DÓLARES ESTADOUNIDENSES (USD 30,000.00)".
func MontoEnTextoLegal(monto float64, moneda string) string {
	letras := strings.ToUpper(NumeroEnLetras(int64(monto)))
	nombre, simbolo := textoMoneda(moneda)
	return fmt.Sprintf("%s %s (%s %s)", letras, nombre, simbolo, FormatearMiles(monto))
}

// MontoEnTextoSimple genera el texto sin el formato numérico entre paréntesis.
func MontoEnTextoSimple(monto float64, moneda string) string {
	letras := strings.ToUpper(NumeroEnLetras(int64(monto)))
	nombre, _ := textoMoneda(moneda)
	return fmt.Sprintf("%s %s", letras, nombre)
}

// FormatearMonto antepone el símbolo de la moneda: 30000 USD -> "USD 30,000.00".
func FormatearMonto(monto float64, moneda string) string {
	_, simbolo := textoMoneda(moneda)
	return fmt.Sprintf("%s %s", simbolo, FormatearMiles(monto))
}
