package documento

import (
	"fmt"
	"strings"
	"time"

	"github.com/inmobiliaria-rd/api-contratos/internal/utils"
	"github.com/mitchellh/mapstructure"
)

// Los bloques de participante anidan la persona bajo person (campos con
// prefijo p_; los de referidor vienen planos), el documento suelto bajo
// person_document o notary_document y la dirección bajo address.
type personaAnidada struct {
	FirstName   string `mapstructure:"p_first_name"`
	MiddleName  string `mapstructure:"p_middle_name"`
	LastName    string `mapstructure:"p_last_name"`
	Nationality string `mapstructure:"p_nationality_country"`
	CivilStatus string `mapstructure:"p_marital_status"`
	Occupation  string `mapstructure:"p_occupation"`
}

type personaSinPrefijo struct {
	FirstName   string `mapstructure:"first_name"`
	MiddleName  string `mapstructure:"middle_name"`
	LastName    string `mapstructure:"last_name"`
	Nationality string `mapstructure:"nationality_country"`
	CivilStatus string `mapstructure:"marital_status"`
	Occupation  string `mapstructure:"occupation"`
}

type documentoPlano struct {
	Number string `mapstructure:"document_number"`
	Type   string `mapstructure:"document_type"`
}

type direccionPlana struct {
	Linea1       string `mapstructure:"address_line1"`
	Linea2       string `mapstructure:"address_line2"`
	Ciudad       string `mapstructure:"city"`
	CodigoPostal string `mapstructure:"postal_code"`
}

type empresaPlana struct {
	CompanyName       string `mapstructure:"company_name"`
	RNC               string `mapstructure:"company_rnc"`
	RegistroMercantil string `mapstructure:"company_mercantil_number"`
	Managers          []struct {
		Name           string `mapstructure:"name"`
		DocumentNumber string `mapstructure:"document_number"`
		Position       string `mapstructure:"position"`
	} `mapstructure:"company_manager"`
	Address direccionPlana `mapstructure:"company_address"`
}

type prestamoPlano struct {
	Amount       float64 `mapstructure:"amount"`
	Currency     string  `mapstructure:"currency"`
	InterestRate float64 `mapstructure:"interest_rate"`
	TermMonths   int     `mapstructure:"term_months"`
	Pagos        struct {
		MonthlyPayment float64 `mapstructure:"monthly_payment"`
		FinalPayment   float64 `mapstructure:"final_payment"`
		DiscountRate   float64 `mapstructure:"discount_rate"`
		PaymentQty     int     `mapstructure:"payment_qty_quotes"`
		PaymentType    string  `mapstructure:"payment_type"`
	} `mapstructure:"loan_payments_details"`
	BankAccount struct {
		BankName      string `mapstructure:"bank_name"`
		AccountNumber string `mapstructure:"bank_account_number"`
		AccountType   string `mapstructure:"bank_account_type"`
		Currency      string `mapstructure:"bank_account_currency"`
	} `mapstructure:"bank_account"`
}

// Aplanar convierte la solicitud anidada en el bolso plano de variables
// que consumen las plantillas. Los escalares de primer nivel pasan tal
// cual; lo anidado se expande con prefijos indexados (client1_name,
// investor2_document).
func Aplanar(datos map[string]any, numeroContrato string) map[string]any {
	bolso := make(map[string]any)

	for clave, valor := range datos {
		switch valor.(type) {
		case string, float64, int, int64, bool:
			bolso[clave] = valor
		}
	}
	bolso["contract_number"] = numeroContrato

	fecha := utils.ParsearFechaContrato(textoDe(datos["contract_date"]))
	bolso["contract_date"] = utils.FechaSimple(fecha)
	bolso["contract_date_legal"] = utils.FechaLegal(fecha)
	bolso["first_payment_date"] = utils.FechaSimple(utils.PrimerPago(fecha))
	bolso["first_payment_date_legal"] = utils.FechaLegal(utils.PrimerPago(fecha))
	bolso["current_year"] = fmt.Sprint(time.Now().Year())

	if plazo := plazoMeses(datos["loan"]); plazo > 0 {
		ultimo := fecha.AddDate(0, plazo, 0)
		bolso["last_payment_date"] = utils.FechaSimple(ultimo)
		bolso["last_payment_date_legal"] = utils.FechaLegal(ultimo)
	}

	aplanarPrestamo(bolso, datos["loan"])
	aplanarGrupo(bolso, datos["clients"], "client")
	aplanarGrupo(bolso, datos["investors"], "investor")
	aplanarGrupo(bolso, datos["witnesses"], "witness")
	aplanarGrupo(bolso, datos["notaries"], "notary")
	if notario, ok := datos["notary"].(map[string]any); ok {
		aplanarGrupo(bolso, []any{any(notario)}, "notary")
	}
	aplanarEmpresa(bolso, datos["client_company"], "client_company")
	aplanarEmpresa(bolso, datos["investor_company"], "investor_company")
	aplanarPropiedades(bolso, datos["properties"])

	return bolso
}

func aplanarPrestamo(bolso map[string]any, v any) {
	bloque, ok := v.(map[string]any)
	if !ok {
		return
	}
	var p prestamoPlano
	if err := decodificar(bloque, &p); err != nil || p.Amount <= 0 {
		return
	}
	moneda := p.Currency
	if moneda == "" {
		moneda = "USD"
	}
	bolso["loan_amount"] = utils.FormatearMonto(p.Amount, moneda)
	bolso["loan_amount_text"] = utils.MontoEnTextoLegal(p.Amount, moneda)
	bolso["loan_currency"] = moneda
	bolso["interest_rate"] = fmt.Sprintf("%.2f%%", p.InterestRate)
	bolso["term_months"] = fmt.Sprint(p.TermMonths)
	if p.TermMonths > 0 {
		bolso["term_months_text"] = strings.ToUpper(utils.NumeroEnLetras(int64(p.TermMonths)))
	}
	if p.Pagos.MonthlyPayment > 0 {
		bolso["monthly_payment"] = utils.FormatearMonto(p.Pagos.MonthlyPayment, moneda)
		bolso["monthly_payment_text"] = utils.MontoEnTextoLegal(p.Pagos.MonthlyPayment, moneda)
	}
	if p.Pagos.FinalPayment > 0 {
		bolso["final_payment"] = utils.FormatearMonto(p.Pagos.FinalPayment, moneda)
		bolso["final_payment_text"] = utils.MontoEnTextoLegal(p.Pagos.FinalPayment, moneda)
	}
	if p.Pagos.DiscountRate > 0 {
		bolso["discount_rate"] = fmt.Sprintf("%.2f%%", p.Pagos.DiscountRate)
	}
	if p.Pagos.PaymentQty > 0 {
		bolso["payment_qty_quotes"] = fmt.Sprint(p.Pagos.PaymentQty)
	}
	if p.Pagos.PaymentType != "" {
		bolso["payment_type"] = p.Pagos.PaymentType
	}
	if p.BankAccount.AccountNumber != "" {
		bolso["bank_name"] = p.BankAccount.BankName
		bolso["bank_account_number"] = p.BankAccount.AccountNumber
		bolso["bank_account_type"] = p.BankAccount.AccountType
		bolso["bank_account_currency"] = valorODefecto(p.BankAccount.Currency, "USD")
	}
}

func aplanarGrupo(bolso map[string]any, v any, prefijo string) {
	lista, ok := v.([]any)
	if !ok {
		return
	}
	for i, elemento := range lista {
		bloque, ok := elemento.(map[string]any)
		if !ok {
			continue
		}
		objeto, _ := bloque["person"].(map[string]any)
		if objeto == nil {
			objeto = map[string]any{}
		}
		var p personaAnidada
		if err := decodificar(objeto, &p); err != nil {
			continue
		}
		if p.FirstName == "" {
			var plana personaSinPrefijo
			if err := decodificar(objeto, &plana); err == nil {
				p = personaAnidada(plana)
			}
		}

		var doc documentoPlano
		if crudo, ok := bloque["person_document"].(map[string]any); ok {
			_ = decodificar(crudo, &doc)
		} else if crudo, ok := bloque["notary_document"].(map[string]any); ok {
			_ = decodificar(crudo, &doc)
		}
		var dir direccionPlana
		if cruda, ok := bloque["address"].(map[string]any); ok {
			_ = decodificar(cruda, &dir)
		}

		clave := fmt.Sprintf("%s%d", prefijo, i+1)
		nombreCompleto := strings.TrimSpace(strings.Join([]string{p.FirstName, p.MiddleName, p.LastName}, " "))
		nombreCompleto = strings.Join(strings.Fields(nombreCompleto), " ")

		bolso[clave+"_name"] = p.FirstName
		bolso[clave+"_last_name"] = p.LastName
		bolso[clave+"_full_name"] = strings.ToUpper(nombreCompleto)
		bolso[clave+"_nationality"] = valorODefecto(p.Nationality, "Dominicana")
		bolso[clave+"_civil_status"] = p.CivilStatus
		bolso[clave+"_occupation"] = p.Occupation
		bolso[clave+"_document"] = doc.Number
		bolso[clave+"_document_type"] = valorODefecto(doc.Type, "Cédula")
		bolso[clave+"_address"] = dir.Linea1
		bolso[clave+"_address2"] = dir.Linea2
		bolso[clave+"_city"] = dir.Ciudad
		bolso[clave+"_postal_code"] = dir.CodigoPostal

		if i == 0 {
			for _, sufijo := range []string{"_name", "_last_name", "_full_name", "_nationality", "_civil_status", "_occupation", "_document", "_document_type", "_address", "_address2", "_city", "_postal_code"} {
				bolso[prefijo+sufijo] = bolso[clave+sufijo]
			}
		}
	}
}

func aplanarEmpresa(bolso map[string]any, v any, prefijo string) {
	bloque, ok := v.(map[string]any)
	if !ok {
		return
	}
	var e empresaPlana
	if err := decodificar(bloque, &e); err != nil || e.CompanyName == "" {
		return
	}
	bolso[prefijo+"_name"] = strings.ToUpper(e.CompanyName)
	bolso[prefijo+"_rnc"] = e.RNC
	bolso[prefijo+"_mercantil"] = e.RegistroMercantil
	bolso[prefijo+"_address"] = e.Address.Linea1
	bolso[prefijo+"_city"] = e.Address.Ciudad
	if len(e.Managers) > 0 {
		gerente := e.Managers[0]
		bolso[prefijo+"_manager_name"] = strings.ToUpper(strings.TrimSpace(gerente.Name))
		bolso[prefijo+"_manager_document"] = gerente.DocumentNumber
		bolso[prefijo+"_manager_position"] = valorODefecto(gerente.Position, "Gerente")
	}
}

func aplanarPropiedades(bolso map[string]any, v any) {
	lista, ok := v.([]any)
	if !ok {
		return
	}
	bolso["properties_count"] = fmt.Sprint(len(lista))
	for i, elemento := range lista {
		bloque, ok := elemento.(map[string]any)
		if !ok {
			continue
		}
		clave := fmt.Sprintf("property%d", i+1)
		bolso[clave+"_address"] = textoDe(bloque["address_line1"])
		bolso[clave+"_address2"] = textoDe(bloque["address_line2"])
		bolso[clave+"_city"] = textoDe(bloque["city"])
		bolso[clave+"_postal_code"] = textoDe(bloque["postal_code"])
		bolso[clave+"_title_number"] = textoDe(bloque["title_number"])
		bolso[clave+"_cadastral"] = textoDe(bloque["cadastral_number"])
		bolso[clave+"_type"] = textoDe(bloque["property_type"])
		bolso[clave+"_description"] = textoDe(bloque["description"])
		if superficie := decimalDe(bloque["surface_area"]); superficie > 0 {
			bolso[clave+"_surface_area"] = utils.FormatearMiles(superficie)
		}
		if cubierta := decimalDe(bloque["covered_area"]); cubierta > 0 {
			bolso[clave+"_covered_area"] = utils.FormatearMiles(cubierta)
		}
		if valor := decimalDe(bloque["property_value"]); valor > 0 {
			moneda := valorODefecto(textoDe(bloque["currency"]), "USD")
			bolso[clave+"_value"] = utils.FormatearMonto(valor, moneda)
			bolso[clave+"_value_text"] = utils.MontoEnTextoLegal(valor, moneda)
			bolso[clave+"_currency"] = moneda
		}
		if i == 0 {
			for _, sufijo := range []string{"_address", "_address2", "_city", "_postal_code", "_title_number", "_cadastral", "_type", "_description", "_surface_area", "_covered_area", "_value", "_value_text", "_currency"} {
				if valor, ok := bolso[clave+sufijo]; ok {
					bolso["property"+sufijo] = valor
				}
			}
		}
	}
}

func plazoMeses(v any) int {
	bloque, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	switch n := bloque["term_months"].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

func textoDe(v any) string {
	s, _ := v.(string)
	return s
}

func decimalDe(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func valorODefecto(v, defecto string) string {
	if v == "" {
		return defecto
	}
	return v
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
