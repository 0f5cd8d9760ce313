package contrato

import (
	"fmt"

	"github.com/inmobiliaria-rd/api-contratos/internal/parrafo"
	"github.com/inmobiliaria-rd/api-contratos/internal/utils"
)

// Tipos de parte contractual (persona jurídica o física).
const (
	ParteJuridica      = 1
	ParteFisicaSoltera = 2
	ParteFisicaCasada  = 3
)

func TipoParteID(tipo string) uint {
	switch tipo {
	case "juridica":
		return ParteJuridica
	case "fisica_soltera":
		return ParteFisicaSoltera
	case "fisica_casada":
		return ParteFisicaCasada
	}
	return ParteJuridica
}

// TiposPartePorLado cruza el paragraph_request: la primera entrada con
// rol client aporta el tipo del lado cliente, la primera con rol
// investor el del lado inversionista. La búsqueda corta al tener ambos.
func TiposPartePorLado(solicitudes []parrafo.Solicitud) (cliente, inversionista uint) {
	for _, s := range solicitudes {
		if cliente == 0 && s.PersonRole == "client" {
			cliente = TipoParteID(s.ContractType)
		}
		if inversionista == 0 && s.PersonRole == "investor" {
			inversionista = TipoParteID(s.ContractType)
		}
		if cliente != 0 && inversionista != 0 {
			break
		}
	}
	return cliente, inversionista
}

// ConstruirContrato arma la fila del contrato desde el documento de
// entrada. Las fechas mal formadas o ausentes se resuelven como hoy.
func ConstruirContrato(datos map[string]any, numero string, solicitudes []parrafo.Solicitud) *Contrato {
	fechaInicio := utils.ParsearFechaContrato(valorTexto(datos["contract_date"]))
	fechaFin := utils.ParsearFechaContrato(valorTexto(datos["contract_end_date"]))

	tipo := valorTexto(datos["contract_type"])
	if tipo == "" {
		tipo = "mortgage"
	}
	descripcion := valorTexto(datos["description"])
	tipoCliente, tipoInversionista := TiposPartePorLado(solicitudes)

	return &Contrato{
		NumeroContrato:           numero,
		TipoContrato:             tipo,
		TipoServicioID:           valorUint(datos["contract_type_id"], 1),
		TipoParteClienteID:       tipoCliente,
		TipoParteInversionistaID: tipoInversionista,
		EstadoID:                 EstadoBorrador,
		FechaContrato:            fechaInicio,
		FechaInicio:              fechaInicio,
		FechaFin:                 fechaFin,
		Titulo:                   descripcion,
		Descripcion:              descripcion,
		NombrePlantilla:          fmt.Sprintf("%s_template.tmpl", tipo),
		Version:                  1,
		Activo:                   true,
	}
}

func valorTexto(v any) string {
	s, _ := v.(string)
	return s
}

// Los números del JSON llegan como float64.
func valorUint(v any, defecto uint) uint {
	switch n := v.(type) {
	case float64:
		if n > 0 {
			return uint(n)
		}
	case int:
		if n > 0 {
			return uint(n)
		}
	case uint:
		if n > 0 {
			return n
		}
	}
	return defecto
}
