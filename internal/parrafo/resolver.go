package parrafo

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	variablesLlaves    = regexp.MustCompile(`\{\{(\w+)\}\}`)
	variablesCorchetes = regexp.MustCompile(`\[(\w+)\]`)
)

// mapaSecciones asocia cada sección de la base con su variable en la
// plantilla del documento. La sección identification se resuelve según
// el rol de la solicitud.
var mapaSecciones = map[string]string{
	"investors":        "investor_paragraph",
	"clients":          "client_paragraph",
	"witnesses":        "witness_paragraph",
	"notaries":         "notary_paragraph",
	"guarantees":       "guarantee_paragraph",
	"terms_conditions": "terms_paragraph",
	"payment_terms":    "payment_paragraph",
	"legal_clauses":    "legal_paragraph",
	"signatures":       "signature_paragraph",
}

// VariableSeccion devuelve la variable de documento de una sección, o
// cadena vacía si la sección no tiene mapeo.
func VariableSeccion(seccion, rol string) string {
	if seccion == "identification" {
		if rol == "client" {
			return "client_paragraph"
		}
		return "investor_paragraph"
	}
	return mapaSecciones[seccion]
}

// Sustituir reemplaza las variables {{nombre}} y [nombre] de la
// plantilla con los valores del bolso plano. Una variable sin valor se
// deja como [nombre].
func Sustituir(plantilla string, datos map[string]any) string {
	if plantilla == "" {
		return ""
	}
	reemplazo := func(nombre string) string {
		if valor, ok := datos[nombre]; ok && valor != nil {
			return strings.TrimSpace(fmt.Sprint(valor))
		}
		return "[" + nombre + "]"
	}
	resultado := variablesLlaves.ReplaceAllStringFunc(plantilla, func(m string) string {
		return reemplazo(m[2 : len(m)-2])
	})
	resultado = variablesCorchetes.ReplaceAllStringFunc(resultado, func(m string) string {
		return reemplazo(m[1 : len(m)-1])
	})
	return resultado
}

// DecodificarSolicitudes interpreta el arreglo paragraph_request crudo.
func DecodificarSolicitudes(v any) []Solicitud {
	lista, ok := v.([]any)
	if !ok {
		return nil
	}
	var solicitudes []Solicitud
	for _, elemento := range lista {
		var s Solicitud
		if err := mapstructure.WeakDecode(elemento, &s); err != nil {
			continue
		}
		solicitudes = append(solicitudes, s)
	}
	return solicitudes
}

// Resolver obtiene y procesa los párrafos legales del contrato.
type Resolver struct {
	Store Store
	Log   *zap.SugaredLogger
}

func NewResolver(store Store, log *zap.SugaredLogger) *Resolver {
	return &Resolver{Store: store, Log: log}
}

// ResolverSolicitudes procesa cada entrada del paragraph_request. Una
// plantilla ausente degrada a un párrafo por defecto con advertencia;
// nada aquí es fatal.
func (r *Resolver) ResolverSolicitudes(db *gorm.DB, solicitudes []Solicitud, variables map[string]any) (map[string]string, []Advertencia) {
	resultados := make(map[string]string)
	var advertencias []Advertencia

	for _, s := range solicitudes {
		servicio := s.ContractServices
		if servicio == "" {
			servicio = s.ContractType
		}

		contenido, err := r.Store.Buscar(db, s.PersonRole, s.ContractType, s.Section, servicio)
		if err != nil {
			advertencias = append(advertencias, Advertencia{
				Tipo:         "paragraph_error",
				RolPersona:   s.PersonRole,
				TipoContrato: s.ContractType,
				Seccion:      s.Section,
				Mensaje:      err.Error(),
			})
			continue
		}

		claveCompuesta := fmt.Sprintf("%s_%s_%s", s.PersonRole, s.ContractType, s.Section)
		variable := VariableSeccion(s.Section, s.PersonRole)

		if contenido == "" {
			texto := fmt.Sprintf("Párrafo por defecto para %s - %s", s.PersonRole, s.Section)
			resultados[claveCompuesta] = texto
			if variable != "" {
				resultados[variable] = texto
			}
			advertencias = append(advertencias, Advertencia{
				Tipo:         "missing_paragraph",
				RolPersona:   s.PersonRole,
				TipoContrato: s.ContractType,
				Seccion:      s.Section,
				Mensaje:      fmt.Sprintf("No se encontró párrafo para %s - %s", s.PersonRole, s.Section),
			})
			continue
		}

		procesado := Sustituir(contenido, variables)
		resultados[claveCompuesta] = procesado
		if variable != "" {
			resultados[variable] = procesado
		}
		r.Log.Debugw("párrafo resuelto", "seccion", s.Section, "rol", s.PersonRole, "variable", variable)
	}

	return resultados, advertencias
}

// ResolverAutomatico cubre los documentos sin paragraph_request: se
// infiere el rol y el tipo desde los datos presentes y se trae el juego
// completo de secciones para ambos roles.
func (r *Resolver) ResolverAutomatico(db *gorm.DB, datos map[string]any, variables map[string]any) map[string]string {
	tipoContrato := textoODefecto(datos["contract_type_db"], textoODefecto(datos["contract_type_person"], "juridica"))
	switch tipoContrato {
	case "juridica", "fisica_soltera", "fisica_casada":
	default:
		tipoContrato = "juridica"
	}
	servicio := textoODefecto(datos["contract_services"], textoODefecto(datos["contract_type"], "mortgage"))

	resultados := make(map[string]string)
	for _, rol := range []string{"client", "investor"} {
		for seccion, variable := range mapaSecciones {
			if _, ya := resultados[variable]; ya {
				continue
			}
			contenido, err := r.Store.Buscar(db, rol, tipoContrato, seccion, servicio)
			if err != nil || contenido == "" {
				continue
			}
			resultados[variable] = Sustituir(contenido, variables)
		}
	}
	return resultados
}

func textoODefecto(v any, defecto string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return defecto
}
