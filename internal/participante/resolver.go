package participante

import (
	"errors"

	"github.com/inmobiliaria-rd/api-contratos/internal/persona"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolucion clasifica cómo se obtuvo el identificador del participante.
type Resolucion string

const (
	ResolucionNueva       Resolucion = "nueva"
	ResolucionExistente   Resolucion = "existente"
	ResolucionReutilizada Resolucion = "reutilizada" // conflicto de duplicado tratado como éxito
)

// Participante es un ocupante de rol resuelto. Exactamente uno de
// PersonaID/EmpresaID es distinto de cero. No se persiste como entidad
// propia: es la vista que alimenta las asociaciones del contrato.
type Participante struct {
	Rol         Rol
	PersonaID   uint
	EmpresaID   uint
	EsPrincipal bool
	Resolucion  Resolucion
	Nombre      string
}

// ErrorParticipante registra un participante que no pudo resolverse.
type ErrorParticipante struct {
	Rol     Rol    `json:"rol"`
	Indice  int    `json:"indice"`
	Nombre  string `json:"nombre"`
	Mensaje string `json:"mensaje"`
}

// Resumen acumula los contadores del procesamiento de personas.
type Resumen struct {
	Total        int `json:"total"`
	Exitosos     int `json:"exitosos"`
	Existentes   int `json:"existentes"`
	Reutilizadas int `json:"reutilizadas"`
	Errores      int `json:"errores"`
}

// Resolver recorre todos los grupos de participantes del documento de
// entrada y los resuelve contra el registro de personas.
type Resolver struct {
	Registry persona.Registry
	Log      *zap.SugaredLogger
}

func NewResolver(registry persona.Registry, log *zap.SugaredLogger) *Resolver {
	return &Resolver{Registry: registry, Log: log}
}

// ResolverTodos procesa cada entrada de cada grupo de roles y luego las
// empresas. Los fallos individuales se acumulan y el procesamiento
// continúa; decidir si el lote completo fracasó es responsabilidad del
// orquestador.
func (r *Resolver) ResolverTodos(db *gorm.DB, datos map[string]any) ([]Participante, []ErrorParticipante, Resumen) {
	var resueltos []Participante
	var fallos []ErrorParticipante
	var resumen Resumen

	for _, grupo := range GruposParticipantes {
		entradas := listaDeBloques(datos[grupo.Clave])
		for idx, bloque := range entradas {
			resumen.Total++

			solicitud, err := Normalizar(bloque, grupo.Rol)
			if err != nil {
				resumen.Errores++
				fallos = append(fallos, ErrorParticipante{
					Rol:     grupo.Rol,
					Indice:  idx,
					Nombre:  "Desconocido",
					Mensaje: err.Error(),
				})
				continue
			}

			p, errResolucion := r.resolverUno(db, solicitud, grupo.Rol, idx)
			if errResolucion != nil {
				resumen.Errores++
				fallos = append(fallos, *errResolucion)
				continue
			}

			resumen.Exitosos++
			switch p.Resolucion {
			case ResolucionExistente:
				resumen.Existentes++
			case ResolucionReutilizada:
				resumen.Reutilizadas++
			}
			resueltos = append(resueltos, *p)
			r.Log.Debugw("participante resuelto",
				"rol", p.Rol, "personaId", p.PersonaID, "resolucion", p.Resolucion)
		}
	}

	resueltos, fallos, resumen = r.resolverEmpresas(db, datos, resueltos, fallos, resumen)
	return resueltos, fallos, resumen
}

func (r *Resolver) resolverUno(db *gorm.DB, s *persona.SolicitudPersona, rol Rol, idx int) (*Participante, *ErrorParticipante) {
	resultado, err := r.Registry.CrearOCompletar(db, s)
	if err != nil {
		// Código estructurado del registro: el conflicto trae el
		// identificador vigente y se trata como reutilización.
		var duplicada *persona.ErrorPersonaDuplicada
		if errors.As(err, &duplicada) && duplicada.PersonaID != 0 {
			return &Participante{
				Rol:         rol,
				PersonaID:   duplicada.PersonaID,
				EsPrincipal: idx == 0,
				Resolucion:  ResolucionReutilizada,
				Nombre:      NombreMostrable(s),
			}, nil
		}
		return nil, &ErrorParticipante{
			Rol:     rol,
			Indice:  idx,
			Nombre:  NombreMostrable(s),
			Mensaje: err.Error(),
		}
	}

	resolucion := ResolucionNueva
	if resultado.Existia {
		resolucion = ResolucionExistente
	}
	return &Participante{
		Rol:         rol,
		PersonaID:   resultado.PersonaID,
		EsPrincipal: idx == 0,
		Resolucion:  resolucion,
		Nombre:      NombreMostrable(s),
	}, nil
}

// Las empresas se resuelven por RNC y siempre quedan como participante
// principal de su rol.
func (r *Resolver) resolverEmpresas(db *gorm.DB, datos map[string]any, resueltos []Participante, fallos []ErrorParticipante, resumen Resumen) ([]Participante, []ErrorParticipante, Resumen) {
	for _, grupo := range GruposEmpresa {
		bloque, ok := datos[grupo.Clave].(map[string]any)
		if !ok {
			continue
		}
		solicitud, err := NormalizarEmpresa(bloque)
		if err != nil || solicitud.RNC == "" {
			continue
		}
		resumen.Total++

		empresaID, errEmpresa := r.Registry.BuscarOInsertarEmpresa(db, solicitud)
		if errEmpresa != nil {
			resumen.Errores++
			fallos = append(fallos, ErrorParticipante{
				Rol:     grupo.Rol,
				Indice:  0,
				Nombre:  nombreEmpresa(solicitud.Nombre),
				Mensaje: errEmpresa.Error(),
			})
			continue
		}

		resumen.Exitosos++
		resueltos = append(resueltos, Participante{
			Rol:         grupo.Rol,
			EmpresaID:   empresaID,
			EsPrincipal: true,
			Resolucion:  ResolucionNueva,
			Nombre:      nombreEmpresa(solicitud.Nombre),
		})
	}
	return resueltos, fallos, resumen
}

func nombreEmpresa(nombre string) string {
	if nombre == "" {
		return "Empresa sin nombre"
	}
	return nombre
}

// El bloque notary llega como objeto único en documentos viejos; se
// trata como lista de uno.
func listaDeBloques(v any) []map[string]any {
	if bloque, ok := v.(map[string]any); ok {
		return []map[string]any{bloque}
	}
	lista, ok := v.([]any)
	if !ok {
		return nil
	}
	var bloques []map[string]any
	for _, elemento := range lista {
		if bloque, ok := elemento.(map[string]any); ok {
			bloques = append(bloques, bloque)
		}
	}
	return bloques
}
