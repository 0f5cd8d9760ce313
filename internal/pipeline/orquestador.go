package pipeline

import (
	"errors"
	"fmt"

	"github.com/inmobiliaria-rd/api-contratos/internal/contrato"
	"github.com/inmobiliaria-rd/api-contratos/internal/documento"
	"github.com/inmobiliaria-rd/api-contratos/internal/notificacion"
	"github.com/inmobiliaria-rd/api-contratos/internal/participante"
	"github.com/inmobiliaria-rd/api-contratos/internal/parrafo"
	"github.com/inmobiliaria-rd/api-contratos/internal/prestamo"
	"github.com/inmobiliaria-rd/api-contratos/internal/propiedad"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrSinParticipantes detiene el pipeline: un contrato sin ningún
// participante resuelto no se crea.
var ErrSinParticipantes = errors.New("ningún participante pudo resolverse")

// Orquestador encadena las etapas de la generación completa de un
// contrato: personas, número, fila del contrato, asociaciones,
// préstamo y propiedades, párrafos y documento final.
type Orquestador struct {
	Participantes *participante.Resolver
	Contratos     contrato.Repository
	Asignador     contrato.AsignadorNumero
	Parrafos      *parrafo.Resolver
	Prestamos     *prestamo.Writer
	Propiedades   *propiedad.Writer
	Generador     *documento.Generador
	Notificador   *notificacion.Notificador
	Log           *zap.SugaredLogger
}

// GenerarCompleto ejecuta el pipeline entero sobre una transacción
// implícita por etapa: lo ya persistido se conserva aunque etapas
// posteriores degraden. Sólo dos cosas abortan: cero participantes y un
// fallo terminal de plantilla o escritura del documento.
func (o *Orquestador) GenerarCompleto(db *gorm.DB, datos map[string]any) (*RespuestaGeneracion, error) {
	advertencias := &Advertencias{}

	participantes, fallosPersonas, resumen := o.Participantes.ResolverTodos(db, datos)
	advertencias.PersonErrors = fallosPersonas
	if len(participantes) == 0 {
		o.Log.Errorw("pipeline abortado", "motivo", "sin participantes", "errores", len(fallosPersonas))
		return &RespuestaGeneracion{
			Success: false,
			Message: "No se pudo resolver ningún participante del contrato",
			ProcessedData: &DatosProcesados{
				PersonsSummary:     resumen,
				DocumentGeneration: "no_iniciada",
			},
			Warnings: advertencias,
		}, ErrSinParticipantes
	}
	if len(fallosPersonas) > 0 {
		advertencias.Message = fmt.Sprintf("%d participante(s) no pudieron procesarse", len(fallosPersonas))
	}

	solicitudes := parrafo.DecodificarSolicitudes(datos["paragraph_request"])

	tipoContrato := "mortgage"
	if t, ok := datos["contract_type"].(string); ok && t != "" {
		tipoContrato = t
	}
	numero, esRespaldo := o.Asignador.Asignar(db, tipoContrato)
	if esRespaldo {
		o.Log.Warnw("número de contrato de respaldo", "numero", numero)
	}

	fila := contrato.ConstruirContrato(datos, numero, solicitudes)
	if err := o.Contratos.Crear(db, fila); err != nil {
		return &RespuestaGeneracion{
			Success:  false,
			Message:  fmt.Sprintf("No se pudo crear el contrato: %v", err),
			Warnings: advertencias,
		}, err
	}
	o.Log.Infow("contrato creado", "id", fila.ID, "numero", numero)

	// Cada etapa confirmada apila su compensación; un fallo fatal
	// posterior las ejecuta en orden inverso. Los vínculos
	// cliente-referidor no se apilan: su creación salta duplicados y una
	// nueva corrida los reutiliza sin efecto.
	var compensaciones []compensacion
	compensaciones = append(compensaciones, compensacion{"contrato", func() error {
		return o.Contratos.Eliminar(db, fila.ID)
	}})

	advertencias.AssociationErrors = o.Contratos.RegistrarParticipantes(db, fila.ID, participantes)
	compensaciones = append(compensaciones, compensacion{"participantes", func() error {
		return o.Contratos.EliminarParticipantes(db, fila.ID)
	}})

	relaciones, fallosRelacion := o.Contratos.CrearRelacionesClienteReferidor(db, participantes)
	advertencias.AssociationErrors = append(advertencias.AssociationErrors, fallosRelacion...)

	resultadoPrestamo := o.Prestamos.Escribir(db, fila.ID, datos)
	if resultadoPrestamo.PrestamoID != 0 {
		compensaciones = append(compensaciones, compensacion{"prestamo", func() error {
			return o.Prestamos.Revertir(db, fila.ID)
		}})
	}
	resultadoPropiedades := o.Propiedades.Escribir(db, fila.ID, datos)
	if len(resultadoPropiedades.IDs) > 0 {
		ids := resultadoPropiedades.IDs
		compensaciones = append(compensaciones, compensacion{"propiedades", func() error {
			return o.Propiedades.Revertir(db, fila.ID, ids)
		}})
	}

	variables := documento.Aplanar(datos, numero)
	var parrafos map[string]string
	var avisosParrafo []parrafo.Advertencia
	if len(solicitudes) > 0 {
		parrafos, avisosParrafo = o.Parrafos.ResolverSolicitudes(db, solicitudes, variables)
	} else {
		parrafos = o.Parrafos.ResolverAutomatico(db, datos, variables)
	}
	advertencias.ParagraphWarnings = avisosParrafo

	resultadoDoc, err := o.Generador.Generar(datos, numero, parrafos, mensajesDeAvisos(avisosParrafo))
	if err != nil {
		o.Log.Errorw("generación de documento fallida, revirtiendo", "contrato_id", fila.ID, "error", err)
		o.revertir(compensaciones)
		return &RespuestaGeneracion{
			Success:        false,
			Message:        fmt.Sprintf("El documento del contrato %s no pudo generarse, cambios revertidos: %v", numero, err),
			ContractNumber: numero,
			ProcessedData: &DatosProcesados{
				PersonsSummary:     resumen,
				ParticipantsCount:  len(participantes),
				LoanAmount:         montoPrestamo(datos),
				PropertiesCount:    len(resultadoPropiedades.IDs),
				DocumentGeneration: "revertida",
			},
			Warnings: advertencias,
		}, err
	}

	if err := o.Contratos.ActualizarInfoDocumento(db, fila.ID, resultadoDoc.NombreArchivo, resultadoDoc.Ruta, resultadoDoc.RutaCarpeta); err != nil {
		o.Log.Warnw("no se pudo anotar el archivo en el contrato", "contrato_id", fila.ID, "error", err)
		aviso := "Documento generado pero no anotado en el contrato"
		if advertencias.Message != "" {
			advertencias.Message += "; " + aviso
		} else {
			advertencias.Message = aviso
		}
	}

	go o.Notificador.ContratoGenerado(fila.ID, numero, resultadoDoc.NombreArchivo)

	respuesta := &RespuestaGeneracion{
		Success:        true,
		Message:        fmt.Sprintf("Contrato %s generado exitosamente", numero),
		ContractID:     fila.ID,
		ContractNumber: numero,
		Filename:       resultadoDoc.NombreArchivo,
		Path:           resultadoDoc.Ruta,
		FolderPath:     resultadoDoc.RutaCarpeta,
		TemplateUsed:   resultadoDoc.PlantillaUsada,
		ProcessedData: &DatosProcesados{
			PersonsSummary:     resumen,
			ParticipantsCount:  len(participantes),
			LoanAmount:         montoPrestamo(datos),
			PropertiesCount:    len(resultadoPropiedades.IDs),
			DocumentGeneration: "completada",
			LoanPropertyResult: &ResultadoSecundario{
				Prestamo:            resultadoPrestamo,
				Propiedades:         resultadoPropiedades,
				RelacionesReferidor: relaciones,
			},
		},
	}
	if !advertencias.vacio() {
		respuesta.Warnings = advertencias
	}
	return respuesta, nil
}

// Regenerar vuelve a producir el documento de un contrato existente con
// datos frescos y sube la versión. El número original se conserva.
func (o *Orquestador) Regenerar(db *gorm.DB, contratoID uint, datos map[string]any) (*RespuestaGeneracion, error) {
	fila, err := o.Contratos.BuscarPorID(db, contratoID)
	if err != nil {
		return nil, fmt.Errorf("contrato %d no encontrado: %w", contratoID, err)
	}

	solicitudes := parrafo.DecodificarSolicitudes(datos["paragraph_request"])
	variables := documento.Aplanar(datos, fila.NumeroContrato)

	var parrafos map[string]string
	var avisosParrafo []parrafo.Advertencia
	if len(solicitudes) > 0 {
		parrafos, avisosParrafo = o.Parrafos.ResolverSolicitudes(db, solicitudes, variables)
	} else {
		parrafos = o.Parrafos.ResolverAutomatico(db, datos, variables)
	}

	resultadoDoc, err := o.Generador.Generar(datos, fila.NumeroContrato, parrafos, mensajesDeAvisos(avisosParrafo))
	if err != nil {
		return nil, fmt.Errorf("no se pudo regenerar el documento: %w", err)
	}

	version, err := o.Contratos.IncrementarVersion(db, fila.ID)
	if err != nil {
		o.Log.Warnw("versión no incrementada", "contrato_id", fila.ID, "error", err)
	}
	if err := o.Contratos.ActualizarInfoDocumento(db, fila.ID, resultadoDoc.NombreArchivo, resultadoDoc.Ruta, resultadoDoc.RutaCarpeta); err != nil {
		o.Log.Warnw("archivo no anotado tras regenerar", "contrato_id", fila.ID, "error", err)
	}

	respuesta := &RespuestaGeneracion{
		Success:        true,
		Message:        fmt.Sprintf("Contrato %s regenerado (versión %d)", fila.NumeroContrato, version),
		ContractID:     fila.ID,
		ContractNumber: fila.NumeroContrato,
		Filename:       resultadoDoc.NombreArchivo,
		Path:           resultadoDoc.Ruta,
		FolderPath:     resultadoDoc.RutaCarpeta,
		TemplateUsed:   resultadoDoc.PlantillaUsada,
	}
	if len(avisosParrafo) > 0 {
		respuesta.Warnings = &Advertencias{ParagraphWarnings: avisosParrafo}
	}
	return respuesta, nil
}

// Validar revisa la estructura de la solicitud sin persistir nada.
func (o *Orquestador) Validar(datos map[string]any) RespuestaValidacion {
	respuesta := RespuestaValidacion{Valido: true, TipoContrato: "mortgage"}
	if t, ok := datos["contract_type"].(string); ok && t != "" {
		respuesta.TipoContrato = t
	}
	respuesta.EsHipotecario = documento.EsHipotecario(datos)

	for _, clave := range []string{"clients", "investors", "witnesses", "notaries", "referents", "loan", "properties", "client_company", "investor_company", "paragraph_request"} {
		if presente(datos[clave]) {
			respuesta.Bloques = append(respuesta.Bloques, clave)
		}
	}

	if !presente(datos["clients"]) && !presente(datos["investors"]) && !presente(datos["client_company"]) && !presente(datos["investor_company"]) {
		respuesta.Valido = false
		respuesta.Problemas = append(respuesta.Problemas, "la solicitud no trae clientes ni inversionistas")
	}
	if bloque, ok := datos["loan"].(map[string]any); ok {
		if monto, ok := bloque["amount"].(float64); !ok || monto <= 0 {
			respuesta.Valido = false
			respuesta.Problemas = append(respuesta.Problemas, "el préstamo no trae un monto positivo")
		}
	}
	return respuesta
}

type compensacion struct {
	etapa string
	fn    func() error
}

// revertir ejecuta las compensaciones apiladas en orden inverso. Un
// fallo al compensar se registra y se sigue con las demás.
func (o *Orquestador) revertir(compensaciones []compensacion) {
	for i := len(compensaciones) - 1; i >= 0; i-- {
		if err := compensaciones[i].fn(); err != nil {
			o.Log.Errorw("compensación fallida", "etapa", compensaciones[i].etapa, "error", err)
		}
	}
}

func mensajesDeAvisos(avisos []parrafo.Advertencia) []string {
	if len(avisos) == 0 {
		return nil
	}
	mensajes := make([]string, 0, len(avisos))
	for _, a := range avisos {
		mensajes = append(mensajes, a.Mensaje)
	}
	return mensajes
}

func montoPrestamo(datos map[string]any) float64 {
	bloque, ok := datos["loan"].(map[string]any)
	if !ok {
		return 0
	}
	monto, _ := bloque["amount"].(float64)
	return monto
}

func presente(v any) bool {
	switch valor := v.(type) {
	case map[string]any:
		return len(valor) > 0
	case []any:
		return len(valor) > 0
	default:
		return false
	}
}
