package pipeline

import (
	"github.com/inmobiliaria-rd/api-contratos/internal/contrato"
	"github.com/inmobiliaria-rd/api-contratos/internal/participante"
	"github.com/inmobiliaria-rd/api-contratos/internal/parrafo"
	"github.com/inmobiliaria-rd/api-contratos/internal/prestamo"
	"github.com/inmobiliaria-rd/api-contratos/internal/propiedad"
)

// RespuestaGeneracion es el sobre que devuelve el pipeline completo.
type RespuestaGeneracion struct {
	Success        bool             `json:"success"`
	Message        string           `json:"message"`
	ContractID     uint             `json:"contract_id,omitempty"`
	ContractNumber string           `json:"contract_number,omitempty"`
	Filename       string           `json:"filename,omitempty"`
	Path           string           `json:"path,omitempty"`
	FolderPath     string           `json:"folder_path,omitempty"`
	TemplateUsed   string           `json:"template_used,omitempty"`
	ProcessedData  *DatosProcesados `json:"processed_data,omitempty"`
	Warnings       *Advertencias    `json:"warnings"`
}

// DatosProcesados resume qué se hizo con cada bloque de la solicitud.
type DatosProcesados struct {
	PersonsSummary     participante.Resumen `json:"persons_summary"`
	ParticipantsCount  int                  `json:"participants_count"`
	LoanAmount         float64              `json:"loan_amount,omitempty"`
	PropertiesCount    int                  `json:"properties_count"`
	DocumentGeneration string               `json:"document_generation"`
	LoanPropertyResult *ResultadoSecundario `json:"loan_property_result,omitempty"`
}

// ResultadoSecundario agrupa las escrituras auxiliares al contrato.
type ResultadoSecundario struct {
	Prestamo             prestamo.Resultado  `json:"prestamo"`
	Propiedades          propiedad.Resultado `json:"propiedades"`
	RelacionesReferidor  int                 `json:"relaciones_referidor"`
}

// Advertencias acumula todo lo no fatal que pasó durante el pipeline.
// Si no hubo nada, el sobre lleva warnings: null.
type Advertencias struct {
	PersonErrors      []participante.ErrorParticipante `json:"person_errors,omitempty"`
	ParagraphWarnings []parrafo.Advertencia            `json:"paragraph_warnings,omitempty"`
	AssociationErrors []contrato.ErrorAsociacion       `json:"association_errors,omitempty"`
	Message           string                           `json:"message,omitempty"`
}

func (a *Advertencias) vacio() bool {
	return len(a.PersonErrors) == 0 && len(a.ParagraphWarnings) == 0 &&
		len(a.AssociationErrors) == 0 && a.Message == ""
}

// RespuestaValidacion es la salida del chequeo previo sin persistencia.
type RespuestaValidacion struct {
	Valido        bool     `json:"valido"`
	TipoContrato  string   `json:"tipo_contrato"`
	EsHipotecario bool     `json:"es_hipotecario"`
	Bloques       []string `json:"bloques_presentes"`
	Problemas     []string `json:"problemas,omitempty"`
}
