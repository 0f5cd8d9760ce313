package documento

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/inmobiliaria-rd/api-contratos/internal/parrafo"
	"go.uber.org/zap"
)

// ErrSinPlantillas indica que el directorio de plantillas está vacío.
// Es el único fallo de selección que detiene la generación.
var ErrSinPlantillas = errors.New("no hay plantillas de contrato disponibles")

var indicadoresHipoteca = []string{"loan", "properties", "clients", "investors", "witnesses", "notaries"}

// Metadatos acompaña a cada documento generado.
type Metadatos struct {
	NumeroContrato string    `json:"numero_contrato"`
	Plantilla      string    `json:"plantilla"`
	GeneradoEn     time.Time `json:"generado_en"`
	Variables      int       `json:"variables"`
	Advertencias   []string  `json:"advertencias,omitempty"`
}

// Resultado describe el documento escrito en disco.
type Resultado struct {
	NombreArchivo  string `json:"nombre_archivo"`
	Ruta           string `json:"ruta"`
	RutaCarpeta    string `json:"ruta_carpeta"`
	PlantillaUsada string `json:"plantilla_usada"`
	RutaMetadatos  string `json:"ruta_metadatos"`
}

// Generador sintetiza el documento final del contrato a partir de una
// plantilla de texto y el bolso de variables.
type Generador struct {
	DirPlantillas string
	DirSalida     string
	Log           *zap.SugaredLogger
}

func NewGenerador(dirPlantillas, dirSalida string, log *zap.SugaredLogger) *Generador {
	return &Generador{DirPlantillas: dirPlantillas, DirSalida: dirSalida, Log: log}
}

// EsHipotecario decide si la solicitud corresponde a un contrato de
// hipoteca: hay préstamo, o al menos cuatro de los seis bloques típicos
// están presentes.
func EsHipotecario(datos map[string]any) bool {
	if bloquePresente(datos["loan"]) {
		return true
	}
	presentes := 0
	for _, clave := range indicadoresHipoteca {
		if bloquePresente(datos[clave]) {
			presentes++
		}
	}
	return presentes >= 4
}

// SeleccionarPlantilla elige el archivo de plantilla para la solicitud.
// Si la plantilla nombrada no existe se toma la primera disponible.
func (g *Generador) SeleccionarPlantilla(datos map[string]any) (string, error) {
	tipo := "mortgage"
	if !EsHipotecario(datos) {
		if t, ok := datos["contract_type"].(string); ok && t != "" {
			tipo = t
		}
	}
	nombre := fmt.Sprintf("%s_template.tmpl", tipo)
	if _, err := os.Stat(filepath.Join(g.DirPlantillas, nombre)); err == nil {
		return nombre, nil
	}

	disponibles, err := filepath.Glob(filepath.Join(g.DirPlantillas, "*_template.tmpl"))
	if err != nil || len(disponibles) == 0 {
		return "", ErrSinPlantillas
	}
	sort.Strings(disponibles)
	elegida := filepath.Base(disponibles[0])
	g.Log.Warnw("plantilla no encontrada, usando alternativa", "pedida", nombre, "usada", elegida)
	return elegida, nil
}

// Generar produce el documento del contrato y sus metadatos en una
// carpeta propia bajo el directorio de salida. Si la escritura del
// contenido falla se limpia la carpeta antes de devolver el error.
func (g *Generador) Generar(datos map[string]any, numero string, parrafos map[string]string, advertencias []string) (Resultado, error) {
	plantilla, err := g.SeleccionarPlantilla(datos)
	if err != nil {
		return Resultado{}, err
	}

	crudo, err := os.ReadFile(filepath.Join(g.DirPlantillas, plantilla))
	if err != nil {
		return Resultado{}, fmt.Errorf("no se pudo leer la plantilla %s: %w", plantilla, err)
	}

	bolso := Aplanar(datos, numero)
	for clave, texto := range parrafos {
		bolso[clave] = texto
	}
	contenido := parrafo.Sustituir(string(crudo), bolso)

	carpeta := filepath.Join(g.DirSalida, "contrato_"+sanearNombre(numero))
	if err := os.MkdirAll(carpeta, 0o755); err != nil {
		return Resultado{}, fmt.Errorf("no se pudo crear la carpeta de salida: %w", err)
	}

	nombreArchivo := sanearNombre(numero) + ".txt"
	ruta := filepath.Join(carpeta, nombreArchivo)
	if err := os.WriteFile(ruta, []byte(contenido), 0o644); err != nil {
		os.RemoveAll(carpeta)
		return Resultado{}, fmt.Errorf("no se pudo escribir el documento: %w", err)
	}

	rutaMetadatos := filepath.Join(carpeta, sanearNombre(numero)+"_metadata.json")
	metadatos := Metadatos{
		NumeroContrato: numero,
		Plantilla:      plantilla,
		GeneradoEn:     time.Now(),
		Variables:      len(bolso),
		Advertencias:   advertencias,
	}
	if cuerpo, err := json.MarshalIndent(metadatos, "", "  "); err == nil {
		if err := os.WriteFile(rutaMetadatos, cuerpo, 0o644); err != nil {
			g.Log.Warnw("metadatos no escritos", "ruta", rutaMetadatos, "error", err)
			rutaMetadatos = ""
		}
	}

	g.Log.Infow("documento generado", "numero", numero, "plantilla", plantilla, "ruta", ruta)
	return Resultado{
		NombreArchivo:  nombreArchivo,
		Ruta:           ruta,
		RutaCarpeta:    carpeta,
		PlantillaUsada: plantilla,
		RutaMetadatos:  rutaMetadatos,
	}, nil
}

func bloquePresente(v any) bool {
	switch valor := v.(type) {
	case map[string]any:
		return len(valor) > 0
	case []any:
		return len(valor) > 0
	default:
		return false
	}
}

func sanearNombre(numero string) string {
	reemplazador := strings.NewReplacer("/", "-", "\\", "-", " ", "_")
	return reemplazador.Replace(numero)
}
