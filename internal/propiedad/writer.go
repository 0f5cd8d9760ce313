package propiedad

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type propiedadCruda struct {
	PropertyType    string  `mapstructure:"property_type"`
	CadastralNumber string  `mapstructure:"cadastral_number"`
	TitleNumber     string  `mapstructure:"title_number"`
	SurfaceArea     float64 `mapstructure:"surface_area"`
	CoveredArea     float64 `mapstructure:"covered_area"`
	PropertyValue   float64 `mapstructure:"property_value"`
	Currency        string  `mapstructure:"currency"`
	Description     string  `mapstructure:"description"`
	AddressLine1    string  `mapstructure:"address_line1"`
	AddressLine2    string  `mapstructure:"address_line2"`
	CityID          *uint   `mapstructure:"city_id"`
	PostalCode      string  `mapstructure:"postal_code"`
	PropertyRole    string  `mapstructure:"property_role"`
	Notes           string  `mapstructure:"notes"`
}

// ErrorPropiedad identifica la entrada del lote que no pudo guardarse.
type ErrorPropiedad struct {
	Indice  int    `json:"indice"`
	Mensaje string `json:"mensaje"`
}

// Resultado resume la escritura del lote de propiedades.
type Resultado struct {
	IDs     []uint           `json:"propiedad_ids"`
	Errores []ErrorPropiedad `json:"errores,omitempty"`
}

// Writer persiste el bloque properties de la solicitud.
type Writer struct {
	Log *zap.SugaredLogger
}

func NewWriter(log *zap.SugaredLogger) *Writer {
	return &Writer{Log: log}
}

// Escribir guarda cada propiedad del lote y su vínculo con el contrato.
// Un fallo individual se anota y se sigue con la siguiente; la primera
// propiedad del lote es la principal.
func (w *Writer) Escribir(db *gorm.DB, contratoID uint, datos map[string]any) Resultado {
	lista, ok := datos["properties"].([]any)
	if !ok || len(lista) == 0 {
		return Resultado{}
	}

	var resultado Resultado
	for i, elemento := range lista {
		bloque, ok := elemento.(map[string]any)
		if !ok {
			resultado.Errores = append(resultado.Errores, ErrorPropiedad{Indice: i, Mensaje: "entrada de propiedad ilegible"})
			continue
		}
		id, err := w.escribirUna(db, contratoID, bloque, i == 0)
		if err != nil {
			w.Log.Warnw("propiedad no guardada", "contrato_id", contratoID, "indice", i, "error", err)
			resultado.Errores = append(resultado.Errores, ErrorPropiedad{Indice: i, Mensaje: err.Error()})
			continue
		}
		resultado.IDs = append(resultado.IDs, id)
	}
	return resultado
}

// Revertir es la compensación: deshace los vínculos del contrato y las
// propiedades insertadas en esta corrida.
func (w *Writer) Revertir(db *gorm.DB, contratoID uint, ids []uint) error {
	if err := db.Where("contrato_id = ?", contratoID).Delete(&ContratoPropiedad{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return db.Delete(&Propiedad{}, ids).Error
}

func (w *Writer) escribirUna(db *gorm.DB, contratoID uint, bloque map[string]any, principal bool) (uint, error) {
	propiedad, vinculo, err := construirFilas(contratoID, bloque, principal)
	if err != nil {
		return 0, err
	}
	if err := db.Create(&propiedad).Error; err != nil {
		return 0, fmt.Errorf("error guardando propiedad: %w", err)
	}

	vinculo.PropiedadID = propiedad.ID
	if err := db.Create(&vinculo).Error; err != nil {
		return 0, fmt.Errorf("error vinculando propiedad %d: %w", propiedad.ID, err)
	}
	return propiedad.ID, nil
}

func construirFilas(contratoID uint, bloque map[string]any, principal bool) (Propiedad, ContratoPropiedad, error) {
	var cruda propiedadCruda
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cruda,
	})
	if err != nil {
		return Propiedad{}, ContratoPropiedad{}, err
	}
	if err := dec.Decode(bloque); err != nil {
		return Propiedad{}, ContratoPropiedad{}, fmt.Errorf("datos de propiedad inválidos: %w", err)
	}

	propiedad := Propiedad{
		TipoPropiedad:      cruda.PropertyType,
		NumeroCatastral:    cruda.CadastralNumber,
		TituloRegistro:     cruda.TitleNumber,
		Superficie:         cruda.SurfaceArea,
		SuperficieCubierta: cruda.CoveredArea,
		Valor:              cruda.PropertyValue,
		Moneda:             monedaODefecto(cruda.Currency),
		Descripcion:        cruda.Description,
		DireccionLinea1:    cruda.AddressLine1,
		DireccionLinea2:    cruda.AddressLine2,
		CiudadID:           cruda.CityID,
		CodigoPostal:       cruda.PostalCode,
		Activa:             true,
	}
	vinculo := ContratoPropiedad{
		ContratoID:  contratoID,
		Rol:         rolODefecto(cruda.PropertyRole),
		EsPrincipal: principal,
		Notas:       cruda.Notes,
		Activo:      true,
	}
	return propiedad, vinculo, nil
}

func rolODefecto(rol string) string {
	if rol == "" {
		return "garantia"
	}
	return rol
}

func monedaODefecto(moneda string) string {
	if moneda == "" {
		return "USD"
	}
	return moneda
}
