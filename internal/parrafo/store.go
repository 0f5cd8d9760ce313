package parrafo

import (
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// Store busca la plantilla activa para una clave. Devuelve cadena vacía
// (sin error) cuando no hay plantilla que coincida.
type Store interface {
	Buscar(db *gorm.DB, rol, tipoContrato, seccion, servicio string) (string, error)
}

type storeImpl struct {
	cache *gocache.Cache
}

// Las plantillas son datos de referencia que cambian poco; se cachean
// unos minutos para no golpear la base en cada generación.
func NewStore() Store {
	return &storeImpl{cache: gocache.New(5*time.Minute, 10*time.Minute)}
}

func (s *storeImpl) Buscar(db *gorm.DB, rol, tipoContrato, seccion, servicio string) (string, error) {
	clave := fmt.Sprintf("%s|%s|%s|%s", rol, tipoContrato, seccion, servicio)
	if contenido, ok := s.cache.Get(clave); ok {
		return contenido.(string), nil
	}

	var plantilla PlantillaParrafo
	err := db.Where("rol_persona = ? AND tipo_contrato = ? AND seccion = ? AND servicio = ? AND activo = ?",
		rol, tipoContrato, seccion, servicio, true).
		Order("orden ASC").
		First(&plantilla).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	s.cache.Set(clave, plantilla.Contenido, gocache.DefaultExpiration)
	return plantilla.Contenido, nil
}
