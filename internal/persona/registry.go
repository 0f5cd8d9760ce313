package persona

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidacion indica que la solicitud de persona no pasó la validación
// mínima del registro (nombre y apellido vacíos, sin documentos, etc.).
var ErrValidacion = errors.New("solicitud de persona inválida")

// ErrorPersonaDuplicada es el código estructurado del registro para una
// persona que ya existe: el conflicto trae el identificador existente y
// debe tratarse como reutilización, no como fallo.
type ErrorPersonaDuplicada struct {
	PersonaID uint
	Mensaje   string
}

func (e *ErrorPersonaDuplicada) Error() string {
	return fmt.Sprintf("persona ya está registrada (id %d): %s", e.PersonaID, e.Mensaje)
}

// Patrones observados en mensajes de registros externos. No se agregan
// más variantes de las que se han visto en producción.
var patronesDuplicado = []string{
	"ya está registrada",
	"ya existe",
	"persona ya existe",
	"already registered",
	"already exists",
	"duplicate",
	"duplicado",
}

// MensajeIndicaDuplicado clasifica un mensaje de error de texto libre.
// Es el mecanismo de respaldo cuando el registro no devolvió el código
// estructurado ErrorPersonaDuplicada.
func MensajeIndicaDuplicado(mensaje string) bool {
	m := strings.ToLower(mensaje)
	for _, p := range patronesDuplicado {
		if strings.Contains(m, p) {
			return true
		}
	}
	return false
}
