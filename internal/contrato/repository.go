package contrato

import (
	"errors"
	"time"

	"github.com/inmobiliaria-rd/api-contratos/internal/participante"
	"gorm.io/gorm"
)

// ErrorAsociacion registra el fallo de una inserción de sub-entidad sin
// abortar el lote.
type ErrorAsociacion struct {
	Rol       string `json:"rol"`
	PersonaID uint   `json:"personaId,omitempty"`
	EmpresaID uint   `json:"empresaId,omitempty"`
	Mensaje   string `json:"mensaje"`
}

type Repository interface {
	Crear(db *gorm.DB, c *Contrato) error
	BuscarPorID(db *gorm.DB, id uint) (*Contrato, error)
	BuscarPorNumero(db *gorm.DB, numero string) (*Contrato, error)
	ListarTodos(db *gorm.DB) ([]Contrato, error)
	ActualizarInfoDocumento(db *gorm.DB, id uint, archivo, rutaArchivo, rutaCarpeta string) error
	IncrementarVersion(db *gorm.DB, id uint) (int, error)
	RegistrarParticipantes(db *gorm.DB, contratoID uint, participantes []participante.Participante) []ErrorAsociacion
	CrearRelacionesClienteReferidor(db *gorm.DB, participantes []participante.Participante) (int, []ErrorAsociacion)
	EliminarParticipantes(db *gorm.DB, contratoID uint) error
	Eliminar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Crear(db *gorm.DB, c *Contrato) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Contrato, error) {
	var c Contrato
	err := db.Preload("Participantes").First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) BuscarPorNumero(db *gorm.DB, numero string) (*Contrato, error) {
	var c Contrato
	err := db.Where("numero_contrato = ?", numero).First(&c).Error
	return &c, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Order("created_at DESC").Find(&contratos).Error
	return contratos, err
}

// ActualizarInfoDocumento completa los campos de archivo una vez que el
// documento fue generado. El número de contrato nunca se toca.
func (r *repositoryImpl) ActualizarInfoDocumento(db *gorm.DB, id uint, archivo, rutaArchivo, rutaCarpeta string) error {
	return db.Model(&Contrato{}).Where("id = ?", id).Updates(map[string]any{
		"archivo_generado": archivo,
		"ruta_archivo":     rutaArchivo,
		"ruta_carpeta":     rutaCarpeta,
	}).Error
}

func (r *repositoryImpl) IncrementarVersion(db *gorm.DB, id uint) (int, error) {
	var c Contrato
	if err := db.First(&c, id).Error; err != nil {
		return 0, err
	}
	c.Version++
	if err := db.Save(&c).Error; err != nil {
		return 0, err
	}
	return c.Version, nil
}

// RegistrarParticipantes inserta una asociación por participante
// resuelto. Un fallo individual se registra y el resto continúa.
func (r *repositoryImpl) RegistrarParticipantes(db *gorm.DB, contratoID uint, participantes []participante.Participante) []ErrorAsociacion {
	var fallos []ErrorAsociacion
	for _, p := range participantes {
		asociacion := ContratoParticipante{
			ContratoID:  contratoID,
			TipoRolID:   p.Rol.TipoRolID(),
			EsPrincipal: p.EsPrincipal,
			Activo:      true,
		}
		if p.PersonaID != 0 {
			personaID := p.PersonaID
			asociacion.PersonaID = &personaID
		}
		if p.EmpresaID != 0 {
			empresaID := p.EmpresaID
			asociacion.EmpresaID = &empresaID
		}
		if err := db.Create(&asociacion).Error; err != nil {
			fallos = append(fallos, ErrorAsociacion{
				Rol:       string(p.Rol),
				PersonaID: p.PersonaID,
				EmpresaID: p.EmpresaID,
				Mensaje:   err.Error(),
			})
		}
	}
	return fallos
}

// CrearRelacionesClienteReferidor deriva los vínculos entre cada cliente
// y cada referidor resueltos. Un vínculo activo preexistente se salta
// sin error; el referidor debe seguir vigente en su tabla.
func (r *repositoryImpl) CrearRelacionesClienteReferidor(db *gorm.DB, participantes []participante.Participante) (int, []ErrorAsociacion) {
	var clientes, referidores []uint
	for _, p := range participantes {
		switch p.Rol {
		case participante.RolCliente:
			if p.PersonaID != 0 {
				clientes = append(clientes, p.PersonaID)
			}
		case participante.RolReferidor:
			if p.PersonaID != 0 {
				referidores = append(referidores, p.PersonaID)
			}
		}
	}
	if len(clientes) == 0 || len(referidores) == 0 {
		return 0, nil
	}

	creados := 0
	var fallos []ErrorAsociacion
	for _, personaCliente := range clientes {
		var cliente Cliente
		if err := db.Where("persona_id = ? AND activo = ?", personaCliente, true).First(&cliente).Error; err != nil {
			// Sin fila de cliente no hay vínculo que derivar.
			continue
		}
		for _, personaReferidor := range referidores {
			var referidor Referidor
			if err := db.Where("persona_id = ? AND activo = ?", personaReferidor, true).First(&referidor).Error; err != nil {
				continue
			}

			var existente ClienteReferidor
			err := db.Where("cliente_id = ? AND referidor_id = ? AND activo = ?",
				cliente.ID, referidor.ID, true).First(&existente).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				fallos = append(fallos, ErrorAsociacion{
					Rol:       string(participante.RolReferidor),
					PersonaID: personaReferidor,
					Mensaje:   err.Error(),
				})
				continue
			}

			vinculo := ClienteReferidor{
				ClienteID:     cliente.ID,
				ReferidorID:   referidor.ID,
				FechaRelacion: time.Now(),
				Activo:        true,
			}
			if err := db.Create(&vinculo).Error; err != nil {
				fallos = append(fallos, ErrorAsociacion{
					Rol:       string(participante.RolReferidor),
					PersonaID: personaReferidor,
					Mensaje:   err.Error(),
				})
				continue
			}
			creados++
		}
	}
	return creados, fallos
}

// EliminarParticipantes y Eliminar son las compensaciones del pipeline:
// deshacen las asociaciones y la fila del contrato cuando una etapa
// fatal posterior obliga a revertir.
func (r *repositoryImpl) EliminarParticipantes(db *gorm.DB, contratoID uint) error {
	return db.Where("contrato_id = ?", contratoID).Delete(&ContratoParticipante{}).Error
}

func (r *repositoryImpl) Eliminar(db *gorm.DB, id uint) error {
	return db.Delete(&Contrato{}, id).Error
}
