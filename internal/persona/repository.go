package persona

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Registry crea o resuelve personas y empresas. Toda deduplicación de
// participantes del contrato descansa en este registro.
type Registry interface {
	CrearOCompletar(db *gorm.DB, s *SolicitudPersona) (*ResultadoRegistro, error)
	BuscarOInsertarEmpresa(db *gorm.DB, s *SolicitudEmpresa) (uint, error)
	BuscarPorID(db *gorm.DB, id uint) (*Persona, error)
	ListarTodas(db *gorm.DB) ([]Persona, error)
}

type registryImpl struct{}

func NewRegistry() Registry {
	return &registryImpl{}
}

// CrearOCompletar inserta la persona con sus documentos y direcciones, o
// resuelve la existente por número de documento. Un conflicto de unicidad
// se reporta como *ErrorPersonaDuplicada con el identificador vigente.
func (r *registryImpl) CrearOCompletar(db *gorm.DB, s *SolicitudPersona) (*ResultadoRegistro, error) {
	if strings.TrimSpace(s.Nombre) == "" && strings.TrimSpace(s.Apellido) == "" {
		return nil, fmt.Errorf("%w: nombre y apellido vacíos", ErrValidacion)
	}

	numeroDoc := documentoPrincipal(s.Documentos)
	if numeroDoc != "" {
		if existente, err := r.buscarPorDocumento(db, numeroDoc); err == nil {
			return &ResultadoRegistro{
				PersonaID: existente.PersonaID,
				Existia:   true,
				Mensaje:   "Persona existente",
			}, nil
		}
	}

	p := Persona{
		Nombre:          s.Nombre,
		SegundoNombre:   s.SegundoNombre,
		Apellido:        s.Apellido,
		FechaNacimiento: parsearFecha(s.FechaNacimiento),
		Genero:          s.Genero,
		Nacionalidad:    s.Nacionalidad,
		EstadoCivil:     s.EstadoCivil,
		Ocupacion:       s.Ocupacion,
		RolPersonaID:    s.RolPersonaID,
		Activa:          true,
	}
	for _, d := range s.Documentos {
		p.Documentos = append(p.Documentos, PersonaDocumento{
			TipoDocumento:   d.TipoDocumento,
			NumeroDocumento: d.NumeroDocumento,
			PaisEmisorID:    d.PaisEmisorID,
			EsPrincipal:     d.EsPrincipal,
			FechaEmision:    parsearFecha(d.FechaEmision),
			FechaExpiracion: parsearFecha(d.FechaExpiracion),
		})
	}
	for _, dir := range s.Direcciones {
		p.Direcciones = append(p.Direcciones, PersonaDireccion{
			Linea1:       dir.Linea1,
			Linea2:       dir.Linea2,
			CiudadID:     dir.CiudadID,
			CodigoPostal: dir.CodigoPostal,
			Tipo:         dir.Tipo,
			EsPrincipal:  dir.EsPrincipal,
		})
	}

	if err := db.Create(&p).Error; err != nil {
		if esConflictoUnicidad(err) && numeroDoc != "" {
			if existente, errBusq := r.buscarPorDocumento(db, numeroDoc); errBusq == nil {
				return nil, &ErrorPersonaDuplicada{
					PersonaID: existente.PersonaID,
					Mensaje:   "la persona ya está registrada",
				}
			}
		}
		return nil, err
	}

	return &ResultadoRegistro{
		PersonaID: p.ID,
		Existia:   false,
		Mensaje:   "Persona creada",
	}, nil
}

// BuscarOInsertarEmpresa resuelve la empresa por RNC. Si existe se
// reutiliza; si no, se inserta. En ambos casos se sincronizan gerentes
// (por número de documento) y la dirección social.
func (r *registryImpl) BuscarOInsertarEmpresa(db *gorm.DB, s *SolicitudEmpresa) (uint, error) {
	if strings.TrimSpace(s.RNC) == "" {
		return 0, fmt.Errorf("%w: empresa sin RNC", ErrValidacion)
	}

	var e Empresa
	err := db.Where("rnc = ? AND activa = ?", s.RNC, true).First(&e).Error
	switch {
	case err == nil:
		// Empresa existente: se reutiliza el registro vigente.
	case errors.Is(err, gorm.ErrRecordNotFound):
		e = Empresa{
			Nombre:            s.Nombre,
			RNC:               s.RNC,
			RegistroMercantil: s.RegistroMercantil,
			Nacionalidad:      nacionalidadODefecto(s.Nacionalidad),
			Email:             s.Email,
			Telefono:          s.Telefono,
			SitioWeb:          s.SitioWeb,
			Tipo:              s.Tipo,
			Descripcion:       s.Descripcion,
			Activa:            true,
		}
		if err := db.Create(&e).Error; err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	if err := r.sincronizarGerentes(db, e.ID, s.Gerentes); err != nil {
		return 0, err
	}
	if err := r.sincronizarDireccion(db, e.ID, s.Direccion); err != nil {
		return 0, err
	}
	return e.ID, nil
}

func (r *registryImpl) sincronizarGerentes(db *gorm.DB, empresaID uint, gerentes []SolicitudGerente) error {
	for _, g := range gerentes {
		if strings.TrimSpace(g.NumeroDocumento) == "" {
			continue
		}
		var existente EmpresaGerente
		err := db.Where("empresa_id = ? AND numero_documento = ? AND activo = ?",
			empresaID, g.NumeroDocumento, true).First(&existente).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		nuevo := EmpresaGerente{
			EmpresaID:       empresaID,
			NombreCompleto:  g.NombreCompleto,
			Cargo:           g.Cargo,
			Direccion:       g.Direccion,
			NumeroDocumento: g.NumeroDocumento,
			Nacionalidad:    g.Nacionalidad,
			EstadoCivil:     g.EstadoCivil,
			EsPrincipal:     g.EsPrincipal,
			Activo:          true,
		}
		if err := db.Create(&nuevo).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *registryImpl) sincronizarDireccion(db *gorm.DB, empresaID uint, dir *SolicitudEmpresaDireccion) error {
	if dir == nil {
		return nil
	}
	tipo := dir.Tipo
	if tipo == "" {
		tipo = "Business"
	}
	var existente EmpresaDireccion
	err := db.Where("empresa_id = ? AND activa = ?", empresaID, true).First(&existente).Error
	if err == nil {
		existente.Linea1 = dir.Linea1
		existente.Linea2 = dir.Linea2
		existente.Ciudad = dir.Ciudad
		existente.CodigoPostal = dir.CodigoPostal
		existente.Tipo = tipo
		existente.Email = dir.Email
		existente.Telefono = dir.Telefono
		return db.Save(&existente).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	nueva := EmpresaDireccion{
		EmpresaID:    empresaID,
		Linea1:       dir.Linea1,
		Linea2:       dir.Linea2,
		Ciudad:       dir.Ciudad,
		CodigoPostal: dir.CodigoPostal,
		Tipo:         tipo,
		Email:        dir.Email,
		Telefono:     dir.Telefono,
		EsPrincipal:  true,
		Activa:       true,
	}
	return db.Create(&nueva).Error
}

func (r *registryImpl) BuscarPorID(db *gorm.DB, id uint) (*Persona, error) {
	var p Persona
	err := db.Preload("Documentos").Preload("Direcciones").First(&p, id).Error
	return &p, err
}

func (r *registryImpl) ListarTodas(db *gorm.DB) ([]Persona, error) {
	var personas []Persona
	err := db.Preload("Documentos").Find(&personas).Error
	return personas, err
}

func (r *registryImpl) buscarPorDocumento(db *gorm.DB, numero string) (*PersonaDocumento, error) {
	var doc PersonaDocumento
	err := db.Where("numero_documento = ?", numero).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func documentoPrincipal(docs []SolicitudDocumento) string {
	for _, d := range docs {
		if d.EsPrincipal && d.NumeroDocumento != "" {
			return d.NumeroDocumento
		}
	}
	for _, d := range docs {
		if d.NumeroDocumento != "" {
			return d.NumeroDocumento
		}
	}
	return ""
}

func esConflictoUnicidad(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return MensajeIndicaDuplicado(err.Error())
}

func nacionalidadODefecto(n string) string {
	if n == "" {
		return "Dominicana"
	}
	return n
}

// Fechas de documentos llegan en ISO o en DD/MM/YYYY según el origen.
func parsearFecha(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, formato := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(formato, s); err == nil {
			return &t
		}
	}
	return nil
}
