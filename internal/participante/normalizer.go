package participante

import (
	"fmt"
	"strings"

	"github.com/inmobiliaria-rd/api-contratos/internal/persona"
	"github.com/mitchellh/mapstructure"
)

// Los bloques de cliente/inversionista/testigo/notario usan nombres
// anidados con prefijo p_; los de referidor usan nombres planos. Ambos
// se normalizan a la misma persona.SolicitudPersona.

type personaCruda struct {
	Nombre        string           `mapstructure:"p_first_name"`
	Apellido      string           `mapstructure:"p_last_name"`
	SegundoNombre string           `mapstructure:"p_middle_name"`
	Nacimiento    string           `mapstructure:"p_date_of_birth"`
	Genero        string           `mapstructure:"p_gender"`
	Nacionalidad  string           `mapstructure:"p_nationality_country"`
	EstadoCivil   string           `mapstructure:"p_marital_status"`
	Ocupacion     string           `mapstructure:"p_occupation"`
	RolPersonaID  uint             `mapstructure:"p_person_role_id"`
	Documentos    []documentoCrudo `mapstructure:"p_documents"`
	Direcciones   []direccionCruda `mapstructure:"p_addresses"`

	// Variantes planas dentro del mismo objeto person.
	DocumentosPlano  []documentoCrudo `mapstructure:"documents"`
	DireccionesPlano []direccionCruda `mapstructure:"addresses"`
}

type personaCrudaPlana struct {
	Nombre        string           `mapstructure:"first_name"`
	Apellido      string           `mapstructure:"last_name"`
	SegundoNombre string           `mapstructure:"middle_name"`
	Nacimiento    string           `mapstructure:"date_of_birth"`
	Genero        string           `mapstructure:"gender"`
	Nacionalidad  string           `mapstructure:"nationality_country"`
	EstadoCivil   string           `mapstructure:"marital_status"`
	Ocupacion     string           `mapstructure:"occupation"`
	RolPersonaID  uint             `mapstructure:"person_role_id"`
	Documentos    []documentoCrudo `mapstructure:"documents"`
	Direcciones   []direccionCruda `mapstructure:"addresses"`
}

type documentoCrudo struct {
	EsPrincipal     *bool  `mapstructure:"is_primary"`
	TipoDocumento   string `mapstructure:"document_type"`
	NumeroDocumento string `mapstructure:"document_number"`
	PaisEmisorID    uint   `mapstructure:"issuing_country_id"`
	FechaEmision    string `mapstructure:"document_issue_date"`
	FechaExpiracion string `mapstructure:"document_expiry_date"`
}

type direccionCruda struct {
	Linea1       string `mapstructure:"address_line1"`
	Linea2       string `mapstructure:"address_line2"`
	CiudadID     uint   `mapstructure:"city_id"`
	CodigoPostal string `mapstructure:"postal_code"`
	Tipo         string `mapstructure:"address_type"`
	EsPrincipal  *bool  `mapstructure:"is_principal"`
}

type empresaCruda struct {
	Nombre            string                 `mapstructure:"company_name"`
	RNC               string                 `mapstructure:"company_rnc"`
	RegistroMercantil string                 `mapstructure:"company_mercantil_number"`
	Nacionalidad      string                 `mapstructure:"nationality"`
	Email             string                 `mapstructure:"company_email"`
	Telefono          string                 `mapstructure:"company_phone"`
	SitioWeb          string                 `mapstructure:"website"`
	Tipo              string                 `mapstructure:"company_type"`
	Descripcion       string                 `mapstructure:"company_description"`
	Gerentes          []gerenteCrudo         `mapstructure:"company_manager"`
	Direccion         *direccionEmpresaCruda `mapstructure:"company_address"`
}

type gerenteCrudo struct {
	Nombre          string `mapstructure:"name"`
	Cargo           string `mapstructure:"position"`
	Direccion       string `mapstructure:"address"`
	NumeroDocumento string `mapstructure:"document_number"`
	Nacionalidad    string `mapstructure:"nationality"`
	EstadoCivil     string `mapstructure:"marital_status"`
	EsPrincipal     bool   `mapstructure:"is_main_manager"`
}

type direccionEmpresaCruda struct {
	Linea1       string `mapstructure:"address_line1"`
	Linea2       string `mapstructure:"address_line2"`
	Ciudad       string `mapstructure:"city"`
	CodigoPostal string `mapstructure:"postal_code"`
	Tipo         string `mapstructure:"address_type"`
	Email        string `mapstructure:"email"`
	Telefono     string `mapstructure:"phone_number"`
}

// Normalizar convierte un bloque crudo de participante en la solicitud
// canónica del registro de personas. Es una transformación pura: los
// nombres ausentes quedan en cadena vacía y la validación de presencia
// ocurre en el registro.
func Normalizar(bloque map[string]any, rol Rol) (*persona.SolicitudPersona, error) {
	objetoPersona, _ := bloque["person"].(map[string]any)

	var s persona.SolicitudPersona
	if rol == RolReferidor {
		var cruda personaCrudaPlana
		if err := decodificar(objetoPersona, &cruda); err != nil {
			return nil, err
		}
		s = persona.SolicitudPersona{
			Nombre:          cruda.Nombre,
			SegundoNombre:   cruda.SegundoNombre,
			Apellido:        cruda.Apellido,
			FechaNacimiento: cruda.Nacimiento,
			Genero:          cruda.Genero,
			Nacionalidad:    cruda.Nacionalidad,
			EstadoCivil:     cruda.EstadoCivil,
			Ocupacion:       cruda.Ocupacion,
			RolPersonaID:    cruda.RolPersonaID,
			Documentos:      normalizarDocumentos(cruda.Documentos, ""),
			Direcciones:     normalizardirecciones(cruda.Direcciones),
		}
	} else {
		var cruda personaCruda
		if err := decodificar(objetoPersona, &cruda); err != nil {
			return nil, err
		}
		documentos := cruda.Documentos
		if len(documentos) == 0 {
			documentos = cruda.DocumentosPlano
		}
		direcciones := cruda.Direcciones
		if len(direcciones) == 0 {
			direcciones = cruda.DireccionesPlano
		}
		s = persona.SolicitudPersona{
			Nombre:          cruda.Nombre,
			SegundoNombre:   cruda.SegundoNombre,
			Apellido:        cruda.Apellido,
			FechaNacimiento: cruda.Nacimiento,
			Genero:          cruda.Genero,
			Nacionalidad:    cruda.Nacionalidad,
			EstadoCivil:     cruda.EstadoCivil,
			Ocupacion:       cruda.Ocupacion,
			RolPersonaID:    cruda.RolPersonaID,
			Documentos:      normalizarDocumentos(documentos, ""),
			Direcciones:     normalizardirecciones(direcciones),
		}
	}

	if strings.TrimSpace(s.Ocupacion) == "" {
		s.Ocupacion = rol.Etiqueta()
	}
	if s.RolPersonaID == 0 {
		s.RolPersonaID = rol.TipoRolID()
	}

	// Documento suelto al nivel del participante: person_document para
	// la mayoría de roles, notary_document (tipo por defecto Cédula)
	// para notarios.
	if len(s.Documentos) == 0 {
		if crudo, ok := bloque["person_document"].(map[string]any); ok {
			s.Documentos = documentoSuelto(crudo, "")
		} else if crudo, ok := bloque["notary_document"].(map[string]any); ok {
			s.Documentos = documentoSuelto(crudo, "Cédula")
		}
	}
	if len(s.Direcciones) == 0 {
		if cruda, ok := bloque["address"].(map[string]any); ok {
			var d direccionCruda
			if err := decodificar(cruda, &d); err == nil {
				s.Direcciones = normalizardirecciones([]direccionCruda{d})
			}
		}
	}

	return &s, nil
}

// NormalizarEmpresa convierte el bloque client_company/investor_company.
func NormalizarEmpresa(bloque map[string]any) (*persona.SolicitudEmpresa, error) {
	var cruda empresaCruda
	if err := decodificar(bloque, &cruda); err != nil {
		return nil, err
	}
	s := persona.SolicitudEmpresa{
		Nombre:            cruda.Nombre,
		RNC:               cruda.RNC,
		RegistroMercantil: cruda.RegistroMercantil,
		Nacionalidad:      cruda.Nacionalidad,
		Email:             cruda.Email,
		Telefono:          cruda.Telefono,
		SitioWeb:          cruda.SitioWeb,
		Tipo:              cruda.Tipo,
		Descripcion:       cruda.Descripcion,
	}
	for _, g := range cruda.Gerentes {
		s.Gerentes = append(s.Gerentes, persona.SolicitudGerente{
			NombreCompleto:  g.Nombre,
			Cargo:           g.Cargo,
			Direccion:       g.Direccion,
			NumeroDocumento: g.NumeroDocumento,
			Nacionalidad:    g.Nacionalidad,
			EstadoCivil:     g.EstadoCivil,
			EsPrincipal:     g.EsPrincipal,
		})
	}
	if cruda.Direccion != nil {
		s.Direccion = &persona.SolicitudEmpresaDireccion{
			Linea1:       cruda.Direccion.Linea1,
			Linea2:       cruda.Direccion.Linea2,
			Ciudad:       cruda.Direccion.Ciudad,
			CodigoPostal: cruda.Direccion.CodigoPostal,
			Tipo:         cruda.Direccion.Tipo,
			Email:        cruda.Direccion.Email,
			Telefono:     cruda.Direccion.Telefono,
		}
	}
	return &s, nil
}

// NombreMostrable arma el nombre a reportar en errores de resolución.
func NombreMostrable(s *persona.SolicitudPersona) string {
	nombre := strings.TrimSpace(s.Nombre + " " + s.Apellido)
	if nombre == "" {
		return "Desconocido"
	}
	return nombre
}

func normalizarDocumentos(crudos []documentoCrudo, tipoDefecto string) []persona.SolicitudDocumento {
	var docs []persona.SolicitudDocumento
	for i, d := range crudos {
		tipo := d.TipoDocumento
		if tipo == "" {
			tipo = tipoDefecto
		}
		principal := i == 0
		if d.EsPrincipal != nil {
			principal = *d.EsPrincipal
		}
		docs = append(docs, persona.SolicitudDocumento{
			TipoDocumento:   tipo,
			NumeroDocumento: d.NumeroDocumento,
			PaisEmisorID:    d.PaisEmisorID,
			EsPrincipal:     principal,
			FechaEmision:    d.FechaEmision,
			FechaExpiracion: d.FechaExpiracion,
		})
	}
	return docs
}

func normalizardirecciones(crudas []direccionCruda) []persona.SolicitudDireccion {
	var direcciones []persona.SolicitudDireccion
	for _, d := range crudas {
		tipo := d.Tipo
		if tipo == "" {
			tipo = "Casa"
		}
		principal := true
		if d.EsPrincipal != nil {
			principal = *d.EsPrincipal
		}
		direcciones = append(direcciones, persona.SolicitudDireccion{
			Linea1:       d.Linea1,
			Linea2:       d.Linea2,
			CiudadID:     d.CiudadID,
			CodigoPostal: d.CodigoPostal,
			Tipo:         tipo,
			EsPrincipal:  principal,
		})
	}
	return direcciones
}

func documentoSuelto(crudo map[string]any, tipoDefecto string) []persona.SolicitudDocumento {
	var d documentoCrudo
	if err := decodificar(crudo, &d); err != nil {
		return nil
	}
	docs := normalizarDocumentos([]documentoCrudo{d}, tipoDefecto)
	if len(docs) == 1 && d.EsPrincipal == nil {
		docs[0].EsPrincipal = true
	}
	return docs
}

func decodificar(entrada map[string]any, salida any) error {
	decodificador, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           salida,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("configurando decodificador: %w", err)
	}
	if entrada == nil {
		entrada = map[string]any{}
	}
	return decodificador.Decode(entrada)
}
