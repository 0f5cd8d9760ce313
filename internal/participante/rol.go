package participante

// Rol es el conjunto cerrado de roles contractuales. Todo el despacho
// por rol se hace sobre estas constantes, nunca sobre texto libre del
// documento de entrada.
type Rol string

const (
	RolCliente              Rol = "cliente"
	RolInversionista        Rol = "inversionista"
	RolTestigo              Rol = "testigo"
	RolNotario              Rol = "notario"
	RolReferidor            Rol = "referidor"
	RolEmpresaCliente       Rol = "empresa_cliente"
	RolEmpresaInversionista Rol = "empresa_inversionista"
)

// TipoRolID es el identificador de tipo de persona en la base de datos.
func (r Rol) TipoRolID() uint {
	switch r {
	case RolCliente, RolEmpresaCliente:
		return 1
	case RolInversionista, RolEmpresaInversionista:
		return 2
	case RolTestigo:
		return 3
	case RolNotario:
		return 7
	case RolReferidor:
		return 8
	}
	return 0
}

// Etiqueta es el nombre mostrable del rol; también es la ocupación por
// defecto cuando el participante no declara una.
func (r Rol) Etiqueta() string {
	switch r {
	case RolCliente:
		return "Cliente"
	case RolInversionista:
		return "Inversionista"
	case RolTestigo:
		return "Testigo"
	case RolNotario:
		return "Notario"
	case RolReferidor:
		return "Referidor"
	case RolEmpresaCliente:
		return "Empresa Cliente"
	case RolEmpresaInversionista:
		return "Empresa Inversionista"
	}
	return string(r)
}

// GrupoRol asocia una clave del documento de entrada con su rol.
type GrupoRol struct {
	Clave string
	Rol   Rol
}

// GruposParticipantes define el orden fijo de procesamiento. El grupo
// "notary" es un alias histórico de "notaries" en los documentos viejos.
var GruposParticipantes = []GrupoRol{
	{"clients", RolCliente},
	{"investors", RolInversionista},
	{"witnesses", RolTestigo},
	{"notaries", RolNotario},
	{"notary", RolNotario},
	{"referents", RolReferidor},
}

// GruposEmpresa asocia los bloques de empresa con su rol.
var GruposEmpresa = []GrupoRol{
	{"client_company", RolEmpresaCliente},
	{"investor_company", RolEmpresaInversionista},
}
