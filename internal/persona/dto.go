package persona

// SolicitudPersona es la forma canónica de alta de persona que produce el
// normalizador de participantes. Las fechas llegan como texto y se
// interpretan de forma tolerante; los campos vacíos se validan aquí, no
// en el normalizador.
type SolicitudPersona struct {
	Nombre          string               `json:"nombre"`
	SegundoNombre   string               `json:"segundoNombre"`
	Apellido        string               `json:"apellido"`
	FechaNacimiento string               `json:"fechaNacimiento"`
	Genero          string               `json:"genero"`
	Nacionalidad    string               `json:"nacionalidad"`
	EstadoCivil     string               `json:"estadoCivil"`
	Ocupacion       string               `json:"ocupacion"`
	RolPersonaID    uint                 `json:"rolPersonaId"`
	Documentos      []SolicitudDocumento `json:"documentos"`
	Direcciones     []SolicitudDireccion `json:"direcciones"`
}

type SolicitudDocumento struct {
	TipoDocumento   string `json:"tipoDocumento"`
	NumeroDocumento string `json:"numeroDocumento"`
	PaisEmisorID    uint   `json:"paisEmisorId"`
	EsPrincipal     bool   `json:"esPrincipal"`
	FechaEmision    string `json:"fechaEmision"`
	FechaExpiracion string `json:"fechaExpiracion"`
}

type SolicitudDireccion struct {
	Linea1       string `json:"linea1"`
	Linea2       string `json:"linea2"`
	CiudadID     uint   `json:"ciudadId"`
	CodigoPostal string `json:"codigoPostal"`
	Tipo         string `json:"tipo"`
	EsPrincipal  bool   `json:"esPrincipal"`
}

// SolicitudEmpresa describe la empresa cliente o inversionista del contrato.
type SolicitudEmpresa struct {
	Nombre            string                     `json:"nombre"`
	RNC               string                     `json:"rnc"`
	RegistroMercantil string                     `json:"registroMercantil"`
	Nacionalidad      string                     `json:"nacionalidad"`
	Email             string                     `json:"email"`
	Telefono          string                     `json:"telefono"`
	SitioWeb          string                     `json:"sitioWeb"`
	Tipo              string                     `json:"tipo"`
	Descripcion       string                     `json:"descripcion"`
	Gerentes          []SolicitudGerente         `json:"gerentes"`
	Direccion         *SolicitudEmpresaDireccion `json:"direccion,omitempty"`
}

type SolicitudGerente struct {
	NombreCompleto  string `json:"nombreCompleto"`
	Cargo           string `json:"cargo"`
	Direccion       string `json:"direccion"`
	NumeroDocumento string `json:"numeroDocumento"`
	Nacionalidad    string `json:"nacionalidad"`
	EstadoCivil     string `json:"estadoCivil"`
	EsPrincipal     bool   `json:"esPrincipal"`
}

type SolicitudEmpresaDireccion struct {
	Linea1       string `json:"linea1"`
	Linea2       string `json:"linea2"`
	Ciudad       string `json:"ciudad"`
	CodigoPostal string `json:"codigoPostal"`
	Tipo         string `json:"tipo"`
	Email        string `json:"email"`
	Telefono     string `json:"telefono"`
}

// ResultadoRegistro es la respuesta del registro de personas.
type ResultadoRegistro struct {
	PersonaID uint   `json:"personaId"`
	Existia   bool   `json:"existia"`
	Mensaje   string `json:"mensaje"`
}
