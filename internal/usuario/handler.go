package usuario

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/inmobiliaria-rd/api-contratos/internal/auth"
	"github.com/inmobiliaria-rd/api-contratos/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

type solicitudLogin struct {
	Email      string `json:"email"`
	Contrasena string `json:"contrasena"`
}

type respuestaLogin struct {
	Token   string `json:"token"`
	Usuario struct {
		ID      uint   `json:"id"`
		Nombre  string `json:"nombre"`
		Email   string `json:"email"`
		EsAdmin bool   `json:"es_admin"`
	} `json:"usuario"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var solicitud solicitudLogin
	if err := json.NewDecoder(r.Body).Decode(&solicitud); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	usuario, err := h.Repository.BuscarPorEmail(h.DB, solicitud.Email)
	if err != nil {
		http.Error(w, "Credenciales inválidas", http.StatusUnauthorized)
		return
	}
	if !utils.VerificarContrasena(usuario.Contrasena, solicitud.Contrasena) {
		http.Error(w, "Credenciales inválidas", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerarToken(usuario.ID, usuario.EsAdmin)
	if err != nil {
		http.Error(w, "No se pudo generar el token", http.StatusInternalServerError)
		return
	}

	ahora := time.Now()
	usuario.UltimoAccesoEn = &ahora
	_ = h.Repository.Guardar(h.DB, usuario)

	var respuesta respuestaLogin
	respuesta.Token = token
	respuesta.Usuario.ID = usuario.ID
	respuesta.Usuario.Nombre = usuario.Nombre
	respuesta.Usuario.Email = usuario.Email
	respuesta.Usuario.EsAdmin = usuario.EsAdmin

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(respuesta)
}

type solicitudCrearUsuario struct {
	Nombre     string `json:"nombre"`
	Email      string `json:"email"`
	Contrasena string `json:"contrasena"`
	EsAdmin    bool   `json:"es_admin"`
}

func (h *Handler) CrearUsuario(w http.ResponseWriter, r *http.Request) {
	var solicitud solicitudCrearUsuario
	if err := json.NewDecoder(r.Body).Decode(&solicitud); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if solicitud.Email == "" || solicitud.Nombre == "" {
		http.Error(w, "Nombre y email son obligatorios", http.StatusBadRequest)
		return
	}

	contrasena := solicitud.Contrasena
	debeRedefinir := false
	if contrasena == "" {
		temporal, err := utils.GenerarContrasenaTemporal()
		if err != nil {
			http.Error(w, "No se pudo generar la contraseña temporal", http.StatusInternalServerError)
			return
		}
		contrasena = temporal
		debeRedefinir = true
	}
	hash, err := utils.HashContrasena(contrasena)
	if err != nil {
		http.Error(w, "No se pudo procesar la contraseña", http.StatusInternalServerError)
		return
	}

	usuario := Usuario{
		Nombre:        solicitud.Nombre,
		Email:         solicitud.Email,
		Contrasena:    hash,
		EsAdmin:       solicitud.EsAdmin,
		Activo:        true,
		DebeRedefinir: debeRedefinir,
	}
	if err := h.Repository.Crear(h.DB, &usuario); err != nil {
		http.Error(w, "No se pudo crear el usuario", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(usuario)
}
