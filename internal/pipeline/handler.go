package pipeline

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/inmobiliaria-rd/api-contratos/internal/documento"
	"gorm.io/gorm"
)

type Handler struct {
	DB          *gorm.DB
	Orquestador *Orquestador
}

func NewHandler(db *gorm.DB, orquestador *Orquestador) *Handler {
	return &Handler{DB: db, Orquestador: orquestador}
}

// GenerarCompleto atiende POST /contracts/generate-complete.
func (h *Handler) GenerarCompleto(w http.ResponseWriter, r *http.Request) {
	var datos map[string]any
	if err := json.NewDecoder(r.Body).Decode(&datos); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	respuesta, err := h.Orquestador.GenerarCompleto(h.DB, datos)
	switch {
	case err == nil:
		responderJSON(w, http.StatusCreated, respuesta)
	case errors.Is(err, ErrSinParticipantes), errors.Is(err, documento.ErrSinPlantillas):
		responderJSON(w, http.StatusBadRequest, respuesta)
	default:
		responderJSON(w, http.StatusInternalServerError, respuesta)
	}
}

// Regenerar atiende PUT /contracts/{id}/regenerate.
func (h *Handler) Regenerar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var datos map[string]any
	if err := json.NewDecoder(r.Body).Decode(&datos); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	respuesta, err := h.Orquestador.Regenerar(h.DB, uint(id), datos)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	responderJSON(w, http.StatusOK, respuesta)
}

// Validar atiende POST /contracts/validate. No persiste nada.
func (h *Handler) Validar(w http.ResponseWriter, r *http.Request) {
	var datos map[string]any
	if err := json.NewDecoder(r.Body).Decode(&datos); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	responderJSON(w, http.StatusOK, h.Orquestador.Validar(datos))
}

func responderJSON(w http.ResponseWriter, codigo int, cuerpo any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(codigo)
	json.NewEncoder(w).Encode(cuerpo)
}
