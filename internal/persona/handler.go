package persona

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB       *gorm.DB
	Registry Registry
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Registry: NewRegistry()}
}

// GET /personas
func (h *Handler) ListarPersonas(w http.ResponseWriter, r *http.Request) {
	personas, err := h.Registry.ListarTodas(h.DB)
	if err != nil {
		http.Error(w, "Error al listar personas", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(personas)
}

// GET /personas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p, err := h.Registry.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Persona no encontrada", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// POST /personas
func (h *Handler) CrearPersona(w http.ResponseWriter, r *http.Request) {
	var s SolicitudPersona
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	resultado, err := h.Registry.CrearOCompletar(h.DB, &s)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resultado)
}
