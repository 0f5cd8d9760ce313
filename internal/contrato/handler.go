package contrato

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// GET /contratos
func (h *Handler) ListarContratos(w http.ResponseWriter, r *http.Request) {
	contratos, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Error al listar contratos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(contratos)
}

// GET /contratos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Contrato no encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(c)
}

// GET /contratos/numero/{numero}
func (h *Handler) BuscarPorNumero(w http.ResponseWriter, r *http.Request) {
	numero := mux.Vars(r)["numero"]
	c, err := h.Repository.BuscarPorNumero(h.DB, numero)
	if err != nil {
		http.Error(w, "Contrato no encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(c)
}
