package notificacion

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContratoGeneradoPublicaEvento(t *testing.T) {
	var recibido EventoContrato
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recibido))
		w.WriteHeader(http.StatusOK)
	}))
	defer servidor.Close()

	n := &Notificador{cliente: resty.New(), url: servidor.URL, log: zap.NewNop().Sugar()}
	n.ContratoGenerado(77, "MORTGAGE-2026-0001", "MORTGAGE-2026-0001.txt")

	assert.Equal(t, "contrato_generado", recibido.Evento)
	assert.Equal(t, uint(77), recibido.ContratoID)
	assert.Equal(t, "MORTGAGE-2026-0001", recibido.NumeroContrato)
}

func TestContratoGeneradoSinURLNoEnvia(t *testing.T) {
	n := &Notificador{cliente: resty.New(), log: zap.NewNop().Sugar()}
	// sin URL configurada el envío se descarta en silencio
	n.ContratoGenerado(1, "X-1", "x.txt")
}

func TestContratoGeneradoErrorSeDescarta(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer servidor.Close()

	n := &Notificador{cliente: resty.New(), url: servidor.URL, log: zap.NewNop().Sugar()}
	n.ContratoGenerado(2, "X-2", "x.txt")
}
