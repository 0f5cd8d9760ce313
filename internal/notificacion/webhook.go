package notificacion

import (
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// EventoContrato es el aviso que se publica al generar un contrato.
type EventoContrato struct {
	Evento         string `json:"evento"`
	ContratoID     uint   `json:"contrato_id"`
	NumeroContrato string `json:"numero_contrato"`
	Archivo        string `json:"archivo,omitempty"`
	GeneradoEn     string `json:"generado_en"`
}

// Notificador publica eventos del pipeline en un webhook externo. El
// envío es de mejor esfuerzo: los fallos se registran y se descartan.
type Notificador struct {
	cliente *resty.Client
	url     string
	log     *zap.SugaredLogger
}

func NewNotificador(log *zap.SugaredLogger) *Notificador {
	cliente := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)
	return &Notificador{
		cliente: cliente,
		url:     os.Getenv("WEBHOOK_CONTRATOS_URL"),
		log:     log,
	}
}

// ContratoGenerado avisa que un contrato quedó generado. Pensado para
// llamarse en una goroutine aparte, nunca bloquea la respuesta.
func (n *Notificador) ContratoGenerado(contratoID uint, numero, archivo string) {
	if n.url == "" {
		return
	}
	evento := EventoContrato{
		Evento:         "contrato_generado",
		ContratoID:     contratoID,
		NumeroContrato: numero,
		Archivo:        archivo,
		GeneradoEn:     time.Now().Format(time.RFC3339),
	}
	resp, err := n.cliente.R().
		SetHeader("Content-Type", "application/json").
		SetBody(evento).
		Post(n.url)
	if err != nil {
		n.log.Warnw("webhook no enviado", "numero", numero, "error", err)
		return
	}
	if resp.IsError() {
		n.log.Warnw("webhook rechazado", "numero", numero, "status", resp.StatusCode())
	}
}
