package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"go.uber.org/zap"
)

// Webhook avisa um sistema externo sobre cada novo lead.
// Sem URL configurada, não faz nada.
type Webhook struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NovoWebhook(url string, timeout time.Duration, logger *zap.Logger) *Webhook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Webhook{url: url, client: &http.Client{Timeout: timeout}, logger: logger.Named("webhook")}
}

// NovoLead envia o aviso e só registra falhas no log.
func (w *Webhook) NovoLead(ctx context.Context, a models.NovaAquisicao) {
	if w == nil || w.url == "" {
		return
	}
	if err := w.enviar(ctx, a); err != nil {
		w.logger.Warn("erro ao enviar webhook", zap.String("consultor_id", a.ConsultorID), zap.Error(err))
	}
}

func (w *Webhook) enviar(ctx context.Context, a models.NovaAquisicao) error {
	payload := map[string]string{
		"mensagem":    "Nova solicitação de projeto",
		"consultorId": a.ConsultorID,
		"siteId":      a.SiteID,
		"siteTitulo":  a.SiteTitulo,
		"cliente":     a.ClienteNome,
		"telefone":    a.ClienteTelefone,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}
