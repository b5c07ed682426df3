package captacao

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/localizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/utils"
)

type Handler struct {
	Servico *Servico
}

func NewHandler(s *Servico) *Handler {
	return &Handler{Servico: s}
}

// LocalizacaoRequest é a posição enviada pelo navegador, ou o código do
// erro de geolocalização quando ela não foi obtida.
type LocalizacaoRequest struct {
	Posicao *models.Localizacao `json:"localizacao"`
	Erro    int                 `json:"erroLocalizacao"`
}

type FormalizacaoRequest struct {
	Cliente DadosCliente `json:"cliente"`
	LocalizacaoRequest
}

type SolicitacaoRequest struct {
	SiteID    string       `json:"siteId"`
	Cliente   DadosCliente `json:"cliente"`
	Pagamento Pagamento    `json:"pagamento"`
	LocalizacaoRequest
}

func responderLocalizacao(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrValidacao) {
		utils.ResponderErro(w, err)
		return
	}
	status := http.StatusForbidden
	if !errors.Is(err, localizacao.ErrPermissaoLocalizacao) {
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, localizacao.MensagemUsuario(err), status)
}

// POST /vitrine/{consultorId}/formalizacao
// Confere os dados do cliente e a localização antes do faturamento.
func (h *Handler) Formalizar(w http.ResponseWriter, r *http.Request) {
	var req FormalizacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	pos, err := h.Servico.IniciarFormalizacao(r.Context(), req.Cliente,
		localizacao.Reportada{Posicao: req.Posicao, Codigo: req.Erro})
	if err != nil {
		responderLocalizacao(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, map[string]any{"localizacao": pos})
}

// POST /vitrine/{consultorId}/solicitacoes
func (h *Handler) Solicitar(w http.ResponseWriter, r *http.Request) {
	var req SolicitacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	pos, err := h.Servico.IniciarFormalizacao(r.Context(), req.Cliente,
		localizacao.Reportada{Posicao: req.Posicao, Codigo: req.Erro})
	if err != nil {
		responderLocalizacao(w, err)
		return
	}

	n, err := h.Servico.Finalizar(r.Context(), Solicitacao{
		ConsultorID: mux.Vars(r)["consultorId"],
		SiteID:      req.SiteID,
		Cliente:     req.Cliente,
		Localizacao: &pos,
		Pagamento:   req.Pagamento,
	})
	if err != nil {
		if utils.StatusDoErro(err) == http.StatusBadGateway {
			http.Error(w, "Erro ao enviar solicitação. Tente novamente.", http.StatusBadGateway)
			return
		}
		utils.ResponderErro(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, map[string]any{
		"mensagem":     MensagemSucesso,
		"parcelas":     n.Parcelas,
		"valorParcela": n.ValorParcela,
	})
}

// POST /vitrine/whatsapp
func (h *Handler) TestarWhatsApp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Telefone string `json:"telefone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	link, err := utils.LinkWhatsApp(req.Telefone)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, map[string]string{"link": link})
}
