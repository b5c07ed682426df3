package aquisicao

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/utils"
)

// Store é o lado do snapshot que as rotas de aquisição usam.
type Store interface {
	Snapshot() *sincronizacao.Snapshot
	AtualizarAquisicao(ctx context.Context, id string, p models.PatchAquisicao) error
	RemoverAquisicao(ctx context.Context, id string) error
}

type Handler struct {
	Store   Store
	Maquina *Maquina
}

func NewHandler(store Store, m *Maquina) *Handler {
	return &Handler{Store: store, Maquina: m}
}

// Detalhe acrescenta os campos de exibição da aquisição.
type Detalhe struct {
	models.Aquisicao
	LinkMapa     string `json:"mapaLink,omitempty"`
	AvisoMapa    string `json:"mapaAviso,omitempty"`
	DataExibicao string `json:"dataPagamentoExibicao"`
	Divergente   bool   `json:"divergente"`
	WhatsAppLink string `json:"whatsappLink,omitempty"`
}

func detalhar(a models.Aquisicao) Detalhe {
	d := Detalhe{
		Aquisicao:    a,
		DataExibicao: utils.FormatarData(a.DiaPagamento()),
		Divergente:   a.Divergente(),
	}
	if a.Localizacao != nil {
		d.LinkMapa = utils.LinkMapa(a.Localizacao.Latitude, a.Localizacao.Longitude)
	} else {
		d.AvisoMapa = utils.MensagemSemLocalizacao
	}
	if link, err := utils.LinkWhatsApp(a.ClienteTelefone); err == nil {
		d.WhatsAppLink = link
	}
	return d
}

func (h *Handler) buscar(w http.ResponseWriter, r *http.Request) (models.Aquisicao, bool) {
	snap, ok := utils.SnapshotCarregado(w, h.Store)
	if !ok {
		return models.Aquisicao{}, false
	}
	a, ok := snap.Aquisicao(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Aquisição não encontrada", http.StatusNotFound)
		return models.Aquisicao{}, false
	}
	return a, true
}

func (h *Handler) aplicar(w http.ResponseWriter, r *http.Request, id string, p models.PatchAquisicao) {
	if err := h.Store.AtualizarAquisicao(r.Context(), id, p); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// GET /aquisicoes?busca=&status=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	snap, ok := utils.SnapshotCarregado(w, h.Store)
	if !ok {
		return
	}
	q := r.URL.Query()
	aqs := FiltrarVendas(snap.Aquisicoes(), q.Get("busca"), q.Get("status"))
	out := make([]Detalhe, len(aqs))
	for i, a := range aqs {
		out[i] = detalhar(a)
	}
	utils.ResponderJSON(w, http.StatusOK, out)
}

// GET /aquisicoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	a, ok := h.buscar(w, r)
	if !ok {
		return
	}
	utils.ResponderJSON(w, http.StatusOK, detalhar(a))
}

// PATCH /aquisicoes/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	a, ok := h.buscar(w, r)
	if !ok {
		return
	}
	p, err := h.Maquina.DefinirStatus(a, req.Status)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	h.aplicar(w, r, a.ID, p)
}

type PagamentoRequest struct {
	Quitado       bool             `json:"isPaid"`
	Parcelas      *int             `json:"installments"`
	ValorParcela  *decimal.Decimal `json:"installmentValue"`
	DataPagamento *string          `json:"paymentDate"`
}

// PATCH /aquisicoes/{id}/pagamento
// Em aberto, o novo cronograma é opcional; sem ele os números ficam.
func (h *Handler) AtualizarPagamento(w http.ResponseWriter, r *http.Request) {
	var req PagamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	a, ok := h.buscar(w, r)
	if !ok {
		return
	}
	var novo *Cronograma
	if !req.Quitado && (req.Parcelas != nil || req.ValorParcela != nil || req.DataPagamento != nil) {
		c := Cronograma{
			Parcelas:      a.ParcelasOuUm(),
			ValorParcela:  a.ValorParcelaOuZero(),
			DataPagamento: a.DiaPagamento(),
		}
		if req.Parcelas != nil {
			c.Parcelas = *req.Parcelas
		}
		if req.ValorParcela != nil {
			c.ValorParcela = *req.ValorParcela
		}
		if req.DataPagamento != nil {
			c.DataPagamento = *req.DataPagamento
		}
		novo = &c
	}
	p, err := DefinirQuitado(a, req.Quitado, novo)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	h.aplicar(w, r, a.ID, p)
}

type EdicaoRequest struct {
	Status          *models.Status   `json:"status"`
	Comentario      *string          `json:"comment"`
	AnexoURL        *string          `json:"attachmentUrl"`
	ClienteNome     *string          `json:"clientName"`
	ClienteTelefone *string          `json:"clientPhone"`
	Quitado         *bool            `json:"isPaid"`
	Parcelas        *int             `json:"installments"`
	ValorParcela    *decimal.Decimal `json:"installmentValue"`
	ValorTotal      *decimal.Decimal `json:"totalValue"`
	DataPagamento   *string          `json:"paymentDate"`
}

// PATCH /aquisicoes/{id}
func (h *Handler) Editar(w http.ResponseWriter, r *http.Request) {
	var req EdicaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	a, ok := h.buscar(w, r)
	if !ok {
		return
	}
	p, err := h.Maquina.Editar(a, Edicao(req))
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	h.aplicar(w, r, a.ID, p)
}

// DELETE /aquisicoes/{id}?confirmar=true
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	confirmado, _ := strconv.ParseBool(r.URL.Query().Get("confirmar"))
	if err := ConfirmarRemocao(confirmado); err != nil {
		http.Error(w, PerguntaConfirmacaoRemocao, http.StatusPreconditionRequired)
		return
	}
	err := h.Store.RemoverAquisicao(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, models.ErrNaoEncontrado) {
		http.Error(w, "Aquisição não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
