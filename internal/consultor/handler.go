package consultor

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/utils"
)

type Store interface {
	Snapshot() *sincronizacao.Snapshot
	AdicionarConsultor(ctx context.Context, c models.Consultor) error
	AtualizarConsultor(ctx context.Context, id string, c models.Consultor) error
	RemoverConsultor(ctx context.Context, id string) error
}

type Handler struct {
	Store  Store
	Origem string
}

func NewHandler(store Store, origem string) *Handler {
	return &Handler{Store: store, Origem: origem}
}

// ConsultorComLink traz o link público da vitrine.
type ConsultorComLink struct {
	models.Consultor
	Link string `json:"link"`
}

// GET /consultores
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	snap, ok := utils.SnapshotCarregado(w, h.Store)
	if !ok {
		return
	}
	cons := snap.Consultores()
	out := make([]ConsultorComLink, len(cons))
	for i, c := range cons {
		out[i] = ConsultorComLink{Consultor: c, Link: utils.LinkConsultor(h.Origem, c.ID)}
	}
	utils.ResponderJSON(w, http.StatusOK, out)
}

// POST /consultores
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var c models.Consultor
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Store.AdicionarConsultor(r.Context(), c); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// PUT /consultores/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var c models.Consultor
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Store.AtualizarConsultor(r.Context(), mux.Vars(r)["id"], c); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// DELETE /consultores/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.RemoverConsultor(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
