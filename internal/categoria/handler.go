package categoria

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/utils"
)

type Store interface {
	Snapshot() *sincronizacao.Snapshot
	AdicionarCategoria(ctx context.Context, nome string) error
	AtualizarCategoria(ctx context.Context, id, nome string) error
	RemoverCategoria(ctx context.Context, id string) error
}

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

type NomeRequest struct {
	Nome string `json:"name"`
}

// GET /categorias
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	snap, ok := utils.SnapshotCarregado(w, h.Store)
	if !ok {
		return
	}
	utils.ResponderJSON(w, http.StatusOK, snap.Categorias())
}

// POST /categorias
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req NomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Store.AdicionarCategoria(r.Context(), req.Nome); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// PUT /categorias/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var req NomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Store.AtualizarCategoria(r.Context(), mux.Vars(r)["id"], req.Nome); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// DELETE /categorias/{id}
// Sites da categoria continuam apontando para o id removido.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.RemoverCategoria(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
