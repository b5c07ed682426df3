package site

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/utils"
)

type Store interface {
	Snapshot() *sincronizacao.Snapshot
	AdicionarSite(ctx context.Context, s models.Site) error
	AtualizarSite(ctx context.Context, id string, s models.Site) error
	RemoverSite(ctx context.Context, id string) error
}

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

// Filtrar casa a busca com o título do site ou o nome da categoria dele.
func Filtrar(sites []models.Site, cats []models.Categoria, busca string) []models.Site {
	termo := strings.ToLower(strings.TrimSpace(busca))
	if termo == "" {
		return sites
	}
	nomes := make(map[string]string, len(cats))
	for _, c := range cats {
		nomes[c.ID] = strings.ToLower(c.Nome)
	}
	out := []models.Site{}
	for _, s := range sites {
		if strings.Contains(strings.ToLower(s.Titulo), termo) || strings.Contains(nomes[s.CategoriaID], termo) {
			out = append(out, s)
		}
	}
	return out
}

// GET /sites?busca=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	snap, ok := utils.SnapshotCarregado(w, h.Store)
	if !ok {
		return
	}
	utils.ResponderJSON(w, http.StatusOK, Filtrar(snap.Sites(), snap.Categorias(), r.URL.Query().Get("busca")))
}

// POST /sites
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var s models.Site
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Store.AdicionarSite(r.Context(), s); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// PUT /sites/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var s models.Site
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Store.AtualizarSite(r.Context(), mux.Vars(r)["id"], s); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// DELETE /sites/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.RemoverSite(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
