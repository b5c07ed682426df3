package busca

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/utils"
)

type Fonte interface {
	Snapshot() *sincronizacao.Snapshot
}

// Handler atende a vitrine pública do consultor.
type Handler struct {
	Fonte     Fonte
	Buscador  *Buscador
	Debouncer *Debouncer
	Origem    string
}

func NewHandler(fonte Fonte, b *Buscador, d *Debouncer, origem string) *Handler {
	return &Handler{Fonte: fonte, Buscador: b, Debouncer: d, Origem: origem}
}

type paginaConsultor struct {
	Consultor  models.Consultor   `json:"consultor"`
	Link       string             `json:"link"`
	WhatsApp   string             `json:"whatsappLink,omitempty"`
	Categorias []models.Categoria `json:"categorias"`
	Sites      []models.Site      `json:"sites"`
}

// GET /vitrine/{consultorId}
func (h *Handler) Pagina(w http.ResponseWriter, r *http.Request) {
	snap, ok := utils.SnapshotCarregado(w, h.Fonte)
	if !ok {
		return
	}
	id := mux.Vars(r)["consultorId"]
	c, ok := snap.Consultor(id)
	if !ok {
		http.Error(w, "Consultor não encontrado", http.StatusNotFound)
		return
	}
	p := paginaConsultor{
		Consultor:  c,
		Link:       utils.LinkConsultor(h.Origem, c.ID),
		Categorias: snap.Categorias(),
		Sites:      snap.Sites(),
	}
	if c.WhatsApp != nil {
		if link, err := utils.LinkWhatsApp(*c.WhatsApp); err == nil {
			p.WhatsApp = link
		}
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// GET /vitrine/categorias?q=
func (h *Handler) Categorias(w http.ResponseWriter, r *http.Request) {
	snap, ok := utils.SnapshotCarregado(w, h.Fonte)
	if !ok {
		return
	}
	utils.ResponderJSON(w, http.StatusOK, FiltrarCategorias(snap.Categorias(), r.URL.Query().Get("q")))
}

// GET /vitrine/sites?q=&categoria=&sessao=
// Chamadas seguidas da mesma sessão dentro da janela cancelam a anterior,
// que responde 409.
func (h *Handler) Sites(w http.ResponseWriter, r *http.Request) {
	snap, ok := utils.SnapshotCarregado(w, h.Fonte)
	if !ok {
		return
	}
	q := r.URL.Query()
	consulta := q.Get("q")
	sites := SitesDaCategoria(snap.Sites(), q.Get("categoria"))

	chave := q.Get("sessao")
	if chave == "" {
		chave = r.RemoteAddr
	}

	var encontrados []models.Site
	err := h.Debouncer.Executar(r.Context(), chave, func(ctx context.Context) error {
		encontrados = Exibir(sites, h.Buscador.Buscar(ctx, consulta, Candidatos(sites)))
		return nil
	})
	if errors.Is(err, ErrSubstituida) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		return // cliente desistiu
	}
	utils.ResponderJSON(w, http.StatusOK, encontrados)
}

// FiltrarCategorias casa o nome como substring sem diferenciar maiúsculas.
func FiltrarCategorias(cats []models.Categoria, consulta string) []models.Categoria {
	if strings.TrimSpace(consulta) == "" {
		return cats
	}
	q := strings.ToLower(consulta)
	out := []models.Categoria{}
	for _, c := range cats {
		if strings.Contains(strings.ToLower(c.Nome), q) {
			out = append(out, c)
		}
	}
	return out
}
