package faturamento

import (
	"encoding/json"
	"net/http"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
)

// Fonte fornece o snapshot atual.
type Fonte interface {
	Snapshot() *sincronizacao.Snapshot
}

type Handler struct {
	Registro *Registro
	Fonte    Fonte
	// Chave identifica a sessão do gerente na requisição.
	Chave func(r *http.Request) string
}

func NewHandler(reg *Registro, fonte Fonte, chave func(r *http.Request) string) *Handler {
	return &Handler{Registro: reg, Fonte: fonte, Chave: chave}
}

type resposta struct {
	Resultado
	Marcadores []Marcador `json:"marcadores"`
	Foco       *Foco      `json:"foco,omitempty"`
}

func (h *Handler) responder(w http.ResponseWriter, res Resultado, mapa *MapaRegistrado) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resposta{
		Resultado:  res,
		Marcadores: mapa.Marcadores(),
		Foco:       mapa.Foco(),
	})
}

// GET /faturamento
func (h *Handler) Resultado(w http.ResponseWriter, r *http.Request) {
	sessao, mapa := h.Registro.Sessao(h.Chave(r))
	h.responder(w, sessao.Resultado(), mapa)
}

// POST /faturamento/pesquisar
func (h *Handler) Pesquisar(w http.ResponseWriter, r *http.Request) {
	var p Periodo
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	snap := h.Fonte.Snapshot()
	if !snap.Carregado() {
		w.Header().Set("Retry-After", "5")
		http.Error(w, "dados ainda não carregados", http.StatusServiceUnavailable)
		return
	}
	sessao, mapa := h.Registro.Sessao(h.Chave(r))
	h.responder(w, sessao.Pesquisar(p, snap.Aquisicoes()), mapa)
}

// DELETE /faturamento/pesquisa
func (h *Handler) Limpar(w http.ResponseWriter, r *http.Request) {
	sessao, mapa := h.Registro.Sessao(h.Chave(r))
	sessao.Limpar(h.Fonte.Snapshot().Aquisicoes())
	h.responder(w, sessao.Resultado(), mapa)
}

// POST /faturamento/proximo
func (h *Handler) Proximo(w http.ResponseWriter, r *http.Request) {
	sessao, _ := h.Registro.Sessao(h.Chave(r))
	indice, foco, ok := sessao.Avancar()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"indice": indice,
		"foco":   foco,
		"movido": ok,
	})
}
