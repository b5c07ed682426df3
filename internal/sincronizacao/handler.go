package sincronizacao

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Recarregador é o lado do Store exposto para operação.
type Recarregador interface {
	Snapshot() *Snapshot
	Atualizar(ctx context.Context) error
}

type Handler struct {
	Store Recarregador
}

func NewHandler(store Recarregador) *Handler {
	return &Handler{Store: store}
}

type estado struct {
	Carregado    bool       `json:"carregado"`
	Versao       uint64     `json:"versao"`
	AtualizadoEm *time.Time `json:"atualizadoEm,omitempty"`
}

func estadoDe(s *Snapshot) estado {
	e := estado{Carregado: s.Carregado(), Versao: s.Versao()}
	if s.Carregado() {
		t := s.AtualizadoEm()
		e.AtualizadoEm = &t
	}
	return e
}

// POST /sync/recarregar
// Força a recarga completa, a mesma feita na abertura do painel.
func (h *Handler) Recarregar(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Atualizar(r.Context()); err != nil {
		http.Error(w, ErrSincronizacao.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(estadoDe(h.Store.Snapshot()))
}

// GET /healthz
func (h *Handler) Saude(w http.ResponseWriter, r *http.Request) {
	e := estadoDe(h.Store.Snapshot())
	status := http.StatusOK
	if !e.Carregado {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(e)
}
