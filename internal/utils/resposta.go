package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
)

// StatusDoErro classifica o erro de uma operação do painel.
func StatusDoErro(err error) int {
	switch {
	case errors.Is(err, models.ErrValidacao):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrPermissao):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, sincronizacao.ErrNaoCarregado):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// ResponderErro escreve o erro com o status da classificação. Para 503
// inclui Retry-After.
func ResponderErro(w http.ResponseWriter, err error) {
	status := StatusDoErro(err)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "5")
	}
	http.Error(w, err.Error(), status)
}

func ResponderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SnapshotCarregado devolve o snapshot ou responde 503 quando a primeira
// carga ainda não aconteceu.
func SnapshotCarregado(w http.ResponseWriter, fonte interface {
	Snapshot() *sincronizacao.Snapshot
}) (*sincronizacao.Snapshot, bool) {
	snap := fonte.Snapshot()
	if !snap.Carregado() {
		ResponderErro(w, sincronizacao.ErrNaoCarregado)
		return nil, false
	}
	return snap, true
}
