package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/utils"
	"go.uber.org/zap"
)

// Store é o lado do snapshot usado pelo acesso do gerente.
type Store interface {
	Snapshot() *sincronizacao.Snapshot
	AtualizarSenha(ctx context.Context, valor string) error
}

type Handler struct {
	Store   Store
	Emissor *Emissor
	Logger  *zap.Logger
}

func NewHandler(store Store, e *Emissor, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: store, Emissor: e, Logger: logger.Named("auth")}
}

type SenhaRequest struct {
	Senha string `json:"senha"`
}

// POST /auth/login
// Confere o código de acesso e emite o token da sessão do gerente.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req SenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	snap, ok := utils.SnapshotCarregado(w, h.Store)
	if !ok {
		return
	}
	if !utils.ConferirCodigo(snap.Senha(), req.Senha) {
		http.Error(w, "Código de acesso incorreto", http.StatusUnauthorized)
		return
	}

	token, claims, err := h.Emissor.GerarToken()
	if err != nil {
		h.Logger.Error("erro ao gerar token", zap.Error(err))
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.Emissor.TTL().Seconds()),
		"sessao":       claims.ID,
	})
}

// PUT /configuracoes/senha
// Grava o novo código em bcrypt.
func (h *Handler) AtualizarSenha(w http.ResponseWriter, r *http.Request) {
	var req SenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Senha) == "" {
		http.Error(w, "O código de acesso não pode ser vazio", http.StatusBadRequest)
		return
	}
	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}
	if err := h.Store.AtualizarSenha(r.Context(), hash); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
