package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const CtxSessao ctxKey = "sessao"

// Middleware exige um token de gerente válido no Authorization.
func Middleware(e *Emissor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "Token ausente", http.StatusUnauthorized)
				return
			}
			claims, err := e.ValidarToken(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "Token inválido", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessao, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessaoDoContexto devolve as claims gravadas pelo Middleware.
func SessaoDoContexto(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(CtxSessao).(*Claims)
	return c, ok
}

// ChaveSessao identifica a sessão da requisição pelo jti.
func ChaveSessao(r *http.Request) string {
	if c, ok := SessaoDoContexto(r.Context()); ok {
		return c.ID
	}
	return ""
}
