package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrTokenInvalido = errors.New("token inválido ou expirado")

// Claims da sessão do gerente. O jti identifica a sessão (e o mapa
// financeiro dela).
type Claims struct {
	Gerente bool `json:"gerente"`
	jwt.RegisteredClaims
}

// Emissor assina e valida os tokens HS256 do painel.
type Emissor struct {
	segredo []byte
	ttl     time.Duration
	emissor string
	agora   func() time.Time
}

func NovoEmissor(segredo string, ttl time.Duration, emissor string) *Emissor {
	return &Emissor{segredo: []byte(segredo), ttl: ttl, emissor: emissor, agora: time.Now}
}

func (e *Emissor) TTL() time.Duration { return e.ttl }

// GerarToken gera um JWT com validade de ttl e um jti novo.
func (e *Emissor) GerarToken() (string, *Claims, error) {
	agora := e.agora()
	claims := &Claims{
		Gerente: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    e.emissor,
			IssuedAt:  jwt.NewNumericDate(agora),
			NotBefore: jwt.NewNumericDate(agora),
			ExpiresAt: jwt.NewNumericDate(agora.Add(e.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	assinado, err := token.SignedString(e.segredo)
	if err != nil {
		return "", nil, fmt.Errorf("erro ao assinar token: %w", err)
	}
	return assinado, claims, nil
}

// ValidarToken valida o token e retorna as claims
func (e *Emissor) ValidarToken(tokenStr string) (*Claims, error) {
	opcoes := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(e.agora),
	}
	if e.emissor != "" {
		opcoes = append(opcoes, jwt.WithIssuer(e.emissor))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return e.segredo, nil
	}, opcoes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalido, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalido
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !claims.Gerente || claims.ID == "" {
		return nil, ErrTokenInvalido
	}
	return claims, nil
}
