// Package localizacao obtém a posição do cliente no momento da solicitação.
package localizacao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
)

// Códigos de erro da geolocalização do navegador.
const (
	CodigoPermissaoNegada = 1
	CodigoIndisponivel    = 2
	CodigoTempoEsgotado   = 3
)

const (
	MensagemPermissaoNegada = "Permissão de localização negada. Habilite-a para solicitar o projeto."
	MensagemObrigatoria     = "A autorização de localização é obrigatória para prosseguir por segurança."
)

// ErrPermissaoLocalizacao é o erro de código 1; bloqueia a captação.
var ErrPermissaoLocalizacao = fmt.Errorf("%w: %s", models.ErrPermissao, MensagemPermissaoNegada)

type Opcoes struct {
	AltaPrecisao     bool
	Timeout          time.Duration
	IdadeMaximaCache time.Duration
}

// OpcoesPadrao pede alta precisão, 10s de espera e nenhuma posição em cache.
func OpcoesPadrao() Opcoes {
	return Opcoes{AltaPrecisao: true, Timeout: 10 * time.Second}
}

type ErroLocalizacao struct {
	Codigo   int
	Mensagem string
}

func (e *ErroLocalizacao) Error() string {
	if e.Mensagem != "" {
		return fmt.Sprintf("localização indisponível (código %d): %s", e.Codigo, e.Mensagem)
	}
	return fmt.Sprintf("localização indisponível (código %d)", e.Codigo)
}

func (e *ErroLocalizacao) Unwrap() error {
	if e.Codigo == CodigoPermissaoNegada {
		return ErrPermissaoLocalizacao
	}
	return nil
}

type Provedor interface {
	PosicaoAtual(ctx context.Context, o Opcoes) (models.Localizacao, error)
}

type resultado struct {
	pos models.Localizacao
	err error
}

// Obter consulta o provedor respeitando o timeout das opções. Estourado o
// prazo, devolve ErroLocalizacao de código 3.
func Obter(ctx context.Context, p Provedor, o Opcoes) (models.Localizacao, error) {
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	ch := make(chan resultado, 1)
	go func() {
		pos, err := p.PosicaoAtual(ctx, o)
		ch <- resultado{pos, err}
	}()

	var r resultado
	select {
	case r = <-ch:
	case <-ctx.Done():
		r.err = ctx.Err()
	}
	if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) {
		return models.Localizacao{}, &ErroLocalizacao{Codigo: CodigoTempoEsgotado}
	}
	return r.pos, r.err
}

// MensagemUsuario traduz a falha para o aviso exibido ao cliente.
func MensagemUsuario(err error) string {
	if errors.Is(err, ErrPermissaoLocalizacao) {
		return MensagemPermissaoNegada
	}
	return MensagemObrigatoria
}

// Reportada é a posição (ou o código de erro) enviada pelo navegador.
type Reportada struct {
	Posicao *models.Localizacao
	Codigo  int
}

func (r Reportada) PosicaoAtual(ctx context.Context, _ Opcoes) (models.Localizacao, error) {
	if r.Posicao != nil {
		return *r.Posicao, nil
	}
	codigo := r.Codigo
	if codigo == 0 {
		codigo = CodigoIndisponivel
	}
	return models.Localizacao{}, &ErroLocalizacao{Codigo: codigo}
}
