package localizacao

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
)

type provedorLento struct{}

func (provedorLento) PosicaoAtual(ctx context.Context, _ Opcoes) (models.Localizacao, error) {
	<-ctx.Done()
	return models.Localizacao{}, ctx.Err()
}

func TestOpcoesPadrao(t *testing.T) {
	o := OpcoesPadrao()
	assert.True(t, o.AltaPrecisao)
	assert.Equal(t, 10*time.Second, o.Timeout)
	assert.Zero(t, o.IdadeMaximaCache)
}

func TestObter_Reportada(t *testing.T) {
	pos, err := Obter(context.Background(), Reportada{Posicao: &models.Localizacao{Latitude: -23.5, Longitude: -46.6}}, OpcoesPadrao())
	require.NoError(t, err)
	assert.Equal(t, -23.5, pos.Latitude)
}

func TestObter_PermissaoNegada(t *testing.T) {
	_, err := Obter(context.Background(), Reportada{Codigo: CodigoPermissaoNegada}, OpcoesPadrao())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermissaoLocalizacao)
	assert.ErrorIs(t, err, models.ErrPermissao)
	assert.Equal(t, MensagemPermissaoNegada, MensagemUsuario(err))

	var e *ErroLocalizacao
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 1, e.Codigo)
}

func TestObter_Indisponivel(t *testing.T) {
	_, err := Obter(context.Background(), Reportada{}, OpcoesPadrao())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPermissaoLocalizacao)
	assert.Equal(t, MensagemObrigatoria, MensagemUsuario(err))
}

func TestObter_TempoEsgotado(t *testing.T) {
	_, err := Obter(context.Background(), provedorLento{}, Opcoes{Timeout: 20 * time.Millisecond})
	var e *ErroLocalizacao
	require.True(t, errors.As(err, &e))
	assert.Equal(t, CodigoTempoEsgotado, e.Codigo)
}
