package calculo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularTotal(t *testing.T) {
	tests := []struct {
		name     string
		quitado  bool
		parcelas int
		valor    string
		esperado string
	}{
		{"em aberto multiplica", false, 3, "100", "300"},
		{"quitado usa a parcela", true, 3, "100", "100"},
		{"parcelas zero vira uma", false, 0, "50", "50"},
		{"valor zero", false, 4, "0", "0"},
		{"valor negativo nao gera total negativo", false, 2, "-10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcularTotal(tt.quitado, tt.parcelas, decimal.RequireFromString(tt.valor))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.esperado)), "obtido %s", got)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestCalcularValorParcela(t *testing.T) {
	v, err := CalcularValorParcela(decimal.NewFromInt(300), 3)
	require.NoError(t, err)
	assert.Equal(t, "100", v.String())

	v, err = CalcularValorParcela(decimal.NewFromInt(100), 3)
	require.NoError(t, err)
	assert.Equal(t, "33.33", v.String())

	_, err = CalcularValorParcela(decimal.NewFromInt(100), 0)
	assert.ErrorIs(t, err, ErrParcelasInvalidas)
}

func TestSomar_SemErroDePontoFlutuante(t *testing.T) {
	total := Somar(
		decimal.RequireFromString("10.10"),
		decimal.RequireFromString("20.20"),
		decimal.RequireFromString("5.05"),
	)
	assert.Equal(t, "35.35", total.StringFixed(2))
	assert.True(t, total.Equal(decimal.RequireFromString("35.35")))
}

func TestSomar_Vazio(t *testing.T) {
	assert.True(t, Somar().IsZero())
}
