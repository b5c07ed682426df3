// Package calculo concentra as contas monetárias das aquisições.
package calculo

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CasasDecimais é a precisão da moeda (centavos).
const CasasDecimais = 2

var ErrParcelasInvalidas = errors.New("quantidade de parcelas deve ser maior ou igual a 1")

// CalcularTotal deriva o valor total a partir do cronograma.
// Quitado: o total é o valor da parcela única. Em aberto: parcelas × valor.
// Entradas negativas são tratadas como zero e parcelas < 1 como 1.
func CalcularTotal(quitado bool, parcelas int, valorParcela decimal.Decimal) decimal.Decimal {
	if valorParcela.IsNegative() {
		valorParcela = decimal.Zero
	}
	if quitado {
		return valorParcela
	}
	if parcelas < 1 {
		parcelas = 1
	}
	return valorParcela.Mul(decimal.NewFromInt(int64(parcelas)))
}

// CalcularValorParcela divide o total pelas parcelas, arredondando para centavos.
func CalcularValorParcela(total decimal.Decimal, parcelas int) (decimal.Decimal, error) {
	if parcelas < 1 {
		return decimal.Zero, ErrParcelasInvalidas
	}
	return total.Div(decimal.NewFromInt(int64(parcelas))).Round(CasasDecimais), nil
}

// Somar soma os valores sem acumular erro de ponto flutuante.
func Somar(valores ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range valores {
		total = total.Add(v)
	}
	return total
}
