// Package faturamento agrega as cobranças de um intervalo de datas e
// controla o mapa financeiro (marcadores e cursor de clientes).
package faturamento

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/calculo"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
)

// Periodo é o intervalo de vencimento, datas em YYYY-MM-DD.
type Periodo struct {
	Inicio string `json:"inicio"`
	Fim    string `json:"fim"`
}

// Efetivo completa a ponta que faltar com a outra. Sem as duas, ok é false.
func (p Periodo) Efetivo() (inicio, fim string, ok bool) {
	if p.Inicio == "" && p.Fim == "" {
		return "", "", false
	}
	inicio, fim = p.Inicio, p.Fim
	if inicio == "" {
		inicio = fim
	}
	if fim == "" {
		fim = inicio
	}
	return inicio, fim, true
}

// FiltrarPorPeriodo devolve as aquisições com vencimento dentro do período,
// já ordenadas. Antes da pesquisa o resultado é sempre vazio.
func FiltrarPorPeriodo(aqs []models.Aquisicao, p Periodo, pesquisado bool) []models.Aquisicao {
	out := []models.Aquisicao{}
	if !pesquisado {
		return out
	}
	inicio, fim, ok := p.Efetivo()
	if !ok {
		return out
	}
	for _, a := range aqs {
		dia := a.DiaPagamento()
		if dia == "" {
			continue
		}
		// comparação lexicográfica funciona para YYYY-MM-DD
		if dia >= inicio && dia <= fim {
			out = append(out, a.Clone())
		}
	}
	Ordenar(out)
	return out
}

// Ordenar coloca as aquisições em ordem crescente de vencimento; sem data
// vem primeiro.
func Ordenar(aqs []models.Aquisicao) {
	slices.SortStableFunc(aqs, func(a, b models.Aquisicao) int {
		return cmp.Compare(dataOuVazio(a), dataOuVazio(b))
	})
}

func dataOuVazio(a models.Aquisicao) string {
	if a.DataPagamento == nil {
		return ""
	}
	return *a.DataPagamento
}

// SomarParcelas soma o valor da parcela (não o total) de cada aquisição.
func SomarParcelas(aqs []models.Aquisicao) decimal.Decimal {
	valores := make([]decimal.Decimal, len(aqs))
	for i, a := range aqs {
		valores[i] = a.ValorParcelaOuZero()
	}
	return calculo.Somar(valores...)
}
