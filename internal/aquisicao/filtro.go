package aquisicao

import (
	"strings"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
)

// StatusTodos desativa o filtro de status na lista de vendas.
const StatusTodos = "all"

// FiltrarVendas aplica a busca (nome do cliente ou título do site, sem
// diferenciar maiúsculas) e o filtro de status da lista de vendas.
func FiltrarVendas(aquisicoes []models.Aquisicao, busca, status string) []models.Aquisicao {
	termo := strings.ToLower(strings.TrimSpace(busca))
	out := make([]models.Aquisicao, 0, len(aquisicoes))
	for _, a := range aquisicoes {
		if termo != "" &&
			!strings.Contains(strings.ToLower(a.ClienteNome), termo) &&
			!strings.Contains(strings.ToLower(a.SiteTitulo), termo) {
			continue
		}
		if status != "" && status != StatusTodos && string(a.Status) != status {
			continue
		}
		out = append(out, a)
	}
	return out
}
