// Package busca ranqueia os sites de demonstração para a consulta do
// cliente, com IA quando disponível e filtro local como reserva.
package busca

import (
	"context"
	"strings"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"go.uber.org/zap"
)

// Candidato é o que o ranqueador enxerga de cada site.
type Candidato struct {
	ID        string `json:"id"`
	Titulo    string `json:"title"`
	Descricao string `json:"description"`
}

func Candidatos(sites []models.Site) []Candidato {
	out := make([]Candidato, len(sites))
	for i, s := range sites {
		out[i] = Candidato{ID: s.ID, Titulo: s.Titulo, Descricao: s.Descricao}
	}
	return out
}

// Ranker devolve os ids que atendem à consulta.
type Ranker interface {
	Ranquear(ctx context.Context, consulta string, candidatos []Candidato) ([]string, error)
}

type Buscador struct {
	ranker Ranker
	logger *zap.Logger
}

// NovoBuscador aceita ranker nil: nesse caso só o filtro local é usado.
func NovoBuscador(r Ranker, logger *zap.Logger) *Buscador {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Buscador{ranker: r, logger: logger.Named("busca")}
}

// Buscar nunca devolve erro. Consulta vazia devolve todos os candidatos.
// Sem ranqueador o filtro local olha título e descrição; com falha do
// ranqueador, só o título.
func (b *Buscador) Buscar(ctx context.Context, consulta string, candidatos []Candidato) []string {
	if strings.TrimSpace(consulta) == "" {
		return todos(candidatos)
	}
	if b.ranker == nil {
		return FiltrarLocal(consulta, candidatos, true)
	}

	ids, err := b.ranker.Ranquear(ctx, consulta, candidatos)
	if err != nil {
		b.logger.Warn("erro na busca IA, usando filtro local", zap.String("consulta", consulta), zap.Error(err))
		return FiltrarLocal(consulta, candidatos, false)
	}
	return conhecidos(ids, candidatos)
}

// FiltrarLocal casa a consulta como substring, sem diferenciar maiúsculas.
func FiltrarLocal(consulta string, candidatos []Candidato, comDescricao bool) []string {
	q := strings.ToLower(consulta)
	out := []string{}
	for _, c := range candidatos {
		if strings.Contains(strings.ToLower(c.Titulo), q) ||
			(comDescricao && strings.Contains(strings.ToLower(c.Descricao), q)) {
			out = append(out, c.ID)
		}
	}
	return out
}

func todos(candidatos []Candidato) []string {
	out := make([]string, len(candidatos))
	for i, c := range candidatos {
		out[i] = c.ID
	}
	return out
}

// conhecidos descarta ids que não estavam entre os candidatos.
func conhecidos(ids []string, candidatos []Candidato) []string {
	validos := make(map[string]struct{}, len(candidatos))
	for _, c := range candidatos {
		validos[c.ID] = struct{}{}
	}
	out := []string{}
	for _, id := range ids {
		if _, ok := validos[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// SitesDaCategoria filtra por categoria; categoria vazia devolve todos.
func SitesDaCategoria(sites []models.Site, categoriaID string) []models.Site {
	if categoriaID == "" {
		return sites
	}
	out := []models.Site{}
	for _, s := range sites {
		if s.CategoriaID == categoriaID {
			out = append(out, s)
		}
	}
	return out
}

// Exibir mantém a ordem dos sites, ficando só com os ids encontrados.
func Exibir(sites []models.Site, ids []string) []models.Site {
	achados := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		achados[id] = struct{}{}
	}
	out := []models.Site{}
	for _, s := range sites {
		if _, ok := achados[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out
}
