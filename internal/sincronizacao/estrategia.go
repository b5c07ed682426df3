package sincronizacao

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/notificacao"
)

// Recarga busca todas as coleções e monta um snapshot novo.
type Recarga func(ctx context.Context) (*Snapshot, error)

// Estrategia decide como um aviso de mudança vira um snapshot novo.
// Devolver erro mantém o snapshot anterior.
type Estrategia interface {
	Nome() string
	Aplicar(ctx context.Context, atual *Snapshot, ev notificacao.Evento, recarregar Recarga) (*Snapshot, error)
}

// RecargaCompleta refaz a busca inteira a cada aviso, qualquer que seja a tabela.
type RecargaCompleta struct{}

func (RecargaCompleta) Nome() string { return "completa" }

func (RecargaCompleta) Aplicar(ctx context.Context, _ *Snapshot, _ notificacao.Evento, recarregar Recarga) (*Snapshot, error) {
	return recarregar(ctx)
}

// AplicacaoIncremental relê só a linha avisada e a substitui (ou remove)
// no snapshot. Avisos sem tabela ou id caem na recarga completa.
type AplicacaoIncremental struct {
	leitor Leitor
}

func NovaAplicacaoIncremental(l Leitor) *AplicacaoIncremental {
	return &AplicacaoIncremental{leitor: l}
}

func (*AplicacaoIncremental) Nome() string { return "incremental" }

func (e *AplicacaoIncremental) Aplicar(ctx context.Context, atual *Snapshot, ev notificacao.Evento, recarregar Recarga) (*Snapshot, error) {
	if !atual.Carregado() || ev.Tabela == "" {
		return recarregar(ctx)
	}
	if ev.Tabela == TabelaConfiguracoes {
		senha, ok, err := e.leitor.BuscarSenha(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return recarregar(ctx)
		}
		novo := atual.copia()
		novo.senha = senha
		return novo, nil
	}
	if ev.ID == "" {
		return recarregar(ctx)
	}

	remover := ev.Operacao == notificacao.OperacaoDelete
	novo := atual.copia()
	switch ev.Tabela {
	case TabelaCategorias:
		var c models.Categoria
		ok := false
		if !remover {
			var err error
			if c, ok, err = e.leitor.BuscarCategoria(ctx, ev.ID); err != nil {
				return nil, err
			}
		}
		novo.categorias = aplicar(novo.categorias, ev.ID, func(x models.Categoria) string { return x.ID }, c, ok)
		slices.SortStableFunc(novo.categorias, func(a, b models.Categoria) int { return cmp.Compare(a.Nome, b.Nome) })
	case TabelaConsultores:
		var c models.Consultor
		ok := false
		if !remover {
			var err error
			if c, ok, err = e.leitor.BuscarConsultor(ctx, ev.ID); err != nil {
				return nil, err
			}
		}
		novo.consultores = aplicar(novo.consultores, ev.ID, func(x models.Consultor) string { return x.ID }, c.Clone(), ok)
		slices.SortStableFunc(novo.consultores, func(a, b models.Consultor) int { return cmp.Compare(a.Nome, b.Nome) })
	case TabelaSites:
		var s models.Site
		ok := false
		if !remover {
			var err error
			if s, ok, err = e.leitor.BuscarSite(ctx, ev.ID); err != nil {
				return nil, err
			}
		}
		// site novo entra no topo (mais recente primeiro)
		novo.sites = aplicar(novo.sites, ev.ID, func(x models.Site) string { return x.ID }, s.Clone(), ok)
	case TabelaAquisicoes:
		var a models.Aquisicao
		ok := false
		if !remover {
			var err error
			if a, ok, err = e.leitor.BuscarAquisicao(ctx, ev.ID); err != nil {
				return nil, err
			}
		}
		novo.aquisicoes = aplicar(novo.aquisicoes, ev.ID, func(x models.Aquisicao) string { return x.ID }, a.Clone(), ok)
		slices.SortStableFunc(novo.aquisicoes, func(a, b models.Aquisicao) int { return cmp.Compare(b.Timestamp, a.Timestamp) })
	default:
		return recarregar(ctx)
	}
	return novo, nil
}

// aplicar substitui o item de mesmo id, insere no início quando ele não
// existe ou remove quando presente=false.
func aplicar[T any](lista []T, id string, idDe func(T) string, item T, presente bool) []T {
	i := slices.IndexFunc(lista, func(x T) bool { return idDe(x) == id })
	switch {
	case !presente && i >= 0:
		return slices.Delete(lista, i, i+1)
	case !presente:
		return lista
	case i >= 0:
		lista[i] = item
		return lista
	default:
		return slices.Insert(lista, 0, item)
	}
}

// EstrategiaPorNome resolve o valor de sync.estrategia.
func EstrategiaPorNome(nome string, l Leitor) (Estrategia, error) {
	switch nome {
	case "", "completa":
		return RecargaCompleta{}, nil
	case "incremental":
		return NovaAplicacaoIncremental(l), nil
	}
	return nil, fmt.Errorf("estratégia de sincronização desconhecida: %q", nome)
}
