package sincronizacao

import (
	"context"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
)

// Nomes das tabelas observadas, iguais aos enviados pelos gatilhos.
const (
	TabelaCategorias    = "categories"
	TabelaSites         = "demo_sites"
	TabelaConsultores   = "consultants"
	TabelaAquisicoes    = "acquisitions"
	TabelaConfiguracoes = "settings"
)

// Leitor lê as coleções já normalizadas para o domínio.
// As listas chegam na ordem de exibição.
type Leitor interface {
	ListarCategorias(ctx context.Context) ([]models.Categoria, error)
	ListarSites(ctx context.Context) ([]models.Site, error)
	ListarConsultores(ctx context.Context) ([]models.Consultor, error)
	ListarAquisicoes(ctx context.Context) ([]models.Aquisicao, error)
	BuscarSenha(ctx context.Context) (valor string, encontrada bool, err error)

	BuscarCategoria(ctx context.Context, id string) (models.Categoria, bool, error)
	BuscarSite(ctx context.Context, id string) (models.Site, bool, error)
	BuscarConsultor(ctx context.Context, id string) (models.Consultor, bool, error)
	BuscarAquisicao(ctx context.Context, id string) (models.Aquisicao, bool, error)
}

// Escritor faz uma escrita remota por chamada.
type Escritor interface {
	CriarSenha(ctx context.Context, valor string) error
	AtualizarSenha(ctx context.Context, valor string) error

	AdicionarCategoria(ctx context.Context, nome string) error
	AtualizarCategoria(ctx context.Context, id, nome string) error
	RemoverCategoria(ctx context.Context, id string) error

	AdicionarSite(ctx context.Context, s models.Site) error
	AtualizarSite(ctx context.Context, id string, s models.Site) error
	RemoverSite(ctx context.Context, id string) error

	AdicionarConsultor(ctx context.Context, c models.Consultor) error
	AtualizarConsultor(ctx context.Context, id string, c models.Consultor) error
	RemoverConsultor(ctx context.Context, id string) error

	AdicionarAquisicao(ctx context.Context, a models.NovaAquisicao) error
	AtualizarAquisicao(ctx context.Context, id string, p models.PatchAquisicao) error
	RemoverAquisicao(ctx context.Context, id string) error
}

type Gateway interface {
	Leitor
	Escritor
}
