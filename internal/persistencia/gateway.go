// Package persistencia implementa o gateway do painel sobre o GORM,
// compondo os repositórios de cada tabela.
package persistencia

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/aquisicao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/categoria"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/configuracao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/consultor"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/notificacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/site"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Gateway lê e grava as cinco tabelas. Quando há publicador, cada escrita
// bem-sucedida é anunciada no canal de mudanças.
type Gateway struct {
	db         *gorm.DB
	categorias categoria.Repository
	sites      site.Repository
	consultors consultor.Repository
	aquisicoes aquisicao.Repository
	config     configuracao.Repository
	publicador notificacao.Publicador
	logger     *zap.Logger
}

var _ sincronizacao.Gateway = (*Gateway)(nil)

type Opcao func(*Gateway)

// ComPublicador anuncia as escritas num canal que não tem gatilhos no
// banco (redis, memória).
func ComPublicador(p notificacao.Publicador) Opcao {
	return func(g *Gateway) { g.publicador = p }
}

func ComLogger(l *zap.Logger) Opcao {
	return func(g *Gateway) { g.logger = l }
}

func NovoGateway(db *gorm.DB, opts ...Opcao) *Gateway {
	g := &Gateway{
		db:         db,
		categorias: categoria.NewRepository(),
		sites:      site.NewRepository(),
		consultors: consultor.NewRepository(),
		aquisicoes: aquisicao.NewRepository(),
		config:     configuracao.NewRepository(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func traduzir(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNaoEncontrado
	}
	return err
}

func (g *Gateway) anunciar(ctx context.Context, tabela, operacao, id string) {
	if g.publicador == nil {
		return
	}
	ev := notificacao.Evento{Tabela: tabela, Operacao: operacao, ID: id}
	if err := g.publicador.Publicar(ctx, ev); err != nil {
		g.logger.Warn("erro ao anunciar mudança",
			zap.String("tabela", tabela), zap.String("id", id), zap.Error(err))
	}
}

// Leitura

func (g *Gateway) ListarCategorias(ctx context.Context) ([]models.Categoria, error) {
	linhas, err := g.categorias.Listar(g.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]models.Categoria, len(linhas))
	for i, l := range linhas {
		out[i] = l.ParaDominio()
	}
	return out, nil
}

func (g *Gateway) ListarSites(ctx context.Context) ([]models.Site, error) {
	linhas, err := g.sites.Listar(g.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]models.Site, len(linhas))
	for i, l := range linhas {
		out[i] = l.ParaDominio()
	}
	return out, nil
}

func (g *Gateway) ListarConsultores(ctx context.Context) ([]models.Consultor, error) {
	linhas, err := g.consultors.Listar(g.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]models.Consultor, len(linhas))
	for i, l := range linhas {
		out[i] = l.ParaDominio()
	}
	return out, nil
}

func (g *Gateway) ListarAquisicoes(ctx context.Context) ([]models.Aquisicao, error) {
	linhas, err := g.aquisicoes.Listar(g.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]models.Aquisicao, len(linhas))
	for i, l := range linhas {
		out[i] = l.ParaDominio()
	}
	return out, nil
}

func (g *Gateway) BuscarSenha(ctx context.Context) (string, bool, error) {
	c, err := g.config.Buscar(g.db.WithContext(ctx), configuracao.ChaveSenhaGerente)
	if err != nil || c == nil {
		return "", false, err
	}
	return c.Valor, true, nil
}

// buscar converte "não encontrado" em (zero, false, nil).
func buscar[L any, D any](fn func() (*L, error), converter func(L) D) (D, bool, error) {
	var zero D
	linha, err := fn()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	return converter(*linha), true, nil
}

func (g *Gateway) BuscarCategoria(ctx context.Context, id string) (models.Categoria, bool, error) {
	return buscar(func() (*categoria.Categoria, error) {
		return g.categorias.BuscarPorID(g.db.WithContext(ctx), id)
	}, categoria.Categoria.ParaDominio)
}

func (g *Gateway) BuscarSite(ctx context.Context, id string) (models.Site, bool, error) {
	return buscar(func() (*site.Site, error) {
		return g.sites.BuscarPorID(g.db.WithContext(ctx), id)
	}, site.Site.ParaDominio)
}

func (g *Gateway) BuscarConsultor(ctx context.Context, id string) (models.Consultor, bool, error) {
	return buscar(func() (*consultor.Consultor, error) {
		return g.consultors.BuscarPorID(g.db.WithContext(ctx), id)
	}, consultor.Consultor.ParaDominio)
}

func (g *Gateway) BuscarAquisicao(ctx context.Context, id string) (models.Aquisicao, bool, error) {
	return buscar(func() (*aquisicao.Aquisicao, error) {
		return g.aquisicoes.BuscarPorID(g.db.WithContext(ctx), id)
	}, aquisicao.Aquisicao.ParaDominio)
}

// Escrita

func (g *Gateway) CriarSenha(ctx context.Context, valor string) error {
	c := &configuracao.Configuracao{Chave: configuracao.ChaveSenhaGerente, Valor: valor}
	if err := g.config.Criar(g.db.WithContext(ctx), c); err != nil {
		return fmt.Errorf("erro ao criar código de acesso: %w", err)
	}
	g.anunciar(ctx, sincronizacao.TabelaConfiguracoes, notificacao.OperacaoInsert, c.Chave)
	return nil
}

func (g *Gateway) AtualizarSenha(ctx context.Context, valor string) error {
	if err := g.config.AtualizarValor(g.db.WithContext(ctx), configuracao.ChaveSenhaGerente, valor); err != nil {
		return traduzir(err)
	}
	g.anunciar(ctx, sincronizacao.TabelaConfiguracoes, notificacao.OperacaoUpdate, configuracao.ChaveSenhaGerente)
	return nil
}

func (g *Gateway) AdicionarCategoria(ctx context.Context, nome string) error {
	c := &categoria.Categoria{Nome: strings.TrimSpace(nome)}
	if err := g.categorias.Inserir(g.db.WithContext(ctx), c); err != nil {
		return err
	}
	g.anunciar(ctx, sincronizacao.TabelaCategorias, notificacao.OperacaoInsert, c.ID)
	return nil
}

func (g *Gateway) AtualizarCategoria(ctx context.Context, id, nome string) error {
	if err := g.categorias.Renomear(g.db.WithContext(ctx), id, strings.TrimSpace(nome)); err != nil {
		return traduzir(err)
	}
	g.anunciar(ctx, sincronizacao.TabelaCategorias, notificacao.OperacaoUpdate, id)
	return nil
}

func (g *Gateway) RemoverCategoria(ctx context.Context, id string) error {
	if err := g.categorias.Deletar(g.db.WithContext(ctx), id); err != nil {
		return err
	}
	g.anunciar(ctx, sincronizacao.TabelaCategorias, notificacao.OperacaoDelete, id)
	return nil
}

func (g *Gateway) AdicionarSite(ctx context.Context, s models.Site) error {
	linha := site.DoDominio(s)
	linha.ID = ""
	if err := g.sites.Inserir(g.db.WithContext(ctx), &linha); err != nil {
		return err
	}
	g.anunciar(ctx, sincronizacao.TabelaSites, notificacao.OperacaoInsert, linha.ID)
	return nil
}

func (g *Gateway) AtualizarSite(ctx context.Context, id string, s models.Site) error {
	linha := site.DoDominio(s)
	if err := g.sites.Atualizar(g.db.WithContext(ctx), id, &linha); err != nil {
		return traduzir(err)
	}
	g.anunciar(ctx, sincronizacao.TabelaSites, notificacao.OperacaoUpdate, id)
	return nil
}

func (g *Gateway) RemoverSite(ctx context.Context, id string) error {
	if err := g.sites.Deletar(g.db.WithContext(ctx), id); err != nil {
		return err
	}
	g.anunciar(ctx, sincronizacao.TabelaSites, notificacao.OperacaoDelete, id)
	return nil
}

func (g *Gateway) AdicionarConsultor(ctx context.Context, c models.Consultor) error {
	linha := consultor.DoDominio(c)
	linha.ID = ""
	if err := g.consultors.Inserir(g.db.WithContext(ctx), &linha); err != nil {
		return err
	}
	g.anunciar(ctx, sincronizacao.TabelaConsultores, notificacao.OperacaoInsert, linha.ID)
	return nil
}

func (g *Gateway) AtualizarConsultor(ctx context.Context, id string, c models.Consultor) error {
	linha := consultor.DoDominio(c)
	if err := g.consultors.Atualizar(g.db.WithContext(ctx), id, &linha); err != nil {
		return traduzir(err)
	}
	g.anunciar(ctx, sincronizacao.TabelaConsultores, notificacao.OperacaoUpdate, id)
	return nil
}

func (g *Gateway) RemoverConsultor(ctx context.Context, id string) error {
	if err := g.consultors.Deletar(g.db.WithContext(ctx), id); err != nil {
		return err
	}
	g.anunciar(ctx, sincronizacao.TabelaConsultores, notificacao.OperacaoDelete, id)
	return nil
}

func (g *Gateway) AdicionarAquisicao(ctx context.Context, n models.NovaAquisicao) error {
	linha := aquisicao.NovaLinha(n)
	if err := g.aquisicoes.Inserir(g.db.WithContext(ctx), &linha); err != nil {
		return err
	}
	g.anunciar(ctx, sincronizacao.TabelaAquisicoes, notificacao.OperacaoInsert, linha.ID)
	return nil
}

func (g *Gateway) AtualizarAquisicao(ctx context.Context, id string, p models.PatchAquisicao) error {
	err := g.aquisicoes.Atualizar(g.db.WithContext(ctx), id, aquisicao.Colunas(p))
	if errors.Is(err, aquisicao.ErrPatchVazio) {
		return fmt.Errorf("%w: %w", models.ErrValidacao, err)
	}
	if err != nil {
		return traduzir(err)
	}
	g.anunciar(ctx, sincronizacao.TabelaAquisicoes, notificacao.OperacaoUpdate, id)
	return nil
}

func (g *Gateway) RemoverAquisicao(ctx context.Context, id string) error {
	if err := g.aquisicoes.Deletar(g.db.WithContext(ctx), id); err != nil {
		return err
	}
	g.anunciar(ctx, sincronizacao.TabelaAquisicoes, notificacao.OperacaoDelete, id)
	return nil
}
