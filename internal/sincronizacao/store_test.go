package sincronizacao

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/notificacao"
)

type gatewayFalso struct {
	mu          sync.Mutex
	categorias  []models.Categoria
	sites       []models.Site
	consultores []models.Consultor
	aquisicoes  []models.Aquisicao
	senha       string
	temSenha    bool

	listagens     int
	buscasPorID   int
	criacoesSenha int
	falhaListagem error
	escritas      []string
	ultimaNova    models.NovaAquisicao
	ultimoPatch   models.PatchAquisicao
}

func ptr[T any](v T) *T { return &v }

func novoGatewayFalso() *gatewayFalso {
	return &gatewayFalso{
		categorias:  []models.Categoria{{ID: "c1", Nome: "Saúde"}},
		sites:       []models.Site{{ID: "s1", Titulo: "Clínica", CategoriaID: "c1", Galeria: []string{}}},
		consultores: []models.Consultor{{ID: "k1", Nome: "Ana"}},
		aquisicoes: []models.Aquisicao{{
			ID:           "a1",
			Status:       models.StatusPendente,
			Parcelas:     ptr(2),
			ValorParcela: ptr(decimal.NewFromInt(50)),
			ValorTotal:   ptr(decimal.NewFromInt(100)),
			Localizacao:  &models.Localizacao{Latitude: -23.5, Longitude: -46.6},
			Timestamp:    2000,
		}},
		senha:    "codigo",
		temSenha: true,
	}
}

func (g *gatewayFalso) ListarCategorias(ctx context.Context) ([]models.Categoria, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listagens++
	return slices.Clone(g.categorias), nil
}

func (g *gatewayFalso) ListarSites(ctx context.Context) ([]models.Site, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.sites), nil
}

func (g *gatewayFalso) ListarConsultores(ctx context.Context) ([]models.Consultor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.consultores), nil
}

func (g *gatewayFalso) ListarAquisicoes(ctx context.Context) ([]models.Aquisicao, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.falhaListagem != nil {
		return nil, g.falhaListagem
	}
	out := make([]models.Aquisicao, len(g.aquisicoes))
	for i, a := range g.aquisicoes {
		out[i] = a.Clone()
	}
	return out, nil
}

func (g *gatewayFalso) BuscarSenha(ctx context.Context) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.senha, g.temSenha, nil
}

func (g *gatewayFalso) BuscarCategoria(ctx context.Context, id string) (models.Categoria, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buscasPorID++
	for _, c := range g.categorias {
		if c.ID == id {
			return c, true, nil
		}
	}
	return models.Categoria{}, false, nil
}

func (g *gatewayFalso) BuscarSite(ctx context.Context, id string) (models.Site, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buscasPorID++
	for _, s := range g.sites {
		if s.ID == id {
			return s, true, nil
		}
	}
	return models.Site{}, false, nil
}

func (g *gatewayFalso) BuscarConsultor(ctx context.Context, id string) (models.Consultor, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buscasPorID++
	for _, c := range g.consultores {
		if c.ID == id {
			return c, true, nil
		}
	}
	return models.Consultor{}, false, nil
}

func (g *gatewayFalso) BuscarAquisicao(ctx context.Context, id string) (models.Aquisicao, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buscasPorID++
	for _, a := range g.aquisicoes {
		if a.ID == id {
			return a.Clone(), true, nil
		}
	}
	return models.Aquisicao{}, false, nil
}

func (g *gatewayFalso) registrar(op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.escritas = append(g.escritas, op)
	return nil
}

func (g *gatewayFalso) CriarSenha(ctx context.Context, valor string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.criacoesSenha++
	return nil
}

func (g *gatewayFalso) AtualizarSenha(ctx context.Context, valor string) error {
	return g.registrar("senha")
}
func (g *gatewayFalso) AdicionarCategoria(ctx context.Context, nome string) error {
	return g.registrar("categoria+")
}
func (g *gatewayFalso) AtualizarCategoria(ctx context.Context, id, nome string) error {
	return g.registrar("categoria~")
}
func (g *gatewayFalso) RemoverCategoria(ctx context.Context, id string) error {
	return g.registrar("categoria-")
}
func (g *gatewayFalso) AdicionarSite(ctx context.Context, s models.Site) error {
	return g.registrar("site+")
}
func (g *gatewayFalso) AtualizarSite(ctx context.Context, id string, s models.Site) error {
	return g.registrar("site~")
}
func (g *gatewayFalso) RemoverSite(ctx context.Context, id string) error {
	return g.registrar("site-")
}
func (g *gatewayFalso) AdicionarConsultor(ctx context.Context, c models.Consultor) error {
	return g.registrar("consultor+")
}
func (g *gatewayFalso) AtualizarConsultor(ctx context.Context, id string, c models.Consultor) error {
	return g.registrar("consultor~")
}
func (g *gatewayFalso) RemoverConsultor(ctx context.Context, id string) error {
	return g.registrar("consultor-")
}
func (g *gatewayFalso) AdicionarAquisicao(ctx context.Context, a models.NovaAquisicao) error {
	g.mu.Lock()
	g.ultimaNova = a
	g.mu.Unlock()
	return g.registrar("aquisicao+")
}
func (g *gatewayFalso) AtualizarAquisicao(ctx context.Context, id string, p models.PatchAquisicao) error {
	g.mu.Lock()
	g.ultimoPatch = p
	g.mu.Unlock()
	return g.registrar("aquisicao~")
}
func (g *gatewayFalso) RemoverAquisicao(ctx context.Context, id string) error {
	return g.registrar("aquisicao-")
}

func TestStore_AntesDaCarga(t *testing.T) {
	s := NovoStore(novoGatewayFalso())
	snap := s.Snapshot()
	require.NotNil(t, snap)
	assert.False(t, snap.Carregado())
	assert.Empty(t, snap.Aquisicoes())
}

func TestStore_Atualizar(t *testing.T) {
	g := novoGatewayFalso()
	s := NovoStore(g)

	require.NoError(t, s.Atualizar(context.Background()))
	snap := s.Snapshot()
	assert.True(t, snap.Carregado())
	assert.Equal(t, uint64(1), snap.Versao())
	assert.Equal(t, "codigo", snap.Senha())
	assert.Len(t, snap.Aquisicoes(), 1)

	a, ok := snap.Aquisicao("a1")
	require.True(t, ok)
	assert.True(t, a.ValorTotal.Equal(decimal.NewFromInt(100)))
}

func TestStore_LeitoresNaoAlteramSnapshot(t *testing.T) {
	s := NovoStore(novoGatewayFalso())
	require.NoError(t, s.Atualizar(context.Background()))

	aqs := s.Snapshot().Aquisicoes()
	aqs[0].ClienteNome = "alterado"
	*aqs[0].ValorParcela = decimal.NewFromInt(999)

	a, _ := s.Snapshot().Aquisicao("a1")
	assert.Equal(t, "", a.ClienteNome)
	assert.True(t, a.ValorParcela.Equal(decimal.NewFromInt(50)))
}

func TestStore_FalhaMantemSnapshotAnterior(t *testing.T) {
	g := novoGatewayFalso()
	s := NovoStore(g)
	require.NoError(t, s.Atualizar(context.Background()))
	antes := s.Snapshot()

	g.falhaListagem = errors.New("conexão recusada")
	err := s.Atualizar(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSincronizacao)
	assert.Same(t, antes, s.Snapshot())
}

func TestStore_SenhaPadraoCriadaUmaVez(t *testing.T) {
	g := novoGatewayFalso()
	g.temSenha = false
	s := NovoStore(g, ComSenhaPadrao("ehbc7890"))

	require.NoError(t, s.Atualizar(context.Background()))
	require.NoError(t, s.Atualizar(context.Background()))

	assert.Equal(t, 1, g.criacoesSenha)
	assert.Equal(t, "ehbc7890", s.Snapshot().Senha())
}

func TestStore_AvisoDeOutraTabelaRecarregaSemAlterarAquisicoes(t *testing.T) {
	g := novoGatewayFalso()
	s := NovoStore(g)
	require.NoError(t, s.Atualizar(context.Background()))
	antes := s.Snapshot().Aquisicoes()

	g.mu.Lock()
	g.categorias = append(g.categorias, models.Categoria{ID: "c2", Nome: "Varejo"})
	g.mu.Unlock()

	ev := notificacao.Evento{Tabela: TabelaCategorias, Operacao: notificacao.OperacaoInsert, ID: "c2"}
	require.NoError(t, s.Notificar(context.Background(), ev))

	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.Versao())
	assert.Len(t, snap.Categorias(), 2)
	assert.Equal(t, antes, snap.Aquisicoes())
	assert.Equal(t, 2, g.listagens)
}

func TestStore_Incremental(t *testing.T) {
	g := novoGatewayFalso()
	s := NovoStore(g, ComEstrategia(NovaAplicacaoIncremental(g)))
	ctx := context.Background()
	require.NoError(t, s.Atualizar(ctx))

	g.mu.Lock()
	g.aquisicoes[0].Status = models.StatusProducao
	g.aquisicoes = append(g.aquisicoes, models.Aquisicao{ID: "a2", Status: models.StatusPendente, Timestamp: 3000})
	g.mu.Unlock()

	require.NoError(t, s.Notificar(ctx, notificacao.Evento{Tabela: TabelaAquisicoes, Operacao: notificacao.OperacaoUpdate, ID: "a1"}))
	require.NoError(t, s.Notificar(ctx, notificacao.Evento{Tabela: TabelaAquisicoes, Operacao: notificacao.OperacaoInsert, ID: "a2"}))

	aqs := s.Snapshot().Aquisicoes()
	require.Len(t, aqs, 2)
	assert.Equal(t, "a2", aqs[0].ID, "mais recente primeiro")
	assert.Equal(t, models.StatusProducao, aqs[1].Status)
	assert.Equal(t, 1, g.listagens, "nenhuma recarga completa")

	require.NoError(t, s.Notificar(ctx, notificacao.Evento{Tabela: TabelaAquisicoes, Operacao: notificacao.OperacaoDelete, ID: "a2"}))
	assert.Len(t, s.Snapshot().Aquisicoes(), 1)

	require.NoError(t, s.Notificar(ctx, notificacao.Evento{}))
	assert.Equal(t, 2, g.listagens, "aviso desconhecido recarrega tudo")
}

func TestStore_Observar(t *testing.T) {
	s := NovoStore(novoGatewayFalso())
	var versoes []uint64
	cancelar := s.Observar(func(snap *Snapshot) { versoes = append(versoes, snap.Versao()) })

	require.NoError(t, s.Atualizar(context.Background()))
	cancelar()
	require.NoError(t, s.Atualizar(context.Background()))

	assert.Equal(t, []uint64{1}, versoes)
}

func TestStore_Sincronizar(t *testing.T) {
	g := novoGatewayFalso()
	s := NovoStore(g)
	canal := notificacao.NovaMemoria()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Atualizar(ctx))

	fim := make(chan error, 1)
	go func() { fim <- s.Sincronizar(ctx, canal) }()
	require.Eventually(t, func() bool { return canal.Assinantes() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, canal.Publicar(ctx, notificacao.Evento{Tabela: TabelaSites, Operacao: notificacao.OperacaoUpdate, ID: "s1"}))
	require.Eventually(t, func() bool { return s.Snapshot().Versao() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-fim, context.Canceled)
}

func TestStore_MutacoesValidamAntesDeEscrever(t *testing.T) {
	g := novoGatewayFalso()
	s := NovoStore(g)
	ctx := context.Background()

	assert.ErrorIs(t, s.AdicionarCategoria(ctx, " "), models.ErrValidacao)
	assert.ErrorIs(t, s.AdicionarSite(ctx, models.Site{Titulo: "x", CategoriaID: "c1"}), models.ErrValidacao)
	assert.ErrorIs(t, s.AdicionarConsultor(ctx, models.Consultor{Nome: "Ana", CPF: "1"}), models.ErrValidacao)
	assert.ErrorIs(t, s.AtualizarAquisicao(ctx, "a1", models.PatchAquisicao{}), models.ErrValidacao)
	assert.Empty(t, g.escritas)

	require.NoError(t, s.AdicionarSite(ctx, models.Site{Titulo: "x", Link: "https://x", CategoriaID: "c1"}))
	require.NoError(t, s.AtualizarAquisicao(ctx, "a1", models.PatchAquisicao{Comentario: ptr("ok")}))
	assert.Equal(t, []string{"site+", "aquisicao~"}, g.escritas)
}

func TestStore_AgendarRecarga(t *testing.T) {
	s := NovoStore(novoGatewayFalso())
	c := cron.New()
	id, err := s.AgendarRecarga(c, "@every 5m")
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = s.AgendarRecarga(c, "não é cron")
	assert.Error(t, err)
}
