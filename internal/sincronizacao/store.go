// Package sincronizacao mantém o snapshot local das coleções do painel,
// atualizado a cada aviso do canal de mudanças.
package sincronizacao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/notificacao"
	"go.uber.org/zap"
)

var (
	// ErrSincronizacao embrulha qualquer falha de leitura de uma recarga.
	ErrSincronizacao = errors.New("Erro ao sincronizar dados do servidor.")
	ErrNaoCarregado  = errors.New("dados ainda não carregados")
)

// Store é o único dono do snapshot. Leituras são livres de trava; recargas
// e avisos são aplicados por um escritor por vez e publicados por troca
// atômica do ponteiro.
type Store struct {
	gateway     Gateway
	estrategia  Estrategia
	logger      *zap.Logger
	senhaPadrao string
	espera      time.Duration
	agora       func() time.Time

	atual atomic.Pointer[Snapshot]

	escrita     sync.Mutex
	senhaCriada bool
	versao      uint64

	mu       sync.RWMutex
	ouvintes map[int]func(*Snapshot)
	proximo  int

	recargaPendente atomic.Bool
}

type Opcao func(*Store)

func ComEstrategia(e Estrategia) Opcao {
	return func(s *Store) { s.estrategia = e }
}

func ComLogger(l *zap.Logger) Opcao {
	return func(s *Store) { s.logger = l }
}

// ComSenhaPadrao define o código gravado quando settings não tem o registro.
func ComSenhaPadrao(senha string) Opcao {
	return func(s *Store) { s.senhaPadrao = senha }
}

// ComEsperaReconexao define a pausa entre tentativas de reassinar o canal.
func ComEsperaReconexao(d time.Duration) Opcao {
	return func(s *Store) { s.espera = d }
}

func NovoStore(g Gateway, opts ...Opcao) *Store {
	s := &Store{
		gateway:     g,
		estrategia:  RecargaCompleta{},
		logger:      zap.NewNop(),
		senhaPadrao: "ehbc7890",
		espera:      5 * time.Second,
		agora:       time.Now,
		ouvintes:    map[int]func(*Snapshot){},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("sincronizacao")
	return s
}

// Snapshot devolve o snapshot publicado; antes da primeira carga é um
// snapshot vazio com Carregado() == false.
func (s *Store) Snapshot() *Snapshot {
	if snap := s.atual.Load(); snap != nil {
		return snap
	}
	return vazio
}

// Atualizar faz a recarga completa. Em caso de erro o snapshot anterior
// continua publicado.
func (s *Store) Atualizar(ctx context.Context) error {
	s.escrita.Lock()
	defer s.escrita.Unlock()

	snap, err := s.recarregar(ctx)
	if err != nil {
		return err
	}
	s.publicar(snap)
	return nil
}

// Notificar aplica um aviso de mudança pela estratégia configurada.
func (s *Store) Notificar(ctx context.Context, ev notificacao.Evento) error {
	s.escrita.Lock()
	defer s.escrita.Unlock()

	snap, err := s.estrategia.Aplicar(ctx, s.Snapshot(), ev, s.recarregar)
	if err != nil {
		if !errors.Is(err, ErrSincronizacao) {
			err = fmt.Errorf("%w: %w", ErrSincronizacao, err)
		}
		return err
	}
	s.publicar(snap)
	return nil
}

// recarregar lê as quatro coleções e o código de acesso. Exige s.escrita.
func (s *Store) recarregar(ctx context.Context) (*Snapshot, error) {
	cats, err := s.gateway.ListarCategorias(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: categorias: %w", ErrSincronizacao, err)
	}
	sites, err := s.gateway.ListarSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: sites: %w", ErrSincronizacao, err)
	}
	cons, err := s.gateway.ListarConsultores(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: consultores: %w", ErrSincronizacao, err)
	}
	aqs, err := s.gateway.ListarAquisicoes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: aquisições: %w", ErrSincronizacao, err)
	}

	senha, ok, err := s.gateway.BuscarSenha(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: configurações: %w", ErrSincronizacao, err)
	}
	if !ok {
		senha = s.senhaPadrao
		s.criarSenhaPadrao(ctx)
	}
	return NovoSnapshot(cats, sites, cons, aqs, senha), nil
}

// criarSenhaPadrao grava o código padrão uma única vez por processo.
// Falha só é registrada; a próxima recarga tenta de novo.
func (s *Store) criarSenhaPadrao(ctx context.Context) {
	if s.senhaCriada {
		return
	}
	if err := s.gateway.CriarSenha(ctx, s.senhaPadrao); err != nil {
		s.logger.Warn("erro ao criar código de acesso padrão", zap.Error(err))
		return
	}
	s.senhaCriada = true
	s.logger.Info("código de acesso padrão criado")
}

// publicar troca o snapshot e avisa os ouvintes. Exige s.escrita.
func (s *Store) publicar(snap *Snapshot) {
	s.versao++
	snap.versao = s.versao
	snap.atualizadoEm = s.agora()
	s.atual.Store(snap)

	s.mu.RLock()
	ouvintes := make([]func(*Snapshot), 0, len(s.ouvintes))
	for _, fn := range s.ouvintes {
		ouvintes = append(ouvintes, fn)
	}
	s.mu.RUnlock()

	for _, fn := range ouvintes {
		fn(snap)
	}
}

// Observar registra fn para cada snapshot publicado. fn roda na goroutine
// do escritor e não pode chamar métodos que escrevem no Store.
func (s *Store) Observar(fn func(*Snapshot)) (cancelar func()) {
	s.mu.Lock()
	id := s.proximo
	s.proximo++
	s.ouvintes[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.ouvintes, id)
		s.mu.Unlock()
	}
}

// Sincronizar mantém uma assinatura no canal até o contexto terminar.
// Os avisos são processados em ordem por um único worker; quando a fila
// enche, os excedentes viram uma recarga completa. Se a assinatura cair,
// o Store recarrega tudo e assina de novo.
func (s *Store) Sincronizar(ctx context.Context, canal notificacao.Canal) error {
	fila := make(chan notificacao.Evento, 256)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.processar(ctx, fila)
	}()
	defer wg.Wait()

	for {
		err := canal.Assinar(ctx, func(ev notificacao.Evento) {
			select {
			case fila <- ev:
			default:
				s.recargaPendente.Store(true)
			}
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("assinatura do canal caiu", zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.espera):
		}
		if err := s.Atualizar(ctx); err != nil {
			s.logger.Error("erro na recarga após reconexão", zap.Error(err))
		}
	}
}

func (s *Store) processar(ctx context.Context, fila <-chan notificacao.Evento) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-fila:
			if err := s.Notificar(ctx, ev); err != nil {
				s.logger.Error("erro ao aplicar aviso de mudança",
					zap.String("tabela", ev.Tabela), zap.String("id", ev.ID), zap.Error(err))
			}
			if s.recargaPendente.Swap(false) {
				if err := s.Atualizar(ctx); err != nil {
					s.logger.Error("erro na recarga completa", zap.Error(err))
				}
			}
		}
	}
}

// AgendarRecarga registra uma recarga completa periódica no cron, como
// rede de segurança para avisos perdidos.
func (s *Store) AgendarRecarga(c *cron.Cron, expressao string) (cron.EntryID, error) {
	return c.AddFunc(expressao, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Atualizar(ctx); err != nil {
			s.logger.Error("erro na recarga periódica", zap.Error(err))
		}
	})
}

func validar(condicao bool, msg string) error {
	if !condicao {
		return fmt.Errorf("%w: %s", models.ErrValidacao, msg)
	}
	return nil
}

func vazioOuEspacos(s string) bool { return strings.TrimSpace(s) == "" }
