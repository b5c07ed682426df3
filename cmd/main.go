package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/aquisicao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/auth"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/busca"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/captacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/categoria"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/config"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/consultor"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/faturamento"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/localizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/logger"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/notificacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/persistencia"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/site"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/utils/db"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Erro ao carregar configuração:", err)
	}

	zl, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		log.Fatal("Erro ao iniciar logger:", err)
	}
	defer zl.Sync()

	// valores monetários saem como número no JSON
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.GetDB(ctx, &cfg.Database, zl)
	if err != nil {
		zl.Fatal("erro ao conectar no banco", zap.Error(err))
	}

	if err := persistencia.Migrar(database); err != nil {
		zl.Fatal("erro na migração", zap.Error(err))
	}

	// Canal de mudanças
	var (
		canal       notificacao.Canal
		gatewayOpts = []persistencia.Opcao{persistencia.ComLogger(zl)}
	)
	switch cfg.Sync.Canal {
	case "postgres":
		if err := persistencia.InstalarGatilhos(database, cfg.Sync.CanalNome); err != nil {
			zl.Fatal("erro ao instalar gatilhos", zap.Error(err))
		}
		canal = notificacao.NovoCanalPostgres(cfg.Database.DSN(), cfg.Sync.CanalNome, zl)
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zl.Fatal("erro ao conectar no redis", zap.Error(err))
		}
		r := notificacao.NovoCanalRedis(rdb, cfg.Sync.CanalNome, zl)
		canal = r
		gatewayOpts = append(gatewayOpts, persistencia.ComPublicador(r))
	default:
		m := notificacao.NovaMemoria()
		canal = m
		gatewayOpts = append(gatewayOpts, persistencia.ComPublicador(m))
	}

	gateway := persistencia.NovoGateway(database, gatewayOpts...)
	estrategia, err := sincronizacao.EstrategiaPorNome(cfg.Sync.Estrategia, gateway)
	if err != nil {
		zl.Fatal("estratégia de sincronização inválida", zap.Error(err))
	}
	store := sincronizacao.NovoStore(gateway,
		sincronizacao.ComEstrategia(estrategia),
		sincronizacao.ComLogger(zl),
		sincronizacao.ComSenhaPadrao(cfg.Senha.Padrao),
	)

	// Sem a primeira carga o painel responde 503 até a próxima recarga.
	if err := store.Atualizar(ctx); err != nil {
		zl.Error("erro na carga inicial", zap.Error(err))
	}
	go func() {
		if err := store.Sincronizar(ctx, canal); err != nil && !errors.Is(err, context.Canceled) {
			zl.Error("sincronização encerrada", zap.Error(err))
		}
	}()

	registro := faturamento.NovoRegistro(cfg.Faturamento.SessaoTTL, zl)
	defer registro.Acompanhar(store)()

	agenda := cron.New()
	if cfg.Sync.RecargaPeriodica != "" {
		if _, err := store.AgendarRecarga(agenda, cfg.Sync.RecargaPeriodica); err != nil {
			zl.Fatal("sync.recarga_periodica inválida", zap.Error(err))
		}
	}
	if _, err := registro.AgendarExpurgo(agenda, cfg.Faturamento.Expurgo); err != nil {
		zl.Fatal("faturamento.expurgo inválido", zap.Error(err))
	}
	agenda.Start()
	defer agenda.Stop()

	// Busca da vitrine
	var ranker busca.Ranker
	if cfg.Busca.GeminiAPIKey != "" {
		g, err := busca.NovoRankerGemini(ctx, cfg.Busca.GeminiAPIKey, cfg.Busca.Modelo)
		if err != nil {
			zl.Warn("busca inteligente desligada", zap.Error(err))
		} else {
			ranker = g
		}
	}
	buscador := busca.NovoBuscador(ranker, zl)

	politica, err := aquisicao.PoliticaPorNome(cfg.Aquisicao.PoliticaStatus)
	if err != nil {
		zl.Fatal("política de status inválida", zap.Error(err))
	}

	opcoesLocalizacao := localizacao.OpcoesPadrao()
	opcoesLocalizacao.Timeout = cfg.Localizacao.Timeout
	webhook := notificacao.NovoWebhook(cfg.Webhook.URL, cfg.Webhook.Timeout, zl)
	servico := captacao.NovoServico(store, webhook, opcoesLocalizacao, zl)

	emissor := auth.NovoEmissor(cfg.JWT.Segredo, cfg.JWT.Expiracao, cfg.JWT.Emissor)

	// Handlers
	authHandler := auth.NewHandler(store, emissor, zl)
	syncHandler := sincronizacao.NewHandler(store)
	vitrineHandler := busca.NewHandler(store, buscador, busca.NovoDebouncer(cfg.Busca.Debounce), cfg.App.Origem)
	captacaoHandler := captacao.NewHandler(servico)
	categoriaHandler := categoria.NewHandler(store)
	siteHandler := site.NewHandler(store)
	consultorHandler := consultor.NewHandler(store, cfg.App.Origem)
	aquisicaoHandler := aquisicao.NewHandler(store, aquisicao.NovaMaquina(politica))
	faturamentoHandler := faturamento.NewHandler(registro, store, auth.ChaveSessao)

	// Router
	r := mux.NewRouter()
	r.Use(logger.Middleware(zl))

	r.HandleFunc("/healthz", syncHandler.Saude).Methods("GET")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Rotas públicas da vitrine
	r.HandleFunc("/vitrine/categorias", vitrineHandler.Categorias).Methods("GET")
	r.HandleFunc("/vitrine/sites", vitrineHandler.Sites).Methods("GET")
	r.HandleFunc("/vitrine/whatsapp", captacaoHandler.TestarWhatsApp).Methods("POST")
	r.HandleFunc("/vitrine/{consultorId}", vitrineHandler.Pagina).Methods("GET")
	r.HandleFunc("/vitrine/{consultorId}/formalizacao", captacaoHandler.Formalizar).Methods("POST")
	r.HandleFunc("/vitrine/{consultorId}/solicitacoes", captacaoHandler.Solicitar).Methods("POST")

	// Rotas do gerente
	g := r.NewRoute().Subrouter()
	g.Use(auth.Middleware(emissor))

	g.HandleFunc("/configuracoes/senha", authHandler.AtualizarSenha).Methods("PUT")
	g.HandleFunc("/sync/recarregar", syncHandler.Recarregar).Methods("POST")

	g.HandleFunc("/categorias", categoriaHandler.Listar).Methods("GET")
	g.HandleFunc("/categorias", categoriaHandler.Criar).Methods("POST")
	g.HandleFunc("/categorias/{id}", categoriaHandler.Atualizar).Methods("PUT")
	g.HandleFunc("/categorias/{id}", categoriaHandler.Deletar).Methods("DELETE")

	g.HandleFunc("/sites", siteHandler.Listar).Methods("GET")
	g.HandleFunc("/sites", siteHandler.Criar).Methods("POST")
	g.HandleFunc("/sites/{id}", siteHandler.Atualizar).Methods("PUT")
	g.HandleFunc("/sites/{id}", siteHandler.Deletar).Methods("DELETE")

	g.HandleFunc("/consultores", consultorHandler.Listar).Methods("GET")
	g.HandleFunc("/consultores", consultorHandler.Criar).Methods("POST")
	g.HandleFunc("/consultores/{id}", consultorHandler.Atualizar).Methods("PUT")
	g.HandleFunc("/consultores/{id}", consultorHandler.Deletar).Methods("DELETE")

	g.HandleFunc("/aquisicoes", aquisicaoHandler.Listar).Methods("GET")
	g.HandleFunc("/aquisicoes/{id}", aquisicaoHandler.BuscarPorID).Methods("GET")
	g.HandleFunc("/aquisicoes/{id}/status", aquisicaoHandler.AtualizarStatus).Methods("PATCH")
	g.HandleFunc("/aquisicoes/{id}/pagamento", aquisicaoHandler.AtualizarPagamento).Methods("PATCH")
	g.HandleFunc("/aquisicoes/{id}", aquisicaoHandler.Editar).Methods("PATCH")
	g.HandleFunc("/aquisicoes/{id}", aquisicaoHandler.Remover).Methods("DELETE")

	g.HandleFunc("/faturamento", faturamentoHandler.Resultado).Methods("GET")
	g.HandleFunc("/faturamento/pesquisar", faturamentoHandler.Pesquisar).Methods("POST")
	g.HandleFunc("/faturamento/pesquisa", faturamentoHandler.Limpar).Methods("DELETE")
	g.HandleFunc("/faturamento/proximo", faturamentoHandler.Proximo).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.CORSOrigens,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-ID"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Porta,
		Handler:      c.Handler(r),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		zl.Info("servidor rodando", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("erro no servidor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("erro ao encerrar servidor", zap.Error(err))
	}
}
