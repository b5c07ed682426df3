package notificacao

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// CanalPostgres escuta o LISTEN/NOTIFY alimentado pelos gatilhos das tabelas.
type CanalPostgres struct {
	dsn          string
	canal        string
	logger       *zap.Logger
	minReconexao time.Duration
	maxReconexao time.Duration
	ping         time.Duration
}

func NovoCanalPostgres(dsn, canal string, logger *zap.Logger) *CanalPostgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CanalPostgres{
		dsn:          dsn,
		canal:        canal,
		logger:       logger.Named("canal_postgres"),
		minReconexao: 2 * time.Second,
		maxReconexao: time.Minute,
		ping:         90 * time.Second,
	}
}

func (c *CanalPostgres) Assinar(ctx context.Context, fn func(Evento)) error {
	listener := pq.NewListener(c.dsn, c.minReconexao, c.maxReconexao, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventDisconnected:
			c.logger.Warn("listener desconectado", zap.Error(err))
		case pq.ListenerEventReconnected:
			c.logger.Info("listener reconectado")
		case pq.ListenerEventConnectionAttemptFailed:
			c.logger.Warn("falha ao reconectar listener", zap.Error(err))
		}
	})
	defer listener.Close()

	if err := listener.Listen(c.canal); err != nil {
		return fmt.Errorf("erro ao escutar %s: %w", c.canal, err)
	}
	c.logger.Info("assinatura ativa", zap.String("canal", c.canal))

	ping := time.NewTicker(c.ping)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-listener.Notify:
			// nil chega depois de uma reconexão: avisos podem ter se perdido
			if n == nil {
				fn(Evento{})
				continue
			}
			fn(decodificar(n.Extra))
		case <-ping.C:
			go func() {
				if err := listener.Ping(); err != nil {
					c.logger.Warn("ping do listener falhou", zap.Error(err))
				}
			}()
		}
	}
}
