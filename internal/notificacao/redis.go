package notificacao

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CanalRedis usa Pub/Sub do Redis para espalhar as mudanças entre várias
// instâncias da API. Publica e assina no mesmo canal.
type CanalRedis struct {
	client *redis.Client
	canal  string
	logger *zap.Logger
}

func NovoCanalRedis(client *redis.Client, canal string, logger *zap.Logger) *CanalRedis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CanalRedis{client: client, canal: canal, logger: logger.Named("canal_redis")}
}

func (c *CanalRedis) Publicar(ctx context.Context, ev Evento) error {
	data, err := codificar(ev)
	if err != nil {
		return err
	}
	if err := c.client.Publish(ctx, c.canal, data).Err(); err != nil {
		return fmt.Errorf("erro ao publicar no redis: %w", err)
	}
	return nil
}

func (c *CanalRedis) Assinar(ctx context.Context, fn func(Evento)) error {
	pubsub := c.client.Subscribe(ctx, c.canal)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("erro ao assinar o canal %s: %w", c.canal, err)
	}
	c.logger.Info("assinatura ativa", zap.String("canal", c.canal))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("canal %s fechado", c.canal)
			}
			fn(decodificar(msg.Payload))
		}
	}
}
