package db

import (
	"context"
	"fmt"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/config"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// GetDB abre a conexão conforme database.driver. No Postgres, credenciais
// vazias são buscadas no Secrets Manager quando há secret_id.
// A config recebida é atualizada com as credenciais resolvidas, para que o
// listener de notificações use o mesmo DSN.
func GetDB(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.LogLevel)),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Caminho)
	case "postgres":
		if (cfg.User == "" || cfg.Password == "") && cfg.SecretID != "" {
			cred, err := retrieveCredentials(ctx, cfg.SecretID)
			if err != nil {
				return nil, err
			}
			cfg.User, cfg.Password = cred.Username, cred.Password
		}
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %q", cfg.Driver)
	}

	database, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar no banco: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	maxOpen := cfg.MaxOpenConns
	if cfg.Driver == "sqlite" {
		// sqlite serializa escritas
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(min(cfg.MaxIdleConns, maxOpen))
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info("banco conectado", zap.String("driver", cfg.Driver))
	return database, nil
}
