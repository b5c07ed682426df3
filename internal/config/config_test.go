package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("aplica os padrões sem variáveis de ambiente", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Porta)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "completa", cfg.Sync.Estrategia)
		assert.Equal(t, "painel_mudancas", cfg.Sync.CanalNome)
		assert.Equal(t, "livre", cfg.Aquisicao.PoliticaStatus)
		assert.Equal(t, 500*time.Millisecond, cfg.Busca.Debounce)
		assert.Equal(t, 10*time.Second, cfg.Localizacao.Timeout)
		assert.Equal(t, "ehbc7890", cfg.Senha.Padrao)
	})

	t.Run("lê variáveis com prefixo PAINEL", func(t *testing.T) {
		t.Setenv("PAINEL_APP_PORTA", "9000")
		t.Setenv("PAINEL_DATABASE_DRIVER", "sqlite")
		t.Setenv("PAINEL_DATABASE_CAMINHO", ":memory:")
		t.Setenv("PAINEL_SYNC_CANAL", "memoria")
		t.Setenv("PAINEL_SYNC_ESTRATEGIA", "incremental")
		t.Setenv("PAINEL_AQUISICAO_POLITICA_STATUS", "sequencial")
		t.Setenv("PAINEL_BUSCA_DEBOUNCE", "250ms")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Porta)
		assert.Equal(t, "http://localhost:9000", cfg.App.Origem)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, ":memory:", cfg.Database.Caminho)
		assert.Equal(t, "incremental", cfg.Sync.Estrategia)
		assert.Equal(t, "sequencial", cfg.Aquisicao.PoliticaStatus)
		assert.Equal(t, 250*time.Millisecond, cfg.Busca.Debounce)
	})

	t.Run("canal postgres exige driver postgres", func(t *testing.T) {
		t.Setenv("PAINEL_DATABASE_DRIVER", "sqlite")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("produção exige segredo JWT longo", func(t *testing.T) {
		t.Setenv("PAINEL_APP_ENV", "production")
		t.Setenv("PAINEL_JWT_SEGREDO", "curto")
		t.Setenv("PAINEL_DATABASE_PASSWORD", "x")

		_, err := Load()
		assert.ErrorContains(t, err, "jwt.segredo")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "painel", Password: "p@ss word", DBName: "painel", SSLMode: "require"}
	assert.Equal(t, "postgres://painel:p%40ss%20word@db:5432/painel?sslmode=require", d.DSN())
}
