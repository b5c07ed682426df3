// Package config carrega a configuração do painel a partir de config.toml,
// .env e variáveis de ambiente com prefixo PAINEL_.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Log         LogConfig
	Sync        SyncConfig
	Aquisicao   AquisicaoConfig
	Busca       BuscaConfig
	Localizacao LocalizacaoConfig
	Webhook     WebhookConfig
	Senha       SenhaConfig
	Faturamento FaturamentoConfig
	HTTP        HTTPConfig
}

type AppConfig struct {
	Env    string
	Porta  string
	Origem string // usada nos links públicos de consultor
}

type DatabaseConfig struct {
	Driver          string // postgres | sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SecretID        string // AWS Secrets Manager; usado quando user/password estão vazios
	Caminho         string // arquivo sqlite
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Segredo   string
	Expiracao time.Duration
	Emissor   string
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type SyncConfig struct {
	Estrategia       string // completa | incremental
	Canal            string // postgres | redis | memoria
	CanalNome        string
	RecargaPeriodica string // expressão cron; vazio desliga
}

type AquisicaoConfig struct {
	PoliticaStatus string // livre | sequencial
}

type BuscaConfig struct {
	GeminiAPIKey string
	Modelo       string
	Debounce     time.Duration
}

type LocalizacaoConfig struct {
	Timeout time.Duration
}

type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

type SenhaConfig struct {
	Padrao string
}

type FaturamentoConfig struct {
	SessaoTTL time.Duration
	Expurgo   string // expressão cron
}

type HTTPConfig struct {
	CORSOrigens  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load lê a configuração. Prioridade: variáveis PAINEL_*, config.toml, padrões.
// Um .env no diretório atual é carregado antes, sem sobrescrever o ambiente.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler config.toml: %w", err)
		}
	}

	v.SetEnvPrefix("PAINEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:    v.GetString("app.env"),
			Porta:  v.GetString("app.porta"),
			Origem: v.GetString("app.origem"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			SecretID:        v.GetString("database.secret_id"),
			Caminho:         v.GetString("database.caminho"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			LogLevel:        v.GetString("database.log_level"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Segredo:   v.GetString("jwt.segredo"),
			Expiracao: v.GetDuration("jwt.expiracao"),
			Emissor:   v.GetString("jwt.emissor"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Sync: SyncConfig{
			Estrategia:       v.GetString("sync.estrategia"),
			Canal:            v.GetString("sync.canal"),
			CanalNome:        v.GetString("sync.canal_nome"),
			RecargaPeriodica: v.GetString("sync.recarga_periodica"),
		},
		Aquisicao: AquisicaoConfig{
			PoliticaStatus: v.GetString("aquisicao.politica_status"),
		},
		Busca: BuscaConfig{
			GeminiAPIKey: v.GetString("busca.gemini_api_key"),
			Modelo:       v.GetString("busca.modelo"),
			Debounce:     v.GetDuration("busca.debounce"),
		},
		Localizacao: LocalizacaoConfig{
			Timeout: v.GetDuration("localizacao.timeout"),
		},
		Webhook: WebhookConfig{
			URL:     v.GetString("webhook.url"),
			Timeout: v.GetDuration("webhook.timeout"),
		},
		Senha: SenhaConfig{
			Padrao: v.GetString("senha.padrao"),
		},
		Faturamento: FaturamentoConfig{
			SessaoTTL: v.GetDuration("faturamento.sessao_ttl"),
			Expurgo:   v.GetString("faturamento.expurgo"),
		},
		HTTP: HTTPConfig{
			CORSOrigens:  v.GetStringSlice("http.cors_origens"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Porta == "" {
		cfg.App.Porta = "8080"
	}
	if cfg.App.Origem == "" {
		cfg.App.Origem = "http://localhost:" + cfg.App.Porta
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "painel"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Caminho == "" {
		cfg.Database.Caminho = "painel.db"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "error"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.Expiracao == 0 {
		cfg.JWT.Expiracao = 12 * time.Hour
	}
	if cfg.JWT.Emissor == "" {
		cfg.JWT.Emissor = "painel-aquisicoes"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Sync.Estrategia == "" {
		cfg.Sync.Estrategia = "completa"
	}
	if cfg.Sync.Canal == "" {
		cfg.Sync.Canal = "postgres"
	}
	if cfg.Sync.CanalNome == "" {
		cfg.Sync.CanalNome = "painel_mudancas"
	}
	if cfg.Aquisicao.PoliticaStatus == "" {
		cfg.Aquisicao.PoliticaStatus = "livre"
	}
	if cfg.Busca.Modelo == "" {
		cfg.Busca.Modelo = "gemini-3-flash-preview"
	}
	if cfg.Busca.Debounce == 0 {
		cfg.Busca.Debounce = 500 * time.Millisecond
	}
	if cfg.Localizacao.Timeout == 0 {
		cfg.Localizacao.Timeout = 10 * time.Second
	}
	if cfg.Webhook.Timeout == 0 {
		cfg.Webhook.Timeout = 5 * time.Second
	}
	if cfg.Senha.Padrao == "" {
		cfg.Senha.Padrao = "ehbc7890"
	}
	if cfg.Faturamento.SessaoTTL == 0 {
		cfg.Faturamento.SessaoTTL = 2 * time.Hour
	}
	if cfg.Faturamento.Expurgo == "" {
		cfg.Faturamento.Expurgo = "@every 10m"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver inválido: %q (use postgres ou sqlite)", c.Database.Driver)
	}
	switch c.Sync.Estrategia {
	case "completa", "incremental":
	default:
		return fmt.Errorf("sync.estrategia inválida: %q", c.Sync.Estrategia)
	}
	switch c.Sync.Canal {
	case "postgres", "redis", "memoria":
	default:
		return fmt.Errorf("sync.canal inválido: %q", c.Sync.Canal)
	}
	if c.Sync.Canal == "postgres" && c.Database.Driver != "postgres" {
		return fmt.Errorf("sync.canal=postgres exige database.driver=postgres")
	}
	switch c.Aquisicao.PoliticaStatus {
	case "livre", "sequencial":
	default:
		return fmt.Errorf("aquisicao.politica_status inválida: %q", c.Aquisicao.PoliticaStatus)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) não pode exceder database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.App.Env == "production" {
		if len(c.JWT.Segredo) < 32 {
			return fmt.Errorf("jwt.segredo precisa de ao menos 32 caracteres em produção")
		}
		if c.Database.Driver == "postgres" && c.Database.Password == "" && c.Database.SecretID == "" {
			return fmt.Errorf("database.password ou database.secret_id é obrigatório em produção")
		}
		for _, origem := range c.HTTP.CORSOrigens {
			if origem == "*" {
				return fmt.Errorf("http.cors_origens não pode ser '*' em produção")
			}
		}
	}
	return nil
}

// DSN monta a URL de conexão do Postgres com os valores escapados.
// Serve tanto para o driver do GORM quanto para o listener do lib/pq.
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr devolve host:porta do Redis.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
