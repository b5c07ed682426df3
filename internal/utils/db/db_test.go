package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/config"
	"go.uber.org/zap"
)

type secretsFalso struct {
	valor  *string
	err    error
	pedido string
}

func (s *secretsFalso) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	s.pedido = aws.ToString(in.SecretId)
	if s.err != nil {
		return nil, s.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: s.valor}, nil
}

func TestLerCredenciais(t *testing.T) {
	ctx := context.Background()

	s := &secretsFalso{valor: aws.String(`{"username":"painel","password":"x1"}`)}
	cred, err := lerCredenciais(ctx, s, "prod/db")
	require.NoError(t, err)
	assert.Equal(t, Credentials{Username: "painel", Password: "x1"}, cred)
	assert.Equal(t, "prod/db", s.pedido)

	_, err = lerCredenciais(ctx, &secretsFalso{valor: aws.String("não é json")}, "x")
	assert.Error(t, err)

	_, err = lerCredenciais(ctx, &secretsFalso{valor: aws.String(`{"username":"a"}`)}, "x")
	assert.Error(t, err)

	_, err = lerCredenciais(ctx, &secretsFalso{}, "x")
	assert.Error(t, err)

	_, err = lerCredenciais(ctx, &secretsFalso{err: errors.New("negado")}, "x")
	assert.ErrorContains(t, err, "negado")
}

func TestGetDB_Sqlite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:       "sqlite",
		Caminho:      filepath.Join(t.TempDir(), "painel.db"),
		MaxOpenConns: 10,
		MaxIdleConns: 2,
		LogLevel:     "silent",
	}
	database, err := GetDB(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.NoError(t, sqlDB.Ping())
}

func TestGetDB_DriverDesconhecido(t *testing.T) {
	_, err := GetDB(context.Background(), &config.DatabaseConfig{Driver: "mysql"}, zap.NewNop())
	assert.Error(t, err)
}
