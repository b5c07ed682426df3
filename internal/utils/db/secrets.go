package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SecretGetter é o trecho do cliente do Secrets Manager usado aqui.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func retrieveCredentials(ctx context.Context, secretID string) (Credentials, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return Credentials{}, fmt.Errorf("erro ao carregar config AWS: %w", err)
	}
	return lerCredenciais(ctx, secretsmanager.NewFromConfig(awsCfg), secretID)
}

func lerCredenciais(ctx context.Context, client SecretGetter, secretID string) (Credentials, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	}
	result, err := client.GetSecretValue(ctx, input)
	if err != nil {
		return Credentials{}, fmt.Errorf("erro ao ler secret %s: %w", secretID, err)
	}
	if result.SecretString == nil {
		return Credentials{}, fmt.Errorf("secret %s sem SecretString", secretID)
	}

	var secret Credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return Credentials{}, fmt.Errorf("secret %s em formato inválido: %w", secretID, err)
	}
	if secret.Username == "" || secret.Password == "" {
		return Credentials{}, fmt.Errorf("secret %s sem username/password", secretID)
	}
	return secret, nil
}
