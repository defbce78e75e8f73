package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMClient abstrai o SDK do Parameter Store (permite Mocking).
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SecretsClient abstrai o SDK do Secrets Manager (permite Mocking).
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Parameter lê um parâmetro (descriptografado) do Parameter Store.
func Parameter(ctx context.Context, region, path string) (string, error) {
	cfg, err := AWSConfig(ctx, region)
	if err != nil {
		return "", err
	}
	return GetParameter(ctx, ssm.NewFromConfig(cfg), path)
}

// GetParameter é a lógica pura de Parameter, testável via mock.
func GetParameter(ctx context.Context, client SSMClient, path string) (string, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter: %w", err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro %s sem valor", path)
	}
	return *out.Parameter.Value, nil
}

// Secret lê o valor textual de um segredo do Secrets Manager.
func Secret(ctx context.Context, region, secretID string) (string, error) {
	cfg, err := AWSConfig(ctx, region)
	if err != nil {
		return "", err
	}
	return GetSecret(ctx, secretsmanager.NewFromConfig(cfg), secretID)
}

// GetSecret é a lógica pura de Secret, testável via mock.
func GetSecret(ctx context.Context, client SecretsClient, secretID string) (string, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SecretsManager: %w", err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("segredo %s sem SecretString", secretID)
	}
	return *out.SecretString, nil
}
