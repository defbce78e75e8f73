// Package cloud concentra o acesso compartilhado aos serviços AWS usados pelo
// cliente: configuração única do SDK, Parameter Store e Secrets Manager.
package cloud

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

var (
	awsCfg  aws.Config
	awsOnce sync.Once
	awsErr  error
)

// AWSConfig carrega a configuração da AWS (env vars, profile, IAM role) uma
// única vez por processo. A região só é considerada na primeira chamada.
func AWSConfig(ctx context.Context, region string) (aws.Config, error) {
	awsOnce.Do(func() {
		opts := []func(*config.LoadOptions) error{}
		if region != "" {
			opts = append(opts, config.WithRegion(region))
		}
		awsCfg, awsErr = config.LoadDefaultConfig(ctx, opts...)
	})
	return awsCfg, awsErr
}
