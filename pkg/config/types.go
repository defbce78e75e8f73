package config

import "time"

// ClientConfig representa a estrutura raiz do arquivo YAML do cliente.
type ClientConfig struct {
	Version     string          `yaml:"version" validate:"required"`
	Client      ClientDetails   `yaml:"client" validate:"required"`
	Credentials CredentialsConf `yaml:"credentials" validate:"required"`
	Logging     LoggingConf     `yaml:"logging"`
	Metrics     MetricsConf     `yaml:"metrics"`
}

// ClientDetails contém a fonte de descritores e os defaults globais usados
// quando a definição do serviço não informa schema ou formato.
type ClientDetails struct {
	Descriptors        string `yaml:"descriptors" validate:"required"` // Ex: "file://./apis", "s3://bucket/apis"
	DefaultSchema      string `yaml:"default_schema" validate:"omitempty,oneof=http https"`
	DefaultFormat      string `yaml:"default_format"`
	Timeout            string `yaml:"timeout"` // Ex: "500ms", "10s"
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	ReloadQueue        string `yaml:"reload_queue"` // URL da fila SQS para hot reload dos descritores
	Region             string `yaml:"region" env:"AWS_REGION"`
}

// CredentialsConf guarda o par de chaves. Os valores normalmente chegam via
// interpolação (${env.X}, ${ssm./path}, ${secret.id}).
type CredentialsConf struct {
	AccessKeyID     string `yaml:"access_key_id" env:"ACCESS_KEY_ID" validate:"required"`
	AccessKeySecret string `yaml:"access_key_secret" env:"ACCESS_KEY_SECRET" validate:"required"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool     `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string   `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string   `yaml:"namespace"`
	Tags      []string `yaml:"tags"`
}

// GetTimeout interpreta o timeout configurado, com 30s como fallback.
func (c ClientDetails) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
