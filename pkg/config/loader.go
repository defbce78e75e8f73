package config

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/fast-action-client/pkg/config/injector"
	"gopkg.in/yaml.v2"
)

// Load é a forma simplificada de carregar a configuração do cliente.
func Load(source string) (*ClientConfig, error) {
	return NewLoader().Load(context.Background(), source)
}

// S3Downloader é a interface mínima do S3 usada pelo Loader (permite Mocking).
type S3Downloader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader carrega a configuração de arquivo local ou S3, resolve as
// interpolações e valida o resultado.
type Loader struct {
	validator *ConfigValidator
	injector  *injector.Injector
}

// NewLoader cria um Loader com o validador e o injector padrão.
func NewLoader() *Loader {
	return &Loader{
		validator: NewValidator(),
		injector:  injector.New(),
	}
}

// WithInjector troca o injector (útil em testes).
func (l *Loader) WithInjector(inj *injector.Injector) *Loader {
	l.injector = inj
	return l
}

// Load detecta o esquema da fonte e carrega a configuração.
func (l *Loader) Load(ctx context.Context, source string) (*ClientConfig, error) {
	var rawData []byte
	var err error

	if strings.HasPrefix(source, "s3://") {
		cfg, cfgErr := awsconfig.LoadDefaultConfig(ctx)
		if cfgErr != nil {
			return nil, fmt.Errorf("falha ao carregar config AWS: %w", cfgErr)
		}
		rawData, err = l.loadFromS3Internal(ctx, s3.NewFromConfig(cfg), source)
	} else {
		rawData, err = l.loadFromFile(source)
	}

	if err != nil {
		return nil, fmt.Errorf("falha leitura config (%s): %w", source, err)
	}

	return l.Parse(ctx, rawData)
}

func (l *Loader) loadFromFile(path string) ([]byte, error) {
	// Suporta tanto "file://client.yaml" quanto apenas "client.yaml"
	return os.ReadFile(strings.TrimPrefix(path, "file://"))
}

func (l *Loader) loadFromS3Internal(ctx context.Context, client S3Downloader, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL S3 inválida: %w", err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// Parse converte o YAML, aplica as interpolações e valida.
func (l *Loader) Parse(ctx context.Context, data []byte) (*ClientConfig, error) {
	var cfg ClientConfig

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("YAML malformado: %w", err)
	}

	if l.injector != nil {
		if err := l.injector.Inject(ctx, &cfg); err != nil {
			return nil, fmt.Errorf("falha na injeção de variáveis: %w", err)
		}
	}

	if l.validator != nil {
		if err := l.validator.Validate(&cfg); err != nil {
			return nil, fmt.Errorf("validação da configuração falhou: %w", err)
		}
	}

	return &cfg, nil
}
