package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/raywall/fast-action-client/pkg/action"
	"github.com/raywall/fast-action-client/pkg/cloud"
	"github.com/raywall/fast-action-client/pkg/config"
	"github.com/raywall/fast-action-client/pkg/descriptor"
	"github.com/raywall/fast-action-client/pkg/handler"
	"github.com/raywall/fast-action-client/pkg/logger"
	"github.com/raywall/fast-action-client/pkg/metrics"
	"github.com/raywall/fast-action-client/pkg/observability"
	"github.com/raywall/fast-action-client/pkg/transport"
	"github.com/rs/zerolog"
)

// ClientEngine monta o cliente completo a partir da configuração: logger,
// métricas, fonte de descritores, registro e pool de dispatchers.
type ClientEngine struct {
	Config   *config.ClientConfig
	Logger   zerolog.Logger
	Metrics  metrics.Provider
	Registry *descriptor.Registry
	Client   *action.Client

	closers []io.Closer
}

// Option ajusta a montagem (usado em testes para trocar fonte e transporte).
type Option func(*options)

type options struct {
	source    descriptor.Source
	transport action.Transport
	metrics   metrics.Provider
}

// WithSource usa a fonte informada em vez de client.descriptors.
func WithSource(src descriptor.Source) Option {
	return func(o *options) { o.source = src }
}

// WithMetrics usa o provider informado em vez de montar um a partir de cfg.Metrics.
func WithMetrics(p metrics.Provider) Option {
	return func(o *options) { o.metrics = p }
}

// WithTransport usa o transporte informado em vez do HTTP padrão.
func WithTransport(t action.Transport) Option {
	return func(o *options) { o.transport = t }
}

func NewClientEngine(ctx context.Context, cfg *config.ClientConfig, opts ...Option) (*ClientEngine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.Configure(cfg.Logging)

	var err error
	metricProvider := o.metrics
	if metricProvider == nil {
		metricProvider, err = observability.SetupMetrics(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("falha métricas: %w", err)
		}
	}

	ce := &ClientEngine{Config: cfg, Logger: log, Metrics: metricProvider}
	if c, ok := metricProvider.(io.Closer); ok {
		ce.closers = append(ce.closers, c)
	}

	src := o.source
	if src == nil {
		src, err = descriptor.NewSource(ctx, cfg.Client.Descriptors)
		if err != nil {
			_ = ce.Close()
			return nil, fmt.Errorf("falha fonte de descritores: %w", err)
		}
	}
	if c, ok := src.(io.Closer); ok {
		ce.closers = append(ce.closers, c)
	}

	tr := o.transport
	if tr == nil {
		tr = transport.NewHTTPTransport(transport.Options{
			Timeout:            cfg.Client.GetTimeout(),
			InsecureSkipVerify: cfg.Client.InsecureSkipVerify,
		})
	}
	if cfg.Client.InsecureSkipVerify {
		log.Warn().Msg("verificação TLS desabilitada (insecure_skip_verify)")
	}

	ce.Registry = descriptor.NewRegistry(src)
	ce.Client = action.NewClient(ce.Registry, action.Credentials{
		AccessKeyID:     cfg.Credentials.AccessKeyID,
		AccessKeySecret: cfg.Credentials.AccessKeySecret,
	},
		action.WithTransport(tr),
		action.WithLogger(log),
		action.WithMetrics(metricProvider),
		action.WithDefaults(action.Defaults{
			Schema: cfg.Client.DefaultSchema,
			Format: cfg.Client.DefaultFormat,
		}),
	)

	log.Info().Str("descriptors", cfg.Client.Descriptors).Msg("cliente inicializado")
	return ce, nil
}

// Invoke executa service/action.
func (ce *ClientEngine) Invoke(ctx context.Context, service, actionName string, params map[string]interface{}) (*action.Result, error) {
	return ce.Client.Invoke(ctx, service, actionName, params)
}

// Reload descarta os descritores em cache.
func (ce *ClientEngine) Reload() error {
	ce.Logger.Info().Str("descriptors", ce.Config.Client.Descriptors).Msg("reload dos descritores")
	return ce.Client.Reload()
}

// StartReloader inicia, em background, a escuta da fila client.reload_queue.
// Sem fila configurada não faz nada.
func (ce *ClientEngine) StartReloader(ctx context.Context) error {
	queue := ce.Config.Client.ReloadQueue
	if queue == "" {
		return nil
	}
	awsCfg, err := cloud.AWSConfig(ctx, ce.Config.Client.Region)
	if err != nil {
		return err
	}
	go handler.NewSQSReloader(sqs.NewFromConfig(awsCfg), queue, ce, ce.Logger).Start(ctx)
	return nil
}

// Close libera métricas e conexões da fonte.
func (ce *ClientEngine) Close() error {
	var first error
	for _, c := range ce.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
