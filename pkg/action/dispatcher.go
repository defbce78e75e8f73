package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raywall/fast-action-client/pkg/descriptor"
	"github.com/raywall/fast-action-client/pkg/logger"
	"github.com/raywall/fast-action-client/pkg/metrics"
	"github.com/raywall/fast-action-client/pkg/observability"
	"github.com/raywall/fast-action-client/pkg/signature"
	"github.com/raywall/fast-action-client/pkg/transport"
	"github.com/rs/zerolog"
)

// Transport é a fronteira de rede usada pelo Dispatcher.
type Transport interface {
	Get(ctx context.Context, url string) (*transport.Response, error)
}

// Result é a resposta 2xx de uma invocação. Data só é preenchido quando o
// formato é JSON e o corpo decodifica; pode ser objeto, lista ou escalar.
type Result struct {
	StatusCode int
	Body       []byte
	Data       interface{}
}

// Option configura o Dispatcher.
type Option func(*Dispatcher)

// WithTransport troca o transporte HTTP padrão.
func WithTransport(t Transport) Option {
	return func(d *Dispatcher) { d.transport = t }
}

// WithLogger define o logger (default: desabilitado).
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithMetrics define o provider de métricas (default: noop).
func WithMetrics(p metrics.Provider) Option {
	return func(d *Dispatcher) { d.metrics = p }
}

// WithDefaults define schema e formato globais.
func WithDefaults(defaults Defaults) Option {
	return func(d *Dispatcher) { d.defaults = defaults }
}

// WithClock injeta o relógio usado no Timestamp.
func WithClock(clock func() time.Time) Option {
	return func(d *Dispatcher) { d.builder.Clock = clock }
}

// WithNonce injeta o gerador de SignatureNonce.
func WithNonce(nonce func() string) Option {
	return func(d *Dispatcher) { d.builder.Nonce = nonce }
}

// Dispatcher é o cliente de um serviço. A tabela de ações é fixada na
// construção; Invoke é seguro para uso concorrente.
type Dispatcher struct {
	name      string
	service   *descriptor.ServiceDefinition
	actions   map[string]*descriptor.ActionDefinition
	creds     Credentials
	defaults  Defaults
	builder   *Builder
	transport Transport
	metrics   metrics.Provider
	log       zerolog.Logger
}

// NewDispatcher resolve o serviço no registro e prepara o cliente.
// Método de assinatura vazio no descritor vale HMAC-SHA1.
func NewDispatcher(ctx context.Context, name string, registry *descriptor.Registry, creds Credentials, opts ...Option) (*Dispatcher, error) {
	if registry == nil {
		return nil, fmt.Errorf("action: registry é obrigatório")
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	svc, actions, err := registry.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	methodName := svc.SignatureMethod
	if methodName == "" {
		methodName = signature.HMACSHA1Name
	}
	method, err := signature.Lookup(methodName)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		name:      name,
		service:   svc,
		actions:   actions,
		creds:     creds,
		builder:   NewBuilder(method),
		transport: transport.NewHTTPTransport(transport.Options{}),
		metrics:   &observability.NoopProvider{},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = logger.ForService(d.log, name)
	d.log.Debug().
		Object("credentials", creds).
		Str("signature_method", methodName).
		Int("actions", len(actions)).
		Msg("dispatcher pronto")

	return d, nil
}

// Invoke executa a ação informada. params pode ser nil.
func (d *Dispatcher) Invoke(ctx context.Context, actionName string, params map[string]interface{}) (*Result, error) {
	start := time.Now()

	def, ok := d.actions[actionName]
	if !ok {
		d.record(actionName, metrics.OutcomeUnknown, start)
		return nil, &UnknownActionError{Service: d.name, Action: actionName}
	}

	log := d.log.With().Str("action", actionName).Logger()
	log.Debug().Interface("params", params).Msg("parâmetros lógicos")

	wire := MapParameters(def, params)
	log.Debug().Interface("wire", wire).Msg("parâmetros mapeados")

	env, err := d.builder.Build(def, wire, d.service, d.creds, d.defaults)
	if err != nil {
		d.record(actionName, metrics.OutcomeInternal, start)
		return nil, err
	}

	uri := env.URL(d.BaseURL())
	log.Debug().Str("uri", uri).Msg("requisição assinada")

	resp, err := d.transport.Get(ctx, uri)
	if err != nil {
		log.Error().Err(err).Msg("falha de transporte")
		d.record(actionName, metrics.OutcomeTransport, start)
		return nil, err
	}

	if !resp.Success() {
		apiErr := newAPIError(resp.StatusCode, resp.Body)
		log.Warn().Int("status", resp.StatusCode).Str("code", apiErr.Code).Msg("erro da API")
		d.record(actionName, metrics.OutcomeAPIError, start)
		return nil, apiErr
	}

	result := &Result{StatusCode: resp.StatusCode, Body: resp.Body}
	if strings.EqualFold(d.Format(), DefaultFormat) {
		var data interface{}
		if err := json.Unmarshal(resp.Body, &data); err == nil {
			result.Data = data
		} else {
			log.Debug().Err(err).Msg("corpo não é JSON; mantido bruto")
		}
	}

	log.Debug().Int("status", resp.StatusCode).Msg("ação concluída")
	d.record(actionName, metrics.OutcomeSuccess, start)
	return result, nil
}

func (d *Dispatcher) record(actionName string, outcome metrics.Outcome, start time.Time) {
	tags := metrics.Tags(d.name, actionName, outcome)
	if err := d.metrics.Count(metrics.ActionInvoke, 1, tags); err != nil {
		d.log.Debug().Err(err).Str("metric", metrics.ActionInvoke).Msg("falha ao emitir métrica")
	}
	if err := d.metrics.Histogram(metrics.ActionLatency, float64(time.Since(start).Milliseconds()), tags); err != nil {
		d.log.Debug().Err(err).Str("metric", metrics.ActionLatency).Msg("falha ao emitir métrica")
	}
}

// SupportsAction informa se a ação está declarada.
func (d *Dispatcher) SupportsAction(name string) bool {
	_, ok := d.actions[name]
	return ok
}

// Actions lista as ações declaradas em ordem alfabética.
func (d *Dispatcher) Actions() []string {
	return descriptor.ActionNames(d.actions)
}

func (d *Dispatcher) Name() string { return d.name }

// Schema resolve serviço -> default global -> https.
func (d *Dispatcher) Schema() string { return resolveSchema(d.service, d.defaults) }

// Format resolve serviço -> default global -> JSON.
func (d *Dispatcher) Format() string { return resolveFormat(d.service, d.defaults) }

func (d *Dispatcher) APIVersion() string { return d.service.Version }

func (d *Dispatcher) Secure() bool { return d.Schema() == "https" }

// BaseURL devolve "schema://host".
func (d *Dispatcher) BaseURL() string {
	return d.Schema() + "://" + d.service.Host
}

// IsUnknownAction é um atalho para errors.Is(err, ErrUnknownAction).
func IsUnknownAction(err error) bool {
	return errors.Is(err, ErrUnknownAction)
}
