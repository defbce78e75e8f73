package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LambdaHandler adapta invocações diretas da Lambda para o cliente.
type LambdaHandler struct {
	invoker Invoker
	timeout time.Duration
	logger  zerolog.Logger
}

// NewLambdaHandler cria o adaptador. timeout <= 0 usa apenas o deadline da Lambda.
func NewLambdaHandler(inv Invoker, timeout time.Duration, logger zerolog.Logger) *LambdaHandler {
	return &LambdaHandler{invoker: inv, timeout: timeout, logger: logger}
}

// Handle processa um InvokeEvent. Erros da ação vão no InvokeResponse; o
// erro retornado fica reservado para falhas do próprio runtime.
func (h *LambdaHandler) Handle(ctx context.Context, ev InvokeEvent) (InvokeResponse, error) {
	start := time.Now()
	corrID := uuid.NewString()

	logger := h.logger.With().Str("correlation_id", corrID).Logger()
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	status, body, err := run(ctx, h.invoker, ev)
	resp := InvokeResponse{
		StatusCode:    status,
		CorrelationID: corrID,
		Body:          rawBody(body),
	}
	if err != nil {
		resp.Error = err.Error()
	}

	logger.Info().
		Str("service", ev.Service).
		Str("action", ev.Action).
		Int("status", status).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("lambda invocation completed")

	return resp, nil
}
