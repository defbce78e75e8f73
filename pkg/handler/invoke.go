package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/raywall/fast-action-client/pkg/action"
	"github.com/raywall/fast-action-client/pkg/descriptor"
	"github.com/raywall/fast-action-client/pkg/transport"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
)

type ctxKey string

// ContextKeyCorrID guarda o correlation id no contexto da requisição.
const ContextKeyCorrID ctxKey = "correlation_id"

// Invoker é satisfeito por *action.Client.
type Invoker interface {
	Invoke(ctx context.Context, service, actionName string, params map[string]interface{}) (*action.Result, error)
}

// InvokeEvent é o payload de uma invocação.
type InvokeEvent struct {
	Service string                 `json:"service"`
	Action  string                 `json:"action"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// InvokeResponse é o resultado devolvido ao runtime.
type InvokeResponse struct {
	StatusCode    int             `json:"status_code"`
	CorrelationID string          `json:"correlation_id"`
	Body          json.RawMessage `json:"body,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// run executa o evento e classifica o resultado em status HTTP.
func run(ctx context.Context, inv Invoker, ev InvokeEvent) (int, []byte, error) {
	if ev.Service == "" || ev.Action == "" {
		return http.StatusBadRequest, nil, errors.New("service e action são obrigatórios")
	}

	res, err := inv.Invoke(ctx, ev.Service, ev.Action, ev.Params)
	if err == nil {
		return res.StatusCode, res.Body, nil
	}

	var apiErr *action.APIError
	var transportErr *transport.Error
	switch {
	case errors.Is(err, action.ErrUnknownAction), errors.Is(err, descriptor.ErrNotFound):
		return http.StatusNotFound, nil, err
	case errors.Is(err, descriptor.ErrInvalidName):
		return http.StatusBadRequest, nil, err
	case errors.As(err, &apiErr):
		return apiErr.StatusCode, []byte(apiErr.Body), err
	case errors.As(err, &transportErr):
		return http.StatusBadGateway, nil, err
	default:
		return http.StatusInternalServerError, nil, err
	}
}

// rawBody só repassa corpos JSON; outros formatos viram string JSON.
func rawBody(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(string(body))
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n"))
}
