package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raywall/fast-action-client/pkg/action"
	"github.com/raywall/fast-action-client/pkg/descriptor"
	"github.com/raywall/fast-action-client/pkg/transport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, service, actionName string, params map[string]interface{}) (*action.Result, error) {
	args := m.Called(service, actionName, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*action.Result), args.Error(1)
}

func TestLambdaHandler_Handle(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		result     *action.Result
		err        error
		wantStatus int
		wantBody   string
		wantErr    bool
	}{
		{
			name:       "Sucesso",
			result:     &action.Result{StatusCode: 200, Body: []byte(`{"RequestId":"r1"}`)},
			wantStatus: 200,
			wantBody:   `{"RequestId":"r1"}`,
		},
		{
			name:       "Ação desconhecida",
			err:        &action.UnknownActionError{Service: "ecs", Action: "bogus"},
			wantStatus: 404,
			wantErr:    true,
		},
		{
			name:       "Serviço desconhecido",
			err:        descriptor.ErrNotFound,
			wantStatus: 404,
			wantErr:    true,
		},
		{
			name:       "Erro da API propaga o status",
			err:        &action.APIError{StatusCode: 403, Body: `{"Code":"Forbidden"}`},
			wantStatus: 403,
			wantBody:   `{"Code":"Forbidden"}`,
			wantErr:    true,
		},
		{
			name:       "Falha de transporte",
			err:        &transport.Error{URL: "https://x/", Err: errors.New("timeout")},
			wantStatus: 502,
			wantErr:    true,
		},
		{
			name:       "Erro interno",
			err:        errors.New("boom"),
			wantStatus: 500,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := new(MockInvoker)
			inv.On("Invoke", "ecs", "describe_regions", mock.Anything).Return(tt.result, tt.err)

			h := NewLambdaHandler(inv, time.Second, zerolog.Nop())
			resp, err := h.Handle(ctx, InvokeEvent{Service: "ecs", Action: "describe_regions"})
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.CorrelationID)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, string(resp.Body))
			}
			assert.Equal(t, tt.wantErr, resp.Error != "")
		})
	}

	t.Run("Evento incompleto", func(t *testing.T) {
		inv := new(MockInvoker)
		resp, err := NewLambdaHandler(inv, 0, zerolog.Nop()).Handle(ctx, InvokeEvent{Service: "ecs"})
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		inv.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Corpo não JSON vira string", func(t *testing.T) {
		inv := new(MockInvoker)
		inv.On("Invoke", "ecs", "describe_regions", mock.Anything).
			Return(&action.Result{StatusCode: 200, Body: []byte("<ok/>")}, nil)
		resp, err := NewLambdaHandler(inv, 0, zerolog.Nop()).Handle(ctx, InvokeEvent{Service: "ecs", Action: "describe_regions"})
		require.NoError(t, err)
		assert.Equal(t, `"<ok/>"`, string(resp.Body))
	})
}

func TestHTTPHandler(t *testing.T) {
	inv := new(MockInvoker)
	inv.On("Invoke", "ecs", "describe_instances", map[string]interface{}{"region_id": "cn-hangzhou", "page_size": float64(10)}).
		Return(&action.Result{StatusCode: 200, Body: []byte(`{"TotalCount":3}`)}, nil)
	inv.On("Invoke", "ecs", "describe_instances", map[string]interface{}{"region_id": "us-west-1"}).
		Return(&action.Result{StatusCode: 200, Body: []byte(`{"TotalCount":1}`)}, nil)
	inv.On("Invoke", "ecs", "bogus", mock.Anything).
		Return(nil, &action.UnknownActionError{Service: "ecs", Action: "bogus"})

	srv := httptest.NewServer(NewHTTPHandler(inv, zerolog.Nop()))
	defer srv.Close()

	decode := func(t *testing.T, resp *http.Response) InvokeResponse {
		defer resp.Body.Close()
		var out InvokeResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}

	t.Run("POST com corpo JSON", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, srv.URL+"/v1/ecs/describe_instances",
			strings.NewReader(`{"region_id":"cn-hangzhou","page_size":10}`))
		req.Header.Set(HeaderCorrelationID, "corr-123")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "corr-123", resp.Header.Get(HeaderCorrelationID))
		assert.NotEmpty(t, resp.Header.Get(HeaderLatency))
		out := decode(t, resp)
		assert.Equal(t, "corr-123", out.CorrelationID)
		assert.JSONEq(t, `{"TotalCount":3}`, string(out.Body))
	})

	t.Run("GET com query string", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/ecs/describe_instances?region_id=us-west-1")
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(HeaderCorrelationID))
		assert.JSONEq(t, `{"TotalCount":1}`, string(decode(t, resp).Body))
	})

	t.Run("Ação desconhecida", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/ecs/bogus")
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.NotEmpty(t, decode(t, resp).Error)
	})

	t.Run("JSON inválido", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/v1/ecs/describe_instances", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "Invalid JSON Body", decode(t, resp).Error)
	})

	t.Run("Health", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}
