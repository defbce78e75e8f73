package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// NewHTTPHandler expõe o cliente como gateway local:
//
//	POST /v1/{service}/{action}   corpo JSON com os parâmetros lógicos
//	GET  /v1/{service}/{action}   parâmetros na query string
//	GET  /health
func NewHTTPHandler(inv Invoker, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)
	r.HandleFunc("/v1/{service}/{action}", invokeHandler(inv)).Methods(http.MethodGet, http.MethodPost)

	return ObservabilityMiddleware(logger)(r)
}

func invokeHandler(inv Invoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		ev := InvokeEvent{Service: vars["service"], Action: vars["action"], Params: map[string]interface{}{}}

		if r.Method == http.MethodPost && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&ev.Params); err != nil {
				writeJSON(w, http.StatusBadRequest, InvokeResponse{StatusCode: http.StatusBadRequest, Error: "Invalid JSON Body"})
				return
			}
		}
		for k, v := range r.URL.Query() {
			if len(v) > 0 {
				ev.Params[k] = v[0]
			}
		}

		corrID, _ := r.Context().Value(ContextKeyCorrID).(string)
		status, body, err := run(r.Context(), inv, ev)
		resp := InvokeResponse{StatusCode: status, CorrelationID: corrID, Body: rawBody(body)}
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("invocação falhou")
			resp.Error = err.Error()
		}
		writeJSON(w, status, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	startTime   time.Time
	wroteHeader bool
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.Header().Set(HeaderLatency, fmt.Sprintf("%d", time.Since(rw.startTime).Milliseconds()))
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// ObservabilityMiddleware propaga o correlation id, mede a latência e loga
// cada requisição.
func ObservabilityMiddleware(base zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			corrID := r.Header.Get(HeaderCorrelationID)
			if corrID == "" {
				corrID = uuid.NewString()
			}
			w.Header().Set(HeaderCorrelationID, corrID)

			logger := base.With().Str("correlation_id", corrID).Logger()
			ctx := logger.WithContext(r.Context())
			ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

			wrapper := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK, startTime: start}
			next.ServeHTTP(wrapper, r.WithContext(ctx))

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapper.statusCode).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Msg("request completed")
		})
	}
}
