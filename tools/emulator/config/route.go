package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/raywall/fast-action-client/pkg/signature"
	"github.com/raywall/fast-action-client/tools/emulator/types"
	"github.com/rs/zerolog/log"
)

// Campos que toda requisição assinada precisa carregar.
var requiredFields = []string{
	"Format", "Version", "Action", "AccessKeyId", "Timestamp",
	"SignatureMethod", "SignatureVersion", "SignatureNonce", signature.SignatureKey,
}

// ActionConfig define a resposta de uma ação.
type ActionConfig struct {
	Action            string               `json:"action"`
	Required          []string             `json:"required,omitempty"` // parâmetros de wire obrigatórios
	Response          *types.Response      `json:"response,omitempty"` // Para respostas estáticas
	Data              []interface{}        `json:"data,omitempty"`     // Para dados dinâmicos
	Filters           []types.ParamMapping `json:"filters,omitempty"`
	ResponseOnMatch   *types.Response      `json:"response_on_match,omitempty"`
	ResponseOnNoMatch *types.Response      `json:"response_on_no_match,omitempty"`
}

func (s *ServerConfig) findAction(name string) (*ActionConfig, bool) {
	for i := range s.Actions {
		if s.Actions[i].Action == name {
			return &s.Actions[i], true
		}
	}
	return nil, false
}

// NewHandler valida envelope e assinatura antes de responder a ação.
func (s *ServerConfig) NewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()

		params := make(map[string]string)
		for k, v := range r.URL.Query() {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}

		for _, f := range requiredFields {
			if params[f] == "" {
				sendError(w, http.StatusBadRequest, "MissingParameter", fmt.Sprintf("The input parameter %q that is mandatory for processing this request is not supplied.", f), requestID)
				return
			}
		}

		if s.AccessKeyID != "" && params["AccessKeyId"] != s.AccessKeyID {
			sendError(w, http.StatusNotFound, "InvalidAccessKeyId.NotFound", "Specified access key is not found.", requestID)
			return
		}

		method, err := signature.Lookup(params["SignatureMethod"])
		if err != nil {
			sendError(w, http.StatusBadRequest, "InvalidSignatureMethod", err.Error(), requestID)
			return
		}
		ok, err := signature.Verify(method, params, signature.Context{HTTPMethod: r.Method, AccessKeySecret: s.AccessKeySecret})
		if err != nil || !ok {
			sendError(w, http.StatusBadRequest, "SignatureDoesNotMatch", "Specified signature is not matched with our calculation.", requestID)
			return
		}

		if s.Version != "" && params["Version"] != s.Version {
			sendError(w, http.StatusBadRequest, "InvalidVersion", fmt.Sprintf("Specified version %s is not valid.", params["Version"]), requestID)
			return
		}

		act, found := s.findAction(params["Action"])
		if !found {
			sendError(w, http.StatusNotFound, "InvalidAction.NotFound", fmt.Sprintf("Specified api %s is not found, please check your url and method.", params["Action"]), requestID)
			return
		}

		for _, p := range act.Required {
			if params[p] == "" {
				sendError(w, http.StatusBadRequest, "MissingParameter", fmt.Sprintf("The input parameter %q that is mandatory for processing this request is not supplied.", p), requestID)
				return
			}
		}

		log.Debug().Str("action", act.Action).Str("request_id", requestID).Msg("ação emulada")
		status, body := act.respond(params)
		sendResponse(w, status, withRequestID(body, requestID))
	}
}

func (a *ActionConfig) respond(params map[string]string) (int, interface{}) {
	// Resposta estática (sem data/filtros)
	if a.Response != nil && len(a.Data) == 0 && len(a.Filters) == 0 {
		return a.Response.Status, a.Response.Body
	}

	filter := make(map[string]string)
	for _, p := range a.Filters {
		if value := params[p.Name]; value != "" {
			filter[p.MapsTo] = value
		}
	}

	var matches []interface{}
	for _, item := range a.Data {
		itemMap, ok := item.(map[string]interface{})
		if !ok {
			continue // Skip se não for map
		}
		match := true
		for field, value := range filter {
			itemValue, exists := itemMap[field]
			if !exists || !valuesMatch(itemValue, value) {
				match = false
				break
			}
		}
		if match {
			matches = append(matches, item)
		}
	}

	if len(matches) == 0 {
		resp := a.ResponseOnNoMatch
		if resp == nil {
			resp = &types.Response{Status: 404, Body: map[string]interface{}{"Code": "ResourceNotFound", "Message": "Not found"}}
		}
		return resp.Status, resp.Body
	}

	resp := a.ResponseOnMatch
	if resp == nil {
		resp = &types.Response{Status: 200}
	}
	return resp.Status, map[string]interface{}{"Items": matches, "TotalCount": len(matches)}
}

func withRequestID(body interface{}, requestID string) interface{} {
	m, ok := body.(map[string]interface{})
	if !ok {
		return body
	}
	if _, exists := m["RequestId"]; exists {
		return m
	}
	out := make(map[string]interface{}, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out["RequestId"] = requestID
	return out
}

func sendError(w http.ResponseWriter, status int, code, message, requestID string) {
	sendResponse(w, status, types.ErrorBody{Code: code, Message: message, RequestID: requestID, HostID: "emulator"})
}

func sendResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error().Err(err).Msg("erro ao encode response")
		}
	}
}

func valuesMatch(a interface{}, b string) bool {
	switch v := a.(type) {
	case string:
		return v == b
	case float64:
		f, err := strconv.ParseFloat(b, 64)
		return err == nil && v == f
	case int:
		i, err := strconv.Atoi(b)
		return err == nil && v == i
	case bool:
		return strings.ToLower(b) == fmt.Sprintf("%v", v)
	default:
		return false
	}
}
