package action

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAction permite errors.Is sobre UnknownActionError.
var ErrUnknownAction = errors.New("action: unknown action")

// UnknownActionError indica ação não declarada para o serviço. Nenhuma
// requisição é enviada nesse caso.
type UnknownActionError struct {
	Service string
	Action  string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("action: %q não é uma ação do serviço %q", e.Action, e.Service)
}

func (e *UnknownActionError) Is(target error) bool {
	return target == ErrUnknownAction
}

// APIError é uma resposta não-2xx do serviço remoto. Code, Message e
// RequestID são preenchidos quando o corpo é um erro JSON no formato da API.
type APIError struct {
	StatusCode int
	Body       string
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Response code: %d, message: %s", e.StatusCode, e.Body)
}

type apiErrorBody struct {
	Code      string `json:"Code"`
	Message   string `json:"Message"`
	RequestID string `json:"RequestId"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: string(body)}

	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Code = parsed.Code
		apiErr.Message = parsed.Message
		apiErr.RequestID = parsed.RequestID
	}
	return apiErr
}
