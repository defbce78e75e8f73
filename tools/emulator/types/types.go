package types

// ParamMapping mapeia um parâmetro de wire da requisição para um campo dos dados
type ParamMapping struct {
	Name   string `json:"name"`
	MapsTo string `json:"maps_to"`
}

// Response para status e body
type Response struct {
	Status int         `json:"status"`
	Body   interface{} `json:"body,omitempty"`
}

// ErrorBody é o corpo de erro no formato da API de consulta.
type ErrorBody struct {
	Code      string `json:"Code"`
	Message   string `json:"Message"`
	RequestID string `json:"RequestId"`
	HostID    string `json:"HostId,omitempty"`
}
