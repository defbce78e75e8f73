package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por Prometheus ou Logging sem alterar o dispatcher.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// Nomes das métricas emitidas pelo dispatcher.
const (
	ActionInvoke  = "action.invoke"
	ActionLatency = "action.latency_ms"
)

// Outcome classifica o resultado de uma invocação para a tag "outcome".
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeAPIError  Outcome = "api_error"
	OutcomeTransport Outcome = "transport_error"
	OutcomeUnknown   Outcome = "unknown_action"
	OutcomeInternal  Outcome = "internal_error"
)

// Tags monta as tags padrão de uma invocação.
func Tags(service, action string, outcome Outcome) []string {
	return []string{
		"service:" + service,
		"action:" + action,
		"outcome:" + string(outcome),
	}
}
