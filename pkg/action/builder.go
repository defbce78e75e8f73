package action

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raywall/fast-action-client/pkg/descriptor"
	"github.com/raywall/fast-action-client/pkg/signature"
)

// Campos padrão do envelope.
const (
	FieldFormat           = "Format"
	FieldVersion          = "Version"
	FieldAction           = "Action"
	FieldAccessKeyID      = "AccessKeyId"
	FieldTimestamp        = "Timestamp"
	FieldSignatureMethod  = "SignatureMethod"
	FieldSignatureVersion = "SignatureVersion"
	FieldSignatureNonce   = "SignatureNonce"

	// TimestampLayout é o ISO-8601 em UTC com precisão de segundos.
	TimestampLayout = "2006-01-02T15:04:05Z"

	DefaultSchema = "https"
	DefaultFormat = "JSON"
)

// Defaults são os valores globais usados quando o serviço não define schema
// ou formato.
type Defaults struct {
	Schema string
	Format string
}

// Envelope é o conjunto final de parâmetros de wire de uma requisição.
type Envelope map[string]string

// Encode gera a query string canônica (chaves ordenadas, codificação RFC 3986).
func (e Envelope) Encode() string {
	return signature.CanonicalQuery(e)
}

// URL monta a URI completa a partir da base "schema://host".
func (e Envelope) URL(base string) string {
	return strings.TrimRight(base, "/") + signature.CanonicalPath + "?" + e.Encode()
}

// Clone devolve uma cópia independente.
func (e Envelope) Clone() Envelope {
	out := make(Envelope, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Signed informa se o envelope já carrega assinatura.
func (e Envelope) Signed() bool {
	return e[signature.SignatureKey] != ""
}

// Builder monta e assina envelopes. Clock e Nonce são injetáveis para testes.
type Builder struct {
	Method signature.Method
	Clock  func() time.Time
	Nonce  func() string
}

// NewBuilder cria um Builder com relógio real e nonce UUID v4.
func NewBuilder(m signature.Method) *Builder {
	return &Builder{Method: m, Clock: time.Now, Nonce: uuid.NewString}
}

// Build combina os parâmetros de wire com os campos padrão e assina.
// Os campos padrão sobrescrevem parâmetros de wire homônimos; a assinatura é
// sempre calculada por último sobre todos os outros campos.
func (b *Builder) Build(def *descriptor.ActionDefinition, wire map[string]string, svc *descriptor.ServiceDefinition, creds Credentials, defaults Defaults) (Envelope, error) {
	if b.Method == nil {
		return nil, fmt.Errorf("action: builder sem método de assinatura")
	}
	if def == nil || svc == nil {
		return nil, fmt.Errorf("action: definição de ação e serviço são obrigatórias")
	}

	clock := b.Clock
	if clock == nil {
		clock = time.Now
	}
	nonce := b.Nonce
	if nonce == nil {
		nonce = uuid.NewString
	}

	env := make(Envelope, len(wire)+9)
	for k, v := range wire {
		env[k] = v
	}
	delete(env, signature.SignatureKey)

	env[FieldFormat] = resolveFormat(svc, defaults)
	env[FieldVersion] = svc.Version
	env[FieldAction] = def.Action
	env[FieldAccessKeyID] = creds.AccessKeyID
	env[FieldTimestamp] = clock().UTC().Format(TimestampLayout)
	env[FieldSignatureMethod] = b.Method.Name()
	env[FieldSignatureVersion] = b.Method.Version()
	env[FieldSignatureNonce] = nonce()

	sig, err := b.Method.Generate(env, signature.Context{
		HTTPMethod:      http.MethodGet,
		AccessKeySecret: creds.AccessKeySecret,
	})
	if err != nil {
		return nil, fmt.Errorf("action: falha ao assinar: %w", err)
	}
	env[signature.SignatureKey] = sig
	return env, nil
}

func resolveSchema(svc *descriptor.ServiceDefinition, defaults Defaults) string {
	if svc.Schema != "" {
		return svc.Schema
	}
	if defaults.Schema != "" {
		return defaults.Schema
	}
	return DefaultSchema
}

func resolveFormat(svc *descriptor.ServiceDefinition, defaults Defaults) string {
	if svc.Format != "" {
		return svc.Format
	}
	if defaults.Format != "" {
		return defaults.Format
	}
	return DefaultFormat
}
