package action

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrMissingCredentials indica par de chaves incompleto.
var ErrMissingCredentials = errors.New("action: access key id and secret are required")

// Credentials é o par de chaves usado para assinar as requisições.
// O segredo nunca aparece em String nem nos logs.
type Credentials struct {
	AccessKeyID     string
	AccessKeySecret string
}

// Validate exige as duas chaves.
func (c Credentials) Validate() error {
	if c.AccessKeyID == "" || c.AccessKeySecret == "" {
		return ErrMissingCredentials
	}
	return nil
}

func (c Credentials) String() string {
	return "Credentials{AccessKeyID: " + c.AccessKeyID + ", AccessKeySecret: [REDACTED]}"
}

// MarshalZerologObject permite logar as credenciais com Object() sem vazar o segredo.
func (c Credentials) MarshalZerologObject(e *zerolog.Event) {
	e.Str("access_key_id", c.AccessKeyID).Str("access_key_secret", "[REDACTED]")
}
