package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

const (
	HMACSHA1Name    = "HMAC-SHA1"
	HMACSHA1Version = "1.0"
)

// HMACSHA1 é o método de assinatura padrão das APIs de consulta.
type HMACSHA1 struct{}

func (HMACSHA1) Name() string    { return HMACSHA1Name }
func (HMACSHA1) Version() string { return HMACSHA1Version }

// Generate calcula a assinatura HMAC-SHA1 de params com a chave "secret&".
func (HMACSHA1) Generate(params map[string]string, sc Context) (string, error) {
	mac := hmac.New(sha1.New, []byte(sc.AccessKeySecret+Separator))
	mac.Write([]byte(StringToSign(sc.HTTPMethod, params)))

	encoded := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return strings.ReplaceAll(encoded, "\n", ""), nil
}

// Verify recalcula a assinatura de params (ignorando o próprio campo
// Signature) e compara com o valor recebido em tempo constante.
func Verify(m Method, params map[string]string, sc Context) (bool, error) {
	received, ok := params[SignatureKey]
	if !ok || received == "" {
		return false, nil
	}

	expected, err := m.Generate(withoutSignature(params), sc)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1, nil
}
