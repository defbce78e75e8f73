package signature

import (
	"net/url"
	"sort"
	"strings"
)

const (
	// Separator é o separador fixo da convenção de assinatura.
	Separator = "&"
	// CanonicalPath é o path literal usado na string-to-sign, independente
	// do path real da requisição.
	CanonicalPath = "/"
	// SignatureKey é o nome do parâmetro que carrega a assinatura.
	SignatureKey = "Signature"
)

// Method define um algoritmo de assinatura.
type Method interface {
	// Name é o valor enviado no campo SignatureMethod.
	Name() string
	// Version é o valor enviado no campo SignatureVersion.
	Version() string
	// Generate calcula a assinatura sobre params. Não deve ter efeitos colaterais.
	Generate(params map[string]string, sc Context) (string, error)
}

// Context carrega o que a assinatura precisa além dos parâmetros.
type Context struct {
	HTTPMethod      string
	AccessKeySecret string
}

// Encode aplica a codificação percentual da convenção do provedor:
// form-encoding padrão e, nesta ordem, "+" -> "%20", "*" -> "%2A" e "%7E" -> "~".
func Encode(s string) string {
	encoded := url.QueryEscape(s)
	encoded = strings.ReplaceAll(encoded, "+", "%20")
	encoded = strings.ReplaceAll(encoded, "*", "%2A")
	encoded = strings.ReplaceAll(encoded, "%7E", "~")
	return encoded
}

// CanonicalQuery retorna a query canônica: chaves ordenadas por byte,
// pares "k=v" codificados e unidos pelo separador.
func CanonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Encode(k)+"="+Encode(params[k]))
	}
	return strings.Join(pairs, Separator)
}

// StringToSign monta "METHOD&%2F&<query canônica codificada>".
func StringToSign(httpMethod string, params map[string]string) string {
	return httpMethod + Separator + Encode(CanonicalPath) + Separator + Encode(CanonicalQuery(params))
}

// withoutSignature devolve uma cópia de params sem o campo Signature.
func withoutSignature(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		if k == SignatureKey {
			continue
		}
		out[k] = v
	}
	return out
}
