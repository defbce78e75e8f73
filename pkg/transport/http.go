// Package transport implementa a fronteira HTTP do cliente: um GET com todos
// os parâmetros na query string e a resposta bruta devolvida ao chamador.
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "FastActionClient/1.0"
)

// Response representa a resposta do serviço remoto.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Success informa se o status é 2xx.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Error é a falha de rede ou de leitura da resposta, sem status HTTP.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: falha na conexão com %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options configura o HTTPTransport.
type Options struct {
	Timeout            time.Duration
	InsecureSkipVerify bool
	UserAgent          string
}

// HTTPTransport emite as requisições assinadas.
type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

// NewHTTPTransport cria o transporte com as opções informadas.
func NewHTTPTransport(opts Options) *HTTPTransport {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &HTTPTransport{
		client:    &http.Client{Timeout: timeout, Transport: base},
		userAgent: userAgent,
	}
}

// NewHTTPTransportWithClient usa um *http.Client já configurado.
func NewHTTPTransportWithClient(client *http.Client) *HTTPTransport {
	return &HTTPTransport{client: client, userAgent: DefaultUserAgent}
}

// Get emite um GET para url. Status não-2xx não é erro aqui; a classificação
// fica com o chamador.
func (t *HTTPTransport) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("erro ao ler resposta: %w", err)}
	}

	headers := make(map[string]string)
	for k, v := range resp.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       body,
	}, nil
}
