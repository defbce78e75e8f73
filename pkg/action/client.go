package action

import (
	"context"
	"sync"

	"github.com/raywall/fast-action-client/pkg/descriptor"
)

// Client mantém um Dispatcher por serviço, criado no primeiro uso.
type Client struct {
	registry *descriptor.Registry
	creds    Credentials
	opts     []Option

	mu          sync.Mutex
	dispatchers map[string]*Dispatcher
}

// NewClient cria o pool. As opções são repassadas a cada Dispatcher.
func NewClient(registry *descriptor.Registry, creds Credentials, opts ...Option) *Client {
	return &Client{
		registry:    registry,
		creds:       creds,
		opts:        opts,
		dispatchers: make(map[string]*Dispatcher),
	}
}

// Dispatcher devolve (ou cria) o cliente do serviço.
func (c *Client) Dispatcher(ctx context.Context, service string) (*Dispatcher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d, ok := c.dispatchers[service]; ok {
		return d, nil
	}
	d, err := NewDispatcher(ctx, service, c.registry, c.creds, c.opts...)
	if err != nil {
		return nil, err
	}
	c.dispatchers[service] = d
	return d, nil
}

// Invoke executa service/action.
func (c *Client) Invoke(ctx context.Context, service, actionName string, params map[string]interface{}) (*Result, error) {
	d, err := c.Dispatcher(ctx, service)
	if err != nil {
		return nil, err
	}
	return d.Invoke(ctx, actionName, params)
}

// Reload descarta os descritores em cache e os dispatchers criados. Chamadas
// já em andamento terminam com a tabela que tinham.
func (c *Client) Reload() error {
	if err := c.registry.Reload(); err != nil {
		return err
	}
	c.mu.Lock()
	c.dispatchers = make(map[string]*Dispatcher)
	c.mu.Unlock()
	return nil
}
