package descriptor

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Source é a fonte bruta de definições. As implementações não precisam de cache.
type Source interface {
	LoadService(ctx context.Context, name string) (*ServiceDefinition, error)
	LoadActions(ctx context.Context, name string) (map[string]*ActionDefinition, error)
}

type entry struct {
	service *ServiceDefinition
	actions map[string]*ActionDefinition
}

// Registry resolve e guarda em cache as definições por nome de serviço.
//
// A população é preguiçosa e feita sob lock exclusivo, de modo que o primeiro
// uso concorrente de um serviço carrega a fonte uma única vez. Depois disso as
// definições são somente leitura e compartilhadas por todos os chamadores.
// Erros de carga não são guardados.
type Registry struct {
	source  Source
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry cria um registro sobre a fonte informada.
func NewRegistry(source Source) *Registry {
	return &Registry{
		source:  source,
		entries: make(map[string]*entry),
	}
}

// Resolve devolve a definição do serviço e a sua tabela de ações.
// Os valores retornados são compartilhados e não devem ser alterados.
func (r *Registry) Resolve(ctx context.Context, name string) (*ServiceDefinition, map[string]*ActionDefinition, error) {
	if err := checkName(name); err != nil {
		return nil, nil, err
	}

	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if ok {
		return e.service, e.actions, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[name]; ok {
		return e.service, e.actions, nil
	}

	svc, err := r.source.LoadService(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("descriptor: load service %s: %w", name, err)
	}
	actions, err := r.source.LoadActions(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("descriptor: load actions %s: %w", name, err)
	}
	if actions == nil {
		actions = map[string]*ActionDefinition{}
	}
	if err := Validate(name, svc, actions); err != nil {
		return nil, nil, err
	}

	r.entries[name] = &entry{service: svc, actions: actions}
	return svc, actions, nil
}

// ResolveService devolve apenas a definição do serviço.
func (r *Registry) ResolveService(ctx context.Context, name string) (*ServiceDefinition, error) {
	svc, _, err := r.Resolve(ctx, name)
	return svc, err
}

// ResolveActions devolve apenas a tabela de ações do serviço.
func (r *Registry) ResolveActions(ctx context.Context, name string) (map[string]*ActionDefinition, error) {
	_, actions, err := r.Resolve(ctx, name)
	return actions, err
}

// Cached informa se o serviço já está em cache.
func (r *Registry) Cached(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Reset descarta todo o cache. Clientes já construídos continuam com as
// definições que resolveram.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*entry)
}

// Reload satisfaz a interface usada pelo reloader via SQS.
func (r *Registry) Reload() error {
	r.Reset()
	return nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\:`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
