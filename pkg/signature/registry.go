package signature

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

var (
	// ErrUnknownMethod indica um nome de método fora do registro.
	ErrUnknownMethod = errors.New("signature: unknown signature method")
	// ErrConflictingMethod indica uma tentativa de registrar outro método sob um nome já usado.
	ErrConflictingMethod = errors.New("signature: conflicting signature method registration")
	// ErrEmptyName indica um método sem nome.
	ErrEmptyName = errors.New("signature: empty signature method name")
)

// ConfigError é retornado quando a definição de serviço referencia um método
// de assinatura inexistente. É um erro de configuração, detectado na
// construção do cliente e nunca em uma chamada.
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("signature: method %q not found in registry", e.Name)
}

// Is permite errors.Is(err, ErrUnknownMethod).
func (e *ConfigError) Is(target error) bool {
	return target == ErrUnknownMethod
}

var (
	mu      sync.RWMutex
	methods = map[string]Method{
		HMACSHA1Name: HMACSHA1{},
	}
)

// Lookup devolve o método registrado com o nome informado.
func Lookup(name string) (Method, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := methods[name]
	if !ok {
		return nil, &ConfigError{Name: name}
	}
	return m, nil
}

// Register adiciona um método ao registro. Registrar de novo o mesmo tipo
// sob o mesmo nome não tem efeito.
func Register(m Method) error {
	if m == nil || m.Name() == "" {
		return ErrEmptyName
	}

	mu.Lock()
	defer mu.Unlock()

	if old, ok := methods[m.Name()]; ok {
		if reflect.TypeOf(old) == reflect.TypeOf(m) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrConflictingMethod, m.Name())
	}
	methods[m.Name()] = m
	return nil
}

// Names lista os métodos registrados em ordem alfabética.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
