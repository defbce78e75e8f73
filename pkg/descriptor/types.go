package descriptor

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound indica que a fonte não possui a definição do serviço.
	ErrNotFound = errors.New("descriptor: service definition not found")
	// ErrInvalidName indica um nome de serviço ou ação inutilizável como chave.
	ErrInvalidName = errors.New("descriptor: invalid service name")
)

// ServiceDefinition descreve o endpoint e o envelope padrão de um serviço.
type ServiceDefinition struct {
	Host            string `yaml:"host" json:"host" validate:"required,hostname_port|hostname_rfc1123"`
	Schema          string `yaml:"schema" json:"schema" validate:"omitempty,oneof=http https"`
	Version         string `yaml:"version" json:"version" validate:"required"`
	Format          string `yaml:"format" json:"format"`
	SignatureMethod string `yaml:"signature_method" json:"signature_method"`
}

// ParameterDefinition associa um parâmetro lógico ao seu nome de wire.
type ParameterDefinition struct {
	Parameter   string `yaml:"parameter" json:"parameter" validate:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ActionDefinition descreve uma ação invocável de um serviço.
//
// Parâmetros lógicos ausentes de Parameters são descartados das requisições
// (allow-list).
type ActionDefinition struct {
	Action     string                         `yaml:"action" json:"action" validate:"required"`
	Parameters map[string]ParameterDefinition `yaml:"parameters" json:"parameters" validate:"dive"`
}

// WireKey devolve o nome de wire do parâmetro lógico informado.
func (a *ActionDefinition) WireKey(logical string) (string, bool) {
	p, ok := a.Parameters[logical]
	if !ok || p.Parameter == "" {
		return "", false
	}
	return p.Parameter, true
}

// ActionNames lista as ações de uma tabela em ordem alfabética.
func ActionNames(actions map[string]*ActionDefinition) []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseService(data []byte) (*ServiceDefinition, error) {
	var svc ServiceDefinition
	if err := yaml.Unmarshal(data, &svc); err != nil {
		return nil, fmt.Errorf("descriptor: invalid service yaml: %w", err)
	}
	return &svc, nil
}

func parseAction(data []byte) (*ActionDefinition, error) {
	var act ActionDefinition
	if err := yaml.Unmarshal(data, &act); err != nil {
		return nil, fmt.Errorf("descriptor: invalid action yaml: %w", err)
	}
	if act.Parameters == nil {
		act.Parameters = map[string]ParameterDefinition{}
	}
	return &act, nil
}
