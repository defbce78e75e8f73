package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *ClientConfig) error {
	if err := cv.validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Field(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *ClientConfig) error {
	if cfg.Client.Timeout != "" {
		d, err := time.ParseDuration(cfg.Client.Timeout)
		if err != nil {
			return fmt.Errorf("timeout inválido: '%s'", cfg.Client.Timeout)
		}
		if d <= 0 {
			return fmt.Errorf("timeout deve ser positivo: '%s'", cfg.Client.Timeout)
		}
	}

	if q := cfg.Client.ReloadQueue; q != "" {
		u, err := url.Parse(q)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("reload_queue deve ser a URL https da fila SQS: '%s'", q)
		}
	}

	return nil
}
