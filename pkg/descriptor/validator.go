package descriptor

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate confere as regras estruturais da definição do serviço e das suas ações.
func Validate(name string, svc *ServiceDefinition, actions map[string]*ActionDefinition) error {
	if err := validateStruct(svc); err != nil {
		return fmt.Errorf("descriptor: service %s: %w", name, err)
	}
	for actionName, act := range actions {
		if err := validateStruct(act); err != nil {
			return fmt.Errorf("descriptor: action %s/%s: %w", name, actionName, err)
		}
	}
	return nil
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return err
}
