package action

import (
	"fmt"
	"strconv"

	"github.com/raywall/fast-action-client/pkg/descriptor"
)

// MapParameters converte parâmetros lógicos em parâmetros de wire.
//
// Só são emitidas as chaves declaradas na ação; as demais são descartadas
// sem erro. Não há validação de tipo nem de obrigatoriedade.
func MapParameters(def *descriptor.ActionDefinition, params map[string]interface{}) map[string]string {
	wire := make(map[string]string, len(params))
	if def == nil {
		return wire
	}
	for logical, value := range params {
		key, ok := def.WireKey(logical)
		if !ok {
			continue
		}
		wire[key] = stringify(value)
	}
	return wire
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
