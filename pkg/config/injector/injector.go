package injector

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/raywall/fast-action-client/pkg/cloud"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.ACCESS_KEY_ID}, ${ssm./client/key_id}, ${secret.prod/api-secret}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

// Fetcher resolve o valor de uma chave em uma fonte (env, ssm, secret).
type Fetcher func(ctx context.Context, key string) (string, error)

// Injector resolve tags "env" e interpolações "${...}" em campos string.
type Injector struct {
	fetchers map[string]Fetcher
}

// New cria um Injector com as fontes padrão: variáveis de ambiente,
// Parameter Store e Secrets Manager (região em AWS_REGION).
func New() *Injector {
	return &Injector{
		fetchers: map[string]Fetcher{
			"env": func(_ context.Context, key string) (string, error) {
				// Variável não encontrada resolve para vazio; a validação
				// da configuração acusa campos obrigatórios.
				return os.Getenv(key), nil
			},
			"ssm": func(ctx context.Context, key string) (string, error) {
				return cloud.Parameter(ctx, os.Getenv("AWS_REGION"), key)
			},
			"secret": func(ctx context.Context, key string) (string, error) {
				return cloud.Secret(ctx, os.Getenv("AWS_REGION"), key)
			},
		},
	}
}

// WithFetcher substitui a fonte informada (usado em testes e por quem quer
// outra origem de segredos).
func (i *Injector) WithFetcher(source string, f Fetcher) *Injector {
	i.fetchers[source] = f
	return i
}

// Inject percorre target (ponteiro para struct) resolvendo tags e interpolações.
func (i *Injector) Inject(ctx context.Context, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	return i.injectRecursive(ctx, v.Elem())
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for k := 0; k < t.NumField(); k++ {
			field := t.Field(k)
			value := v.Field(k)
			if !value.CanSet() {
				continue
			}

			// 1. Tag env:"..." tem precedência sobre o YAML
			if tag := field.Tag.Get("env"); tag != "" && value.Kind() == reflect.String {
				if val, exists := os.LookupEnv(tag); exists {
					value.SetString(val)
				}
			}

			// 2. Interpolação "${...}" e recursão
			if err := i.injectRecursive(ctx, value); err != nil {
				return fmt.Errorf("%s: %w", field.Name, err)
			}
		}

	case reflect.String:
		if v.CanSet() {
			newValue, err := i.interpolateString(ctx, v.String())
			if err != nil {
				return err
			}
			v.SetString(newValue)
		}

	case reflect.Map:
		if !v.IsNil() && v.Type().Key().Kind() == reflect.String {
			return i.injectMap(ctx, v)
		}

	case reflect.Ptr:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := i.injectRecursive(ctx, v.Index(j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// interpolateString substitui cada ${fonte.chave} pelo valor resolvido.
func (i *Injector) interpolateString(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var firstErr error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		source, key := groups[1], groups[2]

		fetch, ok := i.fetchers[source]
		if !ok {
			return match
		}
		val, err := fetch(ctx, key)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("erro ao resolver ${%s.%s}: %w", source, key, err)
			}
			return match
		}
		return val
	})

	return result, firstErr
}

// injectMap interpola valores string (inclusive em mapas aninhados).
func (i *Injector) injectMap(ctx context.Context, v reflect.Value) error {
	iter := v.MapRange()
	updates := make(map[string]reflect.Value)

	for iter.Next() {
		elem := iter.Value()
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		if !elem.IsValid() {
			continue
		}

		switch elem.Kind() {
		case reflect.String:
			newVal, err := i.interpolateString(ctx, elem.String())
			if err != nil {
				return err
			}
			updates[iter.Key().String()] = reflect.ValueOf(newVal).Convert(v.Type().Elem())
		case reflect.Map:
			if elem.Type().Key().Kind() == reflect.String {
				if err := i.injectMap(ctx, elem); err != nil {
					return err
				}
			}
		}
	}

	for k, val := range updates {
		v.SetMapIndex(reflect.ValueOf(k).Convert(v.Type().Key()), val)
	}
	return nil
}
