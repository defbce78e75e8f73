package descriptor

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisClient é o subconjunto do cliente Redis usado pela fonte (permite Mocking).
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// RedisSource lê as definições de chaves Redis:
// "<prefix>:<service>" com o YAML do serviço e o hash
// "<prefix>:<service>:actions" com um campo por ação.
type RedisSource struct {
	client RedisClient
	Prefix string
}

// NewRedisSource cria a fonte. Um prefixo vazio usa "descriptors".
func NewRedisSource(client RedisClient, prefix string) *RedisSource {
	if prefix == "" {
		prefix = "descriptors"
	}
	return &RedisSource{client: client, Prefix: prefix}
}

func (s *RedisSource) serviceKey(name string) string {
	return s.Prefix + ":" + name
}

func (s *RedisSource) LoadService(ctx context.Context, name string) (*ServiceDefinition, error) {
	val, err := s.client.Get(ctx, s.serviceKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.serviceKey(name))
	}
	if err != nil {
		return nil, fmt.Errorf("erro no redis GET: %w", err)
	}
	return parseService([]byte(val))
}

func (s *RedisSource) LoadActions(ctx context.Context, name string) (map[string]*ActionDefinition, error) {
	fields, err := s.client.HGetAll(ctx, s.serviceKey(name)+":actions").Result()
	if err != nil {
		return nil, fmt.Errorf("erro no redis HGETALL: %w", err)
	}

	actions := make(map[string]*ActionDefinition, len(fields))
	for actionName, raw := range fields {
		act, err := parseAction([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", actionName, err)
		}
		actions[actionName] = act
	}
	return actions, nil
}
