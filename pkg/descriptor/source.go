package descriptor

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/fast-action-client/pkg/cloud"
	"github.com/redis/go-redis/v9"
)

// NewSource detecta o esquema da URI e cria a fonte correspondente.
//
//	./apis, file://./apis         -> FileSource
//	s3://bucket/prefix            -> S3Source
//	dynamodb://table              -> DynamoDBSource
//	redis://:senha@host:6379/pfx  -> RedisSource
//	postgres://user:pw@host/db    -> SQLSource
func NewSource(ctx context.Context, uri string) (Source, error) {
	if uri == "" {
		return nil, fmt.Errorf("descriptor: empty source uri")
	}

	scheme := ""
	if i := strings.Index(uri, "://"); i > 0 {
		scheme = uri[:i]
	}

	switch scheme {
	case "", "file":
		return NewFileSource(uri), nil

	case "s3":
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("URL S3 inválida: %w", err)
		}
		cfg, err := cloud.AWSConfig(ctx, "")
		if err != nil {
			return nil, err
		}
		return NewS3Source(s3.NewFromConfig(cfg), u.Host, u.Path), nil

	case "dynamodb":
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("URL DynamoDB inválida: %w", err)
		}
		cfg, err := cloud.AWSConfig(ctx, "")
		if err != nil {
			return nil, err
		}
		return NewDynamoDBSource(dynamodb.NewFromConfig(cfg), u.Host), nil

	case "redis":
		opts, prefix, err := redisOptions(uri)
		if err != nil {
			return nil, err
		}
		return NewRedisSource(redis.NewClient(opts), prefix), nil

	case "postgres", "postgresql":
		db, err := sql.Open("postgres", uri)
		if err != nil {
			return nil, fmt.Errorf("erro ao abrir conexão SQL: %w", err)
		}
		return NewSQLSource(db), nil

	default:
		return nil, fmt.Errorf("descriptor: unsupported source scheme %q", scheme)
	}
}

// redisOptions interpreta redis://[:senha@]host:porta/prefixo. O path é o
// prefixo das chaves, não o número do banco.
func redisOptions(uri string) (*redis.Options, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, "", fmt.Errorf("URL Redis inválida: %w", err)
	}
	if u.Host == "" {
		return nil, "", fmt.Errorf("URL Redis sem host: %s", uri)
	}

	opts := &redis.Options{Addr: u.Host, DB: 0}
	if u.User != nil {
		opts.Username = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			opts.Password = pw
		}
	}
	return opts, strings.Trim(u.Path, "/"), nil
}
