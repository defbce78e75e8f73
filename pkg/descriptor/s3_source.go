package descriptor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Client é o subconjunto do cliente S3 usado pela fonte (permite Mocking).
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Source lê as definições de um bucket, com o mesmo layout do FileSource
// relativo a Prefix.
type S3Source struct {
	client S3Client
	Bucket string
	Prefix string
}

// NewS3Source cria a fonte sobre bucket/prefix.
func NewS3Source(client S3Client, bucket, prefix string) *S3Source {
	return &S3Source{
		client: client,
		Bucket: bucket,
		Prefix: strings.Trim(prefix, "/"),
	}
}

func (s *S3Source) LoadService(ctx context.Context, name string) (*ServiceDefinition, error) {
	for _, ext := range extensions {
		data, err := s.get(ctx, path.Join(s.Prefix, name+ext))
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return parseService(data)
	}
	return nil, fmt.Errorf("%w: %s em s3://%s/%s", ErrNotFound, name, s.Bucket, s.Prefix)
}

func (s *S3Source) LoadActions(ctx context.Context, name string) (map[string]*ActionDefinition, error) {
	prefix := path.Join(s.Prefix, name) + "/"
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(prefix),
	})

	actions := make(map[string]*ActionDefinition)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("erro ao listar s3://%s/%s: %w", s.Bucket, prefix, err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			rel := strings.TrimPrefix(key, prefix)
			if strings.Contains(rel, "/") {
				continue
			}
			actionName, ok := trimExtension(rel)
			if !ok {
				continue
			}

			data, err := s.get(ctx, key)
			if err != nil {
				return nil, err
			}
			act, err := parseAction(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			actions[actionName] = act
		}
	}
	return actions, nil
}

func (s *S3Source) get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
