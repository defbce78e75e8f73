package descriptor

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockDynamo struct {
	GetItemFunc func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	QueryFunc   func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

func (m *MockDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.GetItemFunc(ctx, params, optFns...)
}

func (m *MockDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return m.QueryFunc(ctx, params, optFns...)
}

func row(service, action, definition string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"service":    &types.AttributeValueMemberS{Value: service},
		"action":     &types.AttributeValueMemberS{Value: action},
		"definition": &types.AttributeValueMemberS{Value: definition},
	}
}

// --- Testes ---

func TestDynamoDBSource_LoadService(t *testing.T) {
	client := &MockDynamo{
		GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			assert.Equal(t, "Descriptors", *params.TableName)
			action := params.Key["action"].(*types.AttributeValueMemberS).Value
			assert.Equal(t, ServiceRowKey, action)

			service := params.Key["service"].(*types.AttributeValueMemberS).Value
			if service != "ecs" {
				return &dynamodb.GetItemOutput{}, nil
			}
			return &dynamodb.GetItemOutput{Item: row("ecs", ServiceRowKey, serviceYAML)}, nil
		},
	}
	src := NewDynamoDBSource(client, "Descriptors")

	svc, err := src.LoadService(context.Background(), "ecs")
	require.NoError(t, err)
	assert.Equal(t, "2014-05-26", svc.Version)

	_, err = src.LoadService(context.Background(), "rds")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDynamoDBSource_LoadActions(t *testing.T) {
	t.Run("Sucesso", func(t *testing.T) {
		client := &MockDynamo{
			QueryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
				require.NotNil(t, params.KeyConditionExpression)
				assert.NotEmpty(t, params.ExpressionAttributeNames)
				assert.NotEmpty(t, params.ExpressionAttributeValues)
				return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
					row("ecs", ServiceRowKey, serviceYAML),
					row("ecs", "describe_instances", actionYAML),
				}}, nil
			},
		}
		src := NewDynamoDBSource(client, "Descriptors")

		actions, err := src.LoadActions(context.Background(), "ecs")
		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.Equal(t, "DescribeInstances", actions["describe_instances"].Action)
	})

	t.Run("Erro na AWS", func(t *testing.T) {
		client := &MockDynamo{
			QueryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
				return nil, errors.New("throttled")
			},
		}
		_, err := NewDynamoDBSource(client, "Descriptors").LoadActions(context.Background(), "ecs")
		assert.ErrorContains(t, err, "throttled")
	})
}
