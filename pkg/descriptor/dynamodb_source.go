package descriptor

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ServiceRowKey é o valor da sort key que guarda a definição do próprio serviço.
const ServiceRowKey = "_service"

// DynamoDBClient é o subconjunto do cliente DynamoDB usado pela fonte (permite Mocking).
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// definitionItem é o formato de cada linha da tabela:
// partition key "service", sort key "action" e o YAML em "definition".
type definitionItem struct {
	Service    string `dynamodbav:"service"`
	Action     string `dynamodbav:"action"`
	Definition string `dynamodbav:"definition"`
}

// DynamoDBSource lê as definições de uma tabela DynamoDB.
type DynamoDBSource struct {
	client DynamoDBClient
	Table  string
}

// NewDynamoDBSource cria a fonte sobre a tabela informada.
func NewDynamoDBSource(client DynamoDBClient, table string) *DynamoDBSource {
	return &DynamoDBSource{client: client, Table: table}
}

func (s *DynamoDBSource) LoadService(ctx context.Context, name string) (*ServiceDefinition, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Table),
		Key: map[string]types.AttributeValue{
			"service": &types.AttributeValueMemberS{Value: name},
			"action":  &types.AttributeValueMemberS{Value: ServiceRowKey},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("erro no DynamoDB GetItem: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%w: %s na tabela %s", ErrNotFound, name, s.Table)
	}

	var item definitionItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	return parseService([]byte(item.Definition))
}

func (s *DynamoDBSource) LoadActions(ctx context.Context, name string) (map[string]*ActionDefinition, error) {
	keyCond := expression.Key("service").Equal(expression.Value(name))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar key condition: %w", err)
	}

	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:                 aws.String(s.Table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	actions := make(map[string]*ActionDefinition)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("erro no DynamoDB Query: %w", err)
		}

		var items []definitionItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.Action == ServiceRowKey || item.Action == "" {
				continue
			}
			act, err := parseAction([]byte(item.Definition))
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", name, item.Action, err)
			}
			actions[item.Action] = act
		}
	}
	return actions, nil
}
