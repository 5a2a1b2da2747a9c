package restaurants

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	cerrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

// timestampLayout matches the ISO 8601 form stamped on every stored record.
const timestampLayout = "2006-01-02T15:04:05Z"

// ErrNotFound indicates the requested business id has no record in the store.
var ErrNotFound = errors.New("restaurants: record not found")

type dynamoAPI interface {
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store persists restaurant records keyed by business_id.
type Store struct {
	client    dynamoAPI
	tableName string
	logger    logger.Logger
	now       func() time.Time
}

// NewStore builds a store backed by the provided DynamoDB client.
func NewStore(client dynamoAPI, tableName string, log logger.Logger) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("restaurants: dynamodb client is required")
	}
	if tableName == "" {
		return nil, fmt.Errorf("restaurants: table name is required")
	}
	return &Store{
		client:    client,
		tableName: tableName,
		logger:    log.WithFields(map[string]interface{}{"component": "restaurant-store"}),
		now:       time.Now,
	}, nil
}

// GetByID resolves a single record by business id. Returns ErrNotFound when
// the identifier has no corresponding record.
func (s *Store) GetByID(ctx context.Context, businessID string) (*models.Restaurant, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"business_id": &types.AttributeValueMemberS{Value: businessID},
		},
	})
	if err != nil {
		return nil, cerrors.NewStoreLookupFailedError(businessID, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var record models.Restaurant
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("restaurants: unmarshal %s: %w", businessID, err)
	}
	return &record, nil
}

// Put upserts a record, stamping the insertion timestamp. Re-ingestion
// overwrites by business_id.
func (s *Store) Put(ctx context.Context, record models.Restaurant) error {
	record.InsertedAtTimestamp = s.now().UTC().Format(timestampLayout)

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("restaurants: marshal %s: %w", record.BusinessID, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return cerrors.NewStoreWriteFailedError(record.BusinessID, err)
	}
	return nil
}
