package restaurants

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	key := in.Key["business_id"].(*types.AttributeValueMemberS).Value
	item, ok := f.items[key]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	key := in.Item["business_id"].(*types.AttributeValueMemberS).Value
	f.items[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func sampleRecord() models.Restaurant {
	return models.Restaurant{
		BusinessID: "abc123",
		Name:       "Trattoria Prova",
		Address:    "123 Mulberry St",
		Latitude:   40.7196,
		Longitude:  -73.9972,
		NumReviews: 812,
		Rating:     4.5,
		ZipCode:    "10013",
		Cuisine:    "italian",
	}
}

func TestStorePutAndGet(t *testing.T) {
	fake := newFakeDynamo()
	store, err := NewStore(fake, "yelp-restaurants", logger.NewNoOpLogger())
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), sampleRecord()))

	got, err := store.GetByID(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Trattoria Prova", got.Name)
	assert.Equal(t, "123 Mulberry St", got.Address)
	assert.NotEmpty(t, got.InsertedAtTimestamp)
}

func TestStoreGetMissing(t *testing.T) {
	store, err := NewStore(newFakeDynamo(), "yelp-restaurants", logger.NewNoOpLogger())
	require.NoError(t, err)

	_, err = store.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreOverwriteDiffersOnlyInTimestamp(t *testing.T) {
	fake := newFakeDynamo()
	store, err := NewStore(fake, "yelp-restaurants", logger.NewNoOpLogger())
	require.NoError(t, err)

	first := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(90 * time.Minute)

	store.now = func() time.Time { return first }
	require.NoError(t, store.Put(context.Background(), sampleRecord()))
	before, err := store.GetByID(context.Background(), "abc123")
	require.NoError(t, err)

	store.now = func() time.Time { return second }
	require.NoError(t, store.Put(context.Background(), sampleRecord()))
	after, err := store.GetByID(context.Background(), "abc123")
	require.NoError(t, err)

	assert.NotEqual(t, before.InsertedAtTimestamp, after.InsertedAtTimestamp)
	assert.Equal(t, "2026-05-01T13:30:00Z", after.InsertedAtTimestamp)

	before.InsertedAtTimestamp = ""
	after.InsertedAtTimestamp = ""
	assert.Equal(t, before, after)
}

func TestStoreRoundTripAllFields(t *testing.T) {
	item, err := attributevalue.MarshalMap(sampleRecord())
	require.NoError(t, err)

	var back models.Restaurant
	require.NoError(t, attributevalue.UnmarshalMap(item, &back))
	assert.Equal(t, sampleRecord(), back)
}
