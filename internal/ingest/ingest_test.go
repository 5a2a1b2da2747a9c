package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/yelp"
	"dining-concierge/internal/models"
)

type pageKey struct {
	cuisine string
	offset  int
}

type fakeFetcher struct {
	pages map[pageKey][]yelp.Business
	errs  map[pageKey]error
	calls []pageKey
}

func (f *fakeFetcher) SearchRestaurants(_ context.Context, cuisine string, _, offset int) ([]yelp.Business, error) {
	key := pageKey{cuisine: cuisine, offset: offset}
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return f.pages[key], nil
}

func business(id, name string) yelp.Business {
	b := yelp.Business{ID: id, Name: name, ReviewCount: 10, Rating: 4.5}
	b.Location.Address1 = name + " St"
	b.Location.ZipCode = "10001"
	return b
}

func TestHarvestPagesUntilEmpty(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[pageKey][]yelp.Business{
			{cuisine: "korean", offset: 0}:  {business("k1", "Seoul"), business("k2", "Gaonnuri")},
			{cuisine: "korean", offset: 2}:  {business("k3", "Jongro")},
			{cuisine: "italian", offset: 0}: {business("i1", "Carbone")},
		},
	}
	h := NewHarvester(fetcher, 2, 10, logger.NewTestLogger(t))

	restaurants, err := h.Harvest(context.Background())
	require.NoError(t, err)

	require.Len(t, restaurants, 4)
	assert.Equal(t, "k1", restaurants[0].BusinessID)
	assert.Equal(t, "korean", restaurants[0].Cuisine)
	assert.Equal(t, "i1", restaurants[3].BusinessID)
	assert.Equal(t, "italian", restaurants[3].Cuisine)

	// The short third page ends korean at offset 4.
	assert.Contains(t, fetcher.calls, pageKey{cuisine: "korean", offset: 4})
	assert.NotContains(t, fetcher.calls, pageKey{cuisine: "korean", offset: 6})
}

func TestHarvestLastCuisineWinsForSharedBusiness(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[pageKey][]yelp.Business{
			{cuisine: "chinese", offset: 0}:  {business("fusion", "Red Farm")},
			{cuisine: "japanese", offset: 0}: {business("fusion", "Red Farm")},
		},
	}
	h := NewHarvester(fetcher, 20, 0, logger.NewTestLogger(t))

	restaurants, err := h.Harvest(context.Background())
	require.NoError(t, err)

	require.Len(t, restaurants, 1)
	assert.Equal(t, "japanese", restaurants[0].Cuisine)
}

func TestHarvestAPIErrorHaltsCuisineOnly(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[pageKey][]yelp.Business{
			{cuisine: "korean", offset: 0}: {business("k1", "Seoul")},
			{cuisine: "thai", offset: 0}:   {business("t1", "Somtum Der")},
		},
		errs: map[pageKey]error{
			{cuisine: "korean", offset: 1}: &yelp.APIError{StatusCode: 400, Body: "offset too deep"},
		},
	}
	h := NewHarvester(fetcher, 1, 5, logger.NewTestLogger(t))

	restaurants, err := h.Harvest(context.Background())
	require.NoError(t, err)

	counts := CuisineCounts(restaurants)
	assert.Equal(t, 1, counts["korean"])
	assert.Equal(t, 1, counts["thai"])
	assert.NotContains(t, fetcher.calls, pageKey{cuisine: "korean", offset: 2})
}

func TestHarvestTransportErrorAborts(t *testing.T) {
	fetcher := &fakeFetcher{
		errs: map[pageKey]error{
			{cuisine: "korean", offset: 0}: errors.New("connection refused"),
		},
	}
	h := NewHarvester(fetcher, 20, 0, logger.NewTestLogger(t))

	_, err := h.Harvest(context.Background())
	assert.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	original := []models.Restaurant{
		{BusinessID: "b1", Name: "Carbone", Address: "181 Thompson St", Cuisine: "italian", Rating: 4.5, NumReviews: 3200},
		{BusinessID: "b2", Name: "Jongro", Address: "22 W 32nd St", Cuisine: "korean", Rating: 4.0, NumReviews: 2100},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, original))

	restored, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestWriteBulkIndexAlternatesActionAndDocument(t *testing.T) {
	restaurants := []models.Restaurant{
		{BusinessID: "b1", Cuisine: "italian", Name: "Carbone"},
		{BusinessID: "b2", Cuisine: "korean", Name: "Jongro"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBulkIndex(&buf, "restaurants", restaurants))

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 4)

	for i, r := range restaurants {
		var action struct {
			Index struct {
				Index string `json:"_index"`
				ID    string `json:"_id"`
			} `json:"index"`
		}
		require.NoError(t, json.Unmarshal([]byte(lines[i*2]), &action))
		assert.Equal(t, "restaurants", action.Index.Index)
		assert.Equal(t, r.BusinessID, action.Index.ID)

		var doc models.SearchDocument
		require.NoError(t, json.Unmarshal([]byte(lines[i*2+1]), &doc))
		assert.Equal(t, r.BusinessID, doc.RestaurantID)
		assert.Equal(t, r.Cuisine, doc.Cuisine)

		// The index only ever needs the cuisine projection.
		assert.NotContains(t, lines[i*2+1], "Carbone")
	}
}

func TestSortByID(t *testing.T) {
	restaurants := make([]models.Restaurant, 0, 3)
	for _, id := range []string{"c", "a", "b"} {
		restaurants = append(restaurants, models.Restaurant{BusinessID: id, Name: fmt.Sprintf("place-%s", id)})
	}
	SortByID(restaurants)
	assert.Equal(t, "a", restaurants[0].BusinessID)
	assert.Equal(t, "b", restaurants[1].BusinessID)
	assert.Equal(t, "c", restaurants[2].BusinessID)
}
