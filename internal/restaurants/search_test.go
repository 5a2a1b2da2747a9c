package restaurants

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
)

const sampleHits = `{
	"took": 2,
	"hits": {
		"total": {"value": 3},
		"hits": [
			{"_id": "a1", "_source": {"RestaurantID": "a1", "Cuisine": "italian"}},
			{"_id": "b2", "_source": {"RestaurantID": "b2", "Cuisine": "italian"}},
			{"_id": "c3", "_source": {"RestaurantID": "c3", "Cuisine": "italian"}}
		]
	}
}`

type stubTransport struct {
	body   string
	status int
}

func (s *stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header: http.Header{
			"Content-Type":      []string{"application/json"},
			"X-Elastic-Product": []string{"Elasticsearch"},
		},
	}, nil
}

func newStubClient(t *testing.T, body string, status int) *elasticsearch.Client {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
		Transport: &stubTransport{body: body, status: status},
	})
	require.NoError(t, err)
	return client
}

func TestFindByCuisine(t *testing.T) {
	search := NewSearch(newStubClient(t, sampleHits, http.StatusOK), "restaurants", logger.NewNoOpLogger())

	ids, err := search.FindByCuisine(context.Background(), "italian")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "b2", "c3"}, ids)
}

func TestFindByCuisineShortResult(t *testing.T) {
	short := `{"hits":{"hits":[{"_source":{"RestaurantID":"a1","Cuisine":"thai"}}]}}`
	search := NewSearch(newStubClient(t, short, http.StatusOK), "restaurants", logger.NewNoOpLogger())

	ids, err := search.FindByCuisine(context.Background(), "thai")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids)
}

func TestFindByCuisineIndexError(t *testing.T) {
	search := NewSearch(newStubClient(t, `{"error":{"type":"index_not_found_exception"}}`, http.StatusNotFound), "restaurants", logger.NewNoOpLogger())

	_, err := search.FindByCuisine(context.Background(), "thai")
	assert.Error(t, err)
}

func TestParseHitsEmpty(t *testing.T) {
	ids, err := parseHits(strings.NewReader(`{"hits":{"hits":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, ids)
}
