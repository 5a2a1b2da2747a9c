// Package restaurants provides candidate selection against the search index
// and detail resolution against the key-value store.
package restaurants

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	cerrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
)

const defaultCandidateCount = 3

// Search selects candidate restaurants for a cuisine from the search index.
type Search struct {
	client *elasticsearch.Client
	index  string
	size   int
	logger logger.Logger
}

func NewSearch(client *elasticsearch.Client, index string, log logger.Logger) *Search {
	return &Search{
		client: client,
		index:  index,
		size:   defaultCandidateCount,
		logger: log.WithFields(map[string]interface{}{"component": "restaurant-search"}),
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.SearchDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// FindByCuisine returns up to three candidate identifiers for the cuisine,
// by the index's default relevance scoring. Fewer hits than three is a
// normal short result, not an error.
func (s *Search) FindByCuisine(ctx context.Context, cuisine string) ([]string, error) {
	query := map[string]interface{}{
		"size": s.size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": cuisine,
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("restaurants: marshal search query: %w", err)
	}

	start := time.Now()
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, cerrors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	if res.StatusCode == 404 {
		return nil, cerrors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, cerrors.NewSearchQueryFailedError(fmt.Errorf("search returned %s", res.Status()))
	}

	ids, err := parseHits(res.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search completed", map[string]interface{}{
		"cuisine":    cuisine,
		"candidates": len(ids),
	})
	return ids, nil
}

func parseHits(r io.Reader) ([]string, error) {
	var parsed searchResponse
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("restaurants: decode search response: %w", err)
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		if hit.Source.RestaurantID != "" {
			ids = append(ids, hit.Source.RestaurantID)
		}
	}
	return ids, nil
}
