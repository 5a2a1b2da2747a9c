// Package ingest harvests restaurant data per cuisine and stages it for the
// key-value store and the search index.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	cerrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/yelp"
	"dining-concierge/internal/models"
)

// Cuisines are the categories harvested, matching what the dialog accepts.
var Cuisines = []string{"korean", "chinese", "italian", "mexican", "thai", "japanese"}

// Fetcher pulls one page of businesses for a cuisine category.
type Fetcher interface {
	SearchRestaurants(ctx context.Context, cuisine string, limit, offset int) ([]yelp.Business, error)
}

// Harvester pages through the business search API cuisine by cuisine and
// deduplicates the results by business id.
type Harvester struct {
	fetcher   Fetcher
	pageSize  int
	maxOffset int
	logger    logger.Logger
}

func NewHarvester(fetcher Fetcher, pageSize, maxOffset int, log logger.Logger) *Harvester {
	return &Harvester{
		fetcher:   fetcher,
		pageSize:  pageSize,
		maxOffset: maxOffset,
		logger:    log.WithFields(map[string]interface{}{"component": "ingest"}),
	}
}

// Harvest collects restaurants for every cuisine. A business returned under
// more than one cuisine keeps the cuisine it was last seen under. An API
// error halts the current cuisine only; the total-results cap makes deep
// offsets fail routinely and the remaining cuisines are still worth
// fetching.
func (h *Harvester) Harvest(ctx context.Context) ([]models.Restaurant, error) {
	byID := make(map[string]models.Restaurant)
	order := make([]string, 0)

	for _, cuisine := range Cuisines {
		fetched, err := h.harvestCuisine(ctx, cuisine, byID, &order)
		if err != nil {
			return nil, err
		}
		h.logger.Info("cuisine harvested", map[string]interface{}{
			"cuisine": cuisine,
			"fetched": fetched,
		})
	}

	restaurants := make([]models.Restaurant, 0, len(byID))
	for _, id := range order {
		restaurants = append(restaurants, byID[id])
	}
	return restaurants, nil
}

func (h *Harvester) harvestCuisine(ctx context.Context, cuisine string, byID map[string]models.Restaurant, order *[]string) (int, error) {
	fetched := 0
	for offset := 0; offset <= h.maxOffset; offset += h.pageSize {
		businesses, err := h.fetcher.SearchRestaurants(ctx, cuisine, h.pageSize, offset)
		if err != nil {
			var apiErr *yelp.APIError
			if errors.As(err, &apiErr) {
				h.logger.WithError(err).Warn("search API rejected page, moving to next cuisine", map[string]interface{}{
					"cuisine": cuisine,
					"offset":  offset,
				})
				return fetched, nil
			}
			return fetched, cerrors.NewIngestionFetchFailedError(cuisine, err)
		}
		if len(businesses) == 0 {
			return fetched, nil
		}
		for _, b := range businesses {
			if _, seen := byID[b.ID]; !seen {
				*order = append(*order, b.ID)
			}
			byID[b.ID] = b.ToRestaurant(cuisine)
			fetched++
		}
	}
	return fetched, nil
}

// WriteSnapshot serializes the harvested records as one indented JSON array,
// the interchange format the store loader reads back.
func WriteSnapshot(w io.Writer, restaurants []models.Restaurant) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(restaurants); err != nil {
		return fmt.Errorf("ingest: write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot parses a snapshot produced by WriteSnapshot.
func ReadSnapshot(r io.Reader) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := json.NewDecoder(r).Decode(&restaurants); err != nil {
		return nil, fmt.Errorf("ingest: read snapshot: %w", err)
	}
	return restaurants, nil
}

type bulkAction struct {
	Index struct {
		Index string `json:"_index"`
		ID    string `json:"_id"`
	} `json:"index"`
}

// WriteBulkIndex emits the newline-delimited bulk body that loads the
// cuisine projection into the search index: an action line naming the
// document id followed by the document itself, one pair per restaurant.
func WriteBulkIndex(w io.Writer, index string, restaurants []models.Restaurant) error {
	enc := json.NewEncoder(w)
	for _, r := range restaurants {
		var action bulkAction
		action.Index.Index = index
		action.Index.ID = r.BusinessID
		if err := enc.Encode(action); err != nil {
			return fmt.Errorf("ingest: write bulk action: %w", err)
		}
		doc := models.SearchDocument{RestaurantID: r.BusinessID, Cuisine: r.Cuisine}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("ingest: write bulk document: %w", err)
		}
	}
	return nil
}

// CuisineCounts summarizes a harvest for logging.
func CuisineCounts(restaurants []models.Restaurant) map[string]int {
	counts := make(map[string]int)
	for _, r := range restaurants {
		counts[r.Cuisine]++
	}
	return counts
}

// SortByID orders a snapshot deterministically for stable diffs between
// ingestion runs.
func SortByID(restaurants []models.Restaurant) {
	sort.Slice(restaurants, func(i, j int) bool {
		return restaurants[i].BusinessID < restaurants[j].BusinessID
	})
}
