// Package yelp is a minimal client for the Yelp Fusion business search API,
// covering only what bulk ingestion needs.
package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dining-concierge/internal/models"
)

// Business is one entry from the business search response.
type Business struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ReviewCount int     `json:"review_count"`
	Rating      float64 `json:"rating"`
	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
	Location struct {
		Address1 string `json:"address1"`
		ZipCode  string `json:"zip_code"`
	} `json:"location"`
}

// ToRestaurant projects a business onto the stored record shape, tagging it
// with the cuisine the search was issued for.
func (b Business) ToRestaurant(cuisine string) models.Restaurant {
	return models.Restaurant{
		BusinessID: b.ID,
		Name:       b.Name,
		Address:    b.Location.Address1,
		Latitude:   b.Coordinates.Latitude,
		Longitude:  b.Coordinates.Longitude,
		NumReviews: b.ReviewCount,
		Rating:     b.Rating,
		ZipCode:    b.Location.ZipCode,
		Cuisine:    cuisine,
	}
}

type searchResponse struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
}

// APIError reports a non-success response from the business search API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yelp: search returned %d: %s", e.StatusCode, e.Body)
}

// Client calls the Yelp Fusion API with bearer authentication.
type Client struct {
	baseURL    string
	apiKey     string
	location   string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, location string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		location: location,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchRestaurants fetches one page of restaurants for a cuisine category.
func (c *Client) SearchRestaurants(ctx context.Context, cuisine string, limit, offset int) ([]Business, error) {
	params := url.Values{}
	params.Set("term", "restaurant")
	params.Set("location", c.location)
	params.Set("categories", cuisine)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	endpoint := fmt.Sprintf("%s/businesses/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("yelp: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yelp: search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yelp: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("yelp: decode response: %w", err)
	}
	return parsed.Businesses, nil
}
