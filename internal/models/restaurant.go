package models

// Restaurant is the full-fidelity record staged by the ingestion tool and
// persisted in the key-value store keyed by BusinessID.
type Restaurant struct {
	BusinessID          string  `json:"business_id" dynamodbav:"business_id"`
	Name                string  `json:"name" dynamodbav:"name"`
	Address             string  `json:"address" dynamodbav:"address"`
	Latitude            float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude           float64 `json:"longitude" dynamodbav:"longitude"`
	NumReviews          int     `json:"num_reviews" dynamodbav:"num_reviews"`
	Rating              float64 `json:"rating" dynamodbav:"rating"`
	ZipCode             string  `json:"zip_code" dynamodbav:"zip_code"`
	Cuisine             string  `json:"cuisine" dynamodbav:"cuisine"`
	InsertedAtTimestamp string  `json:"insertedAtTimestamp,omitempty" dynamodbav:"insertedAtTimestamp,omitempty"`
}

// SearchDocument is the narrow projection of Restaurant held by the search
// index; candidate selection needs nothing beyond the cuisine tag.
type SearchDocument struct {
	RestaurantID string `json:"RestaurantID"`
	Cuisine      string `json:"Cuisine"`
}
