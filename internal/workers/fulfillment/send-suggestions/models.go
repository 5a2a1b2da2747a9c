package sendsuggestions

import (
	"context"

	"dining-concierge/internal/models"
	"dining-concierge/internal/queue"
)

// Queue is the intake side of the bridge.
type Queue interface {
	ReceiveOne(ctx context.Context) (*queue.Message, error)
	Delete(ctx context.Context, receiptHandle string) error
}

// Searcher selects candidate restaurant ids for a cuisine.
type Searcher interface {
	FindByCuisine(ctx context.Context, cuisine string) ([]string, error)
}

// Resolver fetches display data for a candidate id.
type Resolver interface {
	GetByID(ctx context.Context, businessID string) (*models.Restaurant, error)
}

// DedupStore suppresses duplicate dispatches across redeliveries. Unmark
// releases a mark whose send failed, so redelivery can still dispatch.
type DedupStore interface {
	MarkDispatched(ctx context.Context, requestID string) (bool, error)
	Unmark(ctx context.Context, requestID string) error
}

// Mailer delivers the composed message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Suggestion is one resolved candidate ready for the message body.
type Suggestion struct {
	Name    string
	Address string
}
