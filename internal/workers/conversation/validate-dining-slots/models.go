package validatediningslots

import "context"

// Sender is the queue seam the orchestrator hands validated requests to.
type Sender interface {
	Send(ctx context.Context, body string) error
}
