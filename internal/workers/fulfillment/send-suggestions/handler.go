// Package sendsuggestions bridges queued recommendation requests to the
// search index, the key-value store, and the mail dispatcher.
package sendsuggestions

import (
	"context"
	"errors"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
	"dining-concierge/internal/queue"
	"dining-concierge/internal/restaurants"
)

type Handler struct {
	config *Config
	queue  Queue
	search Searcher
	store  Resolver
	dedup  DedupStore
	mailer Mailer
	logger logger.Logger
}

func NewHandler(config *Config, q Queue, search Searcher, store Resolver, dedup DedupStore, mailer Mailer, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		queue:  q,
		search: search,
		store:  store,
		dedup:  dedup,
		mailer: mailer,
		logger: log.WithFields(map[string]interface{}{"component": "send-suggestions"}),
	}
}

// Run processes at most one pending request. An empty queue is a normal,
// silent no-op. Transport failures leave the message in flight so the
// queue's redelivery drives the retry; the dedup store keeps the retried
// email from going out twice.
func (h *Handler) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	msg, err := h.queue.ReceiveOne(ctx)
	if err != nil {
		metrics.FulfillmentRuns.WithLabelValues("receive_error").Inc()
		h.logger.WithError(err).Error("failed to receive from queue", nil)
		return err
	}
	if msg == nil {
		metrics.FulfillmentRuns.WithLabelValues("empty").Inc()
		return nil
	}

	payload, err := h.decode(ctx, msg.Body, msg.ReceiptHandle)
	if err != nil || payload == nil {
		return err
	}

	cuisine := payload.Slots[models.SlotCuisine].Interpreted()
	date := payload.Slots[models.SlotDiningDate].Interpreted()
	timeOfDay := payload.Slots[models.SlotDiningTime].Interpreted()
	size := payload.Slots[models.SlotPartySize].Interpreted()
	email := payload.Slots[models.SlotEmail].Interpreted()

	ids, err := h.search.FindByCuisine(ctx, cuisine)
	if err != nil {
		metrics.FulfillmentRuns.WithLabelValues("search_error").Inc()
		h.logger.WithError(err).Error("candidate search failed", map[string]interface{}{
			"cuisine": cuisine,
		})
		return err
	}

	suggestions, err := h.resolve(ctx, ids)
	if err != nil {
		metrics.FulfillmentRuns.WithLabelValues("store_error").Inc()
		return err
	}

	body := ComposeMessage(cuisine, size, date, timeOfDay, suggestions)

	first, err := h.dedup.MarkDispatched(ctx, payload.RequestID)
	marked := err == nil && first
	if err != nil {
		// A broken dedup store must not block fulfillment; worst case is
		// the duplicate email the queue already permits.
		h.logger.WithError(err).Warn("dedup store unavailable, dispatching anyway", map[string]interface{}{
			"requestId": payload.RequestID,
		})
		first = true
	}

	if first {
		if err := h.mailer.Send(ctx, email, emailSubject, body); err != nil {
			// Release the mark so the redelivered message can still send;
			// otherwise the failed attempt would suppress it forever.
			if marked {
				if unmarkErr := h.dedup.Unmark(ctx, payload.RequestID); unmarkErr != nil {
					h.logger.WithError(unmarkErr).Warn("failed to release dispatch mark", map[string]interface{}{
						"requestId": payload.RequestID,
					})
				}
			}
			metrics.FulfillmentRuns.WithLabelValues("email_error").Inc()
			h.logger.WithError(err).Error("failed to send suggestion email", map[string]interface{}{
				"requestId": payload.RequestID,
			})
			return err
		}
		metrics.EmailsSent.Inc()
		h.logger.Info("suggestion email sent", map[string]interface{}{
			"requestId":  payload.RequestID,
			"cuisine":    cuisine,
			"candidates": len(suggestions),
		})
	} else {
		metrics.DuplicateRequestsSkipped.Inc()
		h.logger.Info("duplicate request, email suppressed", map[string]interface{}{
			"requestId": payload.RequestID,
		})
	}

	if err := h.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
		metrics.FulfillmentRuns.WithLabelValues("delete_error").Inc()
		h.logger.WithError(err).Error("failed to delete processed message", nil)
		return err
	}

	metrics.FulfillmentRuns.WithLabelValues("processed").Inc()
	return nil
}

// decode reconstitutes the queue body. A payload that fails schema
// validation can never be processed, so it is deleted rather than left to
// poison the queue.
func (h *Handler) decode(ctx context.Context, body, receiptHandle string) (*queue.Payload, error) {
	payload, err := queue.DecodePayload(body)
	if err != nil {
		metrics.FulfillmentRuns.WithLabelValues("invalid_payload").Inc()
		h.logger.WithError(err).Error("dropping malformed queue payload", nil)
		if delErr := h.queue.Delete(ctx, receiptHandle); delErr != nil {
			h.logger.WithError(delErr).Error("failed to delete malformed message", nil)
			return nil, delErr
		}
		return nil, nil
	}
	return payload, nil
}

// resolve fetches display data for each candidate. Identifiers missing from
// the store are skipped with a warning; the index and the store can drift
// between ingestion runs.
func (h *Handler) resolve(ctx context.Context, ids []string) ([]Suggestion, error) {
	suggestions := make([]Suggestion, 0, len(ids))
	for _, id := range ids {
		record, err := h.store.GetByID(ctx, id)
		if errors.Is(err, restaurants.ErrNotFound) {
			h.logger.Warn("candidate missing from store, skipping", map[string]interface{}{
				"businessId": id,
			})
			continue
		}
		if err != nil {
			h.logger.WithError(err).Error("store lookup failed", map[string]interface{}{
				"businessId": id,
			})
			return nil, err
		}
		suggestions = append(suggestions, Suggestion{Name: record.Name, Address: record.Address})
	}
	return suggestions, nil
}
