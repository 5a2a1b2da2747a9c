// Package validatediningslots decides the next dialog action for one
// conversation turn and enqueues the slot set once every slot validates.
package validatediningslots

import (
	"context"
	"net/http"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
	"dining-concierge/internal/queue"
)

type Handler struct {
	config    *Config
	validator *Validator
	queue     Sender
	logger    logger.Logger
}

func NewHandler(config *Config, validator *Validator, q Sender, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		validator: validator,
		queue:     q,
		logger:    log.WithFields(map[string]interface{}{"component": "validate-dining-slots"}),
	}
}

// Handle processes one conversation turn. Validation failures re-elicit the
// offending slot; a fully validated turn closes the dialog and enqueues the
// request exactly once.
func (h *Handler) Handle(ctx context.Context, event *models.DialogEvent) *models.DialogResponse {
	resp := &models.DialogResponse{
		StatusCode:   http.StatusOK,
		SessionState: event.SessionState,
	}
	slots := event.SessionState.Intent.Slots

	// Initial triggering stage: nothing filled yet.
	if allSlotsEmpty(slots) {
		resp.SessionState.DialogAction = h.nextAction(event)
		metrics.DialogTurnsProcessed.WithLabelValues(resp.SessionState.DialogAction.Type).Inc()
		return resp
	}

	if slot := slots[models.SlotLocation]; slot != nil {
		if !h.validator.ValidateLocation(slot.Interpreted()) {
			return h.elicit(resp, models.SlotLocation)
		}
	}

	if slot := slots[models.SlotCuisine]; slot != nil {
		canonical := h.validator.ValidateCuisine(slot.Original())
		if canonical == "" {
			return h.elicit(resp, models.SlotCuisine)
		}
		slot.Value.InterpretedValue = canonical
	}

	if slot := slots[models.SlotDiningDate]; slot != nil {
		if !h.validator.ValidateDate(slot.Interpreted()) {
			return h.elicit(resp, models.SlotDiningDate)
		}
	}

	if timeSlot, dateSlot := slots[models.SlotDiningTime], slots[models.SlotDiningDate]; timeSlot != nil && dateSlot != nil {
		if !h.validator.ValidateDateTime(dateSlot.Interpreted(), timeSlot.Interpreted()) {
			return h.elicit(resp, models.SlotDiningTime)
		}
	}

	if slot := slots[models.SlotPartySize]; slot != nil {
		if !h.validator.ValidatePartySize(slot.Interpreted()) {
			return h.elicit(resp, models.SlotPartySize)
		}
	}

	// All filled slots validated. Hand off to the proposed next state when
	// the engine supplied one; otherwise the conversation is complete and
	// the request goes to the queue.
	if event.ProposedNextState != nil && event.ProposedNextState.DialogAction != nil {
		resp.SessionState.DialogAction = event.ProposedNextState.DialogAction
	} else {
		resp.SessionState.DialogAction = &models.DialogAction{Type: models.DialogActionClose}
		h.enqueue(ctx, event.SessionID, slots)
	}

	metrics.DialogTurnsProcessed.WithLabelValues(resp.SessionState.DialogAction.Type).Inc()
	return resp
}

// enqueue submits the validated slot set. Failures are logged and swallowed;
// the conversation still reports success to the user.
func (h *Handler) enqueue(ctx context.Context, sessionID string, slots map[string]*models.Slot) {
	body, err := queue.EncodePayload(sessionID, slots)
	if err != nil {
		h.logger.WithError(err).Error("failed to encode queue payload", nil)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, h.config.EnqueueTimeout)
	defer cancel()

	if err := h.queue.Send(sendCtx, body); err != nil {
		h.logger.WithError(err).Error("failed to enqueue recommendation request", nil)
		return
	}

	metrics.RequestsEnqueued.Inc()
	h.logger.Info("recommendation request enqueued", map[string]interface{}{
		"sessionId": sessionID,
	})
}

func (h *Handler) elicit(resp *models.DialogResponse, slotName string) *models.DialogResponse {
	metrics.SlotValidationFailures.WithLabelValues(slotName).Inc()
	metrics.DialogTurnsProcessed.WithLabelValues(models.DialogActionElicitSlot).Inc()
	resp.SessionState.DialogAction = &models.DialogAction{
		Type:         models.DialogActionElicitSlot,
		SlotToElicit: slotName,
	}
	return resp
}

func (h *Handler) nextAction(event *models.DialogEvent) *models.DialogAction {
	if event.ProposedNextState != nil && event.ProposedNextState.DialogAction != nil {
		return event.ProposedNextState.DialogAction
	}
	return &models.DialogAction{Type: models.DialogActionClose}
}

func allSlotsEmpty(slots map[string]*models.Slot) bool {
	for _, slot := range slots {
		if slot != nil {
			return false
		}
	}
	return true
}
