package validatediningslots

import (
	"encoding/json"
	"net/http"

	"dining-concierge/internal/models"
)

// ServeHTTP exposes the dialog hook over HTTP for the conversation engine's
// webhook integration.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var event models.DialogEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.logger.WithError(err).Error("invalid dialog event body", nil)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp := h.Handle(r.Context(), &event)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.WithError(err).Error("failed to write dialog response", nil)
	}
}
