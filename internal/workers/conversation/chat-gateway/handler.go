// Package chatgateway relays chat front-end utterances to the hosted
// dialog engine.
package chatgateway

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"dining-concierge/internal/common/logger"
)

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"component": "chat-gateway"}),
	}
}

// ServeHTTP handles one chat batch: each unstructured message is forwarded
// to the dialog engine and the replies are relayed in order.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	replies := make([]Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		reply, err := h.service.Reply(r.Context(), sessionID, msg.Unstructured.Text)
		if err != nil {
			h.logger.WithError(err).Error("dialog engine call failed", map[string]interface{}{
				"sessionId": sessionID,
			})
			h.writeError(w, err.Error())
			return
		}

		replies = append(replies, Message{
			Type:         "unstructured",
			Unstructured: Unstructured{Text: reply},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(ChatResponse{
		StatusCode: http.StatusOK,
		SessionID:  sessionID,
		Messages:   replies,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(ChatErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Messages:   details,
	})
}
