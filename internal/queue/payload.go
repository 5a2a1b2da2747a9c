package queue

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	cerrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/models"
)

// slotOrder fixes the field order used for the request fingerprint.
var slotOrder = []string{
	models.SlotLocation,
	models.SlotCuisine,
	models.SlotDiningDate,
	models.SlotDiningTime,
	models.SlotPartySize,
	models.SlotEmail,
}

// Payload is the wire form of a validated recommendation request.
type Payload struct {
	RequestID string                  `json:"requestId"`
	SessionID string                  `json:"sessionId,omitempty"`
	Slots     map[string]*models.Slot `json:"slots"`
}

// payloadSchema rejects anything that is not a well-formed slot mapping
// before the fulfillment side touches it.
const payloadSchema = `{
	"type": "object",
	"required": ["requestId", "slots"],
	"properties": {
		"requestId": {"type": "string", "minLength": 1},
		"sessionId": {"type": "string"},
		"slots": {
			"type": "object",
			"required": ["Location", "Cuisine", "DiningDate", "DiningTime", "PartySize", "Email"],
			"additionalProperties": {
				"type": "object",
				"required": ["value"],
				"properties": {
					"value": {
						"type": "object",
						"required": ["interpretedValue"],
						"properties": {
							"originalValue": {"type": "string"},
							"interpretedValue": {"type": "string", "minLength": 1}
						}
					}
				}
			}
		}
	}
}`

var compiledSchema = gojsonschema.NewStringLoader(payloadSchema)

// RequestID derives a deterministic fingerprint from the interpreted slot
// values, so redelivered requests can be recognized downstream.
func RequestID(slots map[string]*models.Slot) string {
	parts := make([]string, 0, len(slotOrder))
	for _, name := range slotOrder {
		parts = append(parts, slots[name].Interpreted())
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(sum[:])
}

// EncodePayload serializes the validated slot set, stamping the request
// fingerprint.
func EncodePayload(sessionID string, slots map[string]*models.Slot) (string, error) {
	p := Payload{
		RequestID: RequestID(slots),
		SessionID: sessionID,
		Slots:     slots,
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("queue: encode payload: %w", err)
	}
	return string(raw), nil
}

// DecodePayload reconstitutes a queue body. The body is validated against
// the payload schema first; a strict parser, never an evaluator.
func DecodePayload(body string) (*Payload, error) {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewStringLoader(body))
	if err != nil {
		return nil, cerrors.NewPayloadInvalidError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, cerrors.NewPayloadInvalidError(strings.Join(details, "; "))
	}

	var p Payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("queue: decode payload: %w", err)
	}
	return &p, nil
}
