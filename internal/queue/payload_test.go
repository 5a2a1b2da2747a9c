package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/models"
)

func validSlots() map[string]*models.Slot {
	return map[string]*models.Slot{
		models.SlotLocation:   {Value: &models.SlotValue{OriginalValue: "Manhattan", InterpretedValue: "Manhattan"}},
		models.SlotCuisine:    {Value: &models.SlotValue{OriginalValue: "some italian food", InterpretedValue: "italian"}},
		models.SlotDiningDate: {Value: &models.SlotValue{InterpretedValue: "2099-01-01"}},
		models.SlotDiningTime: {Value: &models.SlotValue{InterpretedValue: "19:00"}},
		models.SlotPartySize:  {Value: &models.SlotValue{InterpretedValue: "4"}},
		models.SlotEmail:      {Value: &models.SlotValue{InterpretedValue: "diner@example.com"}},
	}
}

func TestEncodeDecodePayload(t *testing.T) {
	body, err := EncodePayload("session-1", validSlots())
	require.NoError(t, err)

	p, err := DecodePayload(body)
	require.NoError(t, err)

	assert.Equal(t, "session-1", p.SessionID)
	assert.Equal(t, "italian", p.Slots[models.SlotCuisine].Interpreted())
	assert.Equal(t, "diner@example.com", p.Slots[models.SlotEmail].Interpreted())
	assert.NotEmpty(t, p.RequestID)
}

func TestRequestIDDeterministic(t *testing.T) {
	a := RequestID(validSlots())
	b := RequestID(validSlots())
	assert.Equal(t, a, b)

	changed := validSlots()
	changed[models.SlotPartySize].Value.InterpretedValue = "6"
	assert.NotEqual(t, a, RequestID(changed))
}

func TestDecodePayloadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{'Location': 'Manhattan',"},
		{"missing slots", `{"requestId":"abc"}`},
		{"missing slot entry", `{"requestId":"abc","slots":{"Location":{"value":{"interpretedValue":"Manhattan"}}}}`},
		{"empty interpreted value", `{"requestId":"abc","slots":{
			"Location":{"value":{"interpretedValue":""}},
			"Cuisine":{"value":{"interpretedValue":"italian"}},
			"DiningDate":{"value":{"interpretedValue":"2099-01-01"}},
			"DiningTime":{"value":{"interpretedValue":"19:00"}},
			"PartySize":{"value":{"interpretedValue":"4"}},
			"Email":{"value":{"interpretedValue":"d@example.com"}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePayload(tt.body)
			assert.Error(t, err)
		})
	}
}
