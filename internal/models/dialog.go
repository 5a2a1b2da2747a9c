package models

// Slot names used by the DiningSuggestions intent.
const (
	SlotLocation   = "Location"
	SlotCuisine    = "Cuisine"
	SlotDiningDate = "DiningDate"
	SlotDiningTime = "DiningTime"
	SlotPartySize  = "PartySize"
	SlotEmail      = "Email"
)

// Dialog action types produced by the orchestrator.
const (
	DialogActionClose      = "Close"
	DialogActionElicitSlot = "ElicitSlot"
)

// SlotValue carries what the user said and what the dialog engine made of it.
type SlotValue struct {
	OriginalValue    string `json:"originalValue,omitempty"`
	InterpretedValue string `json:"interpretedValue,omitempty"`
}

// Slot is a single intent slot; nil means the slot is not yet filled.
type Slot struct {
	Value *SlotValue `json:"value,omitempty"`
}

// Interpreted returns the interpreted value, or "" for an unfilled slot.
func (s *Slot) Interpreted() string {
	if s == nil || s.Value == nil {
		return ""
	}
	return s.Value.InterpretedValue
}

// Original returns the raw user value, or "" for an unfilled slot.
func (s *Slot) Original() string {
	if s == nil || s.Value == nil {
		return ""
	}
	return s.Value.OriginalValue
}

// Intent mirrors the dialog engine's intent structure.
type Intent struct {
	Name  string           `json:"name,omitempty"`
	Slots map[string]*Slot `json:"slots"`
}

// DialogAction tells the dialog engine what to do next.
type DialogAction struct {
	Type         string `json:"type"`
	SlotToElicit string `json:"slotToElicit,omitempty"`
}

// SessionState mirrors the dialog engine's session state envelope.
type SessionState struct {
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
	Intent            Intent            `json:"intent"`
	DialogAction      *DialogAction     `json:"dialogAction,omitempty"`
}

// ProposedNextState is the engine-suggested next step, present when the
// engine already knows which slot it wants to elicit next.
type ProposedNextState struct {
	DialogAction *DialogAction `json:"dialogAction,omitempty"`
}

// DialogEvent is one conversation turn delivered to the orchestrator.
type DialogEvent struct {
	InputTranscript   string             `json:"inputTranscript"`
	SessionState      SessionState       `json:"sessionState"`
	ProposedNextState *ProposedNextState `json:"proposedNextState,omitempty"`
	SessionID         string             `json:"sessionId,omitempty"`
}

// DialogResponse is returned to the dialog engine after a turn.
type DialogResponse struct {
	StatusCode   int          `json:"statusCode"`
	SessionState SessionState `json:"sessionState"`
}
