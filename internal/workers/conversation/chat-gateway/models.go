package chatgateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
)

// lexAPI is the slice of the Lex runtime the gateway uses.
type lexAPI interface {
	RecognizeText(context.Context, *lexruntimev2.RecognizeTextInput, ...func(*lexruntimev2.Options)) (*lexruntimev2.RecognizeTextOutput, error)
}

// Unstructured carries one free-text chat message.
type Unstructured struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Message is the chat front-end's message envelope.
type Message struct {
	Type         string       `json:"type"`
	Unstructured Unstructured `json:"unstructured"`
}

// ChatRequest is the inbound batch of user messages.
type ChatRequest struct {
	Messages  []Message `json:"messages"`
	SessionID string    `json:"sessionId,omitempty"`
}

// ChatResponse relays the dialog engine's replies. The session id is echoed
// back so the client can continue the same conversation.
type ChatResponse struct {
	StatusCode int       `json:"statusCode"`
	SessionID  string    `json:"sessionId"`
	Messages   []Message `json:"messages"`
}

// ChatErrorResponse is the fixed error envelope: the messages field holds
// the error text.
type ChatErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Messages   string `json:"messages"`
}
