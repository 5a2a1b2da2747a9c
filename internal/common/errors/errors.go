// Package errors provides standardized error handling for the
// recommendation workflow.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDialogEngineFailed ErrorCode = "DIALOG_ENGINE_FAILED"

	ErrCodeQueueSendFailed    ErrorCode = "QUEUE_SEND_FAILED"
	ErrCodeQueueReceiveFailed ErrorCode = "QUEUE_RECEIVE_FAILED"
	ErrCodeQueueDeleteFailed  ErrorCode = "QUEUE_DELETE_FAILED"
	ErrCodePayloadInvalid     ErrorCode = "PAYLOAD_INVALID"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeStoreLookupFailed ErrorCode = "STORE_LOOKUP_FAILED"
	ErrCodeStoreWriteFailed  ErrorCode = "STORE_WRITE_FAILED"

	ErrCodeEmailSendFailed ErrorCode = "EMAIL_SEND_FAILED"

	ErrCodeIngestionFetchFailed ErrorCode = "INGESTION_FETCH_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewDialogEngineFailedError wraps a Lex runtime failure. Retryable: the
// gateway surfaces it to the caller, which may simply resend the utterance.
func NewDialogEngineFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDialogEngineFailed,
		Message:   "Dialog engine call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueueSendFailedError creates a retryable queue transport error.
func NewQueueSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueueSendFailed,
		Message:   "Failed to send message to queue",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueueReceiveFailedError creates a retryable queue transport error.
func NewQueueReceiveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueueReceiveFailed,
		Message:   "Failed to receive message from queue",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueueDeleteFailedError creates a retryable queue transport error.
func NewQueueDeleteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueueDeleteFailed,
		Message:   "Failed to delete message from queue",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadInvalidError creates a non-retryable payload error. A message
// that fails schema validation can never succeed on redelivery.
func NewPayloadInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadInvalid,
		Message:   "Queue payload failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search index query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError reports a query against a missing index, which
// retries cannot fix until ingestion has run.
func NewIndexNotFoundError(index string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Search index does not exist",
		Details:   fmt.Sprintf("index: %s", index),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreLookupFailedError creates a retryable key-value store error.
func NewStoreLookupFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreLookupFailed,
		Message:   "Key-value store lookup failed",
		Details:   fmt.Sprintf("business_id: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreWriteFailedError creates a retryable key-value store error.
func NewStoreWriteFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreWriteFailed,
		Message:   "Key-value store write failed",
		Details:   fmt.Sprintf("business_id: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailSendFailedError creates a retryable mail transport error.
func NewEmailSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   "Failed to send email",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIngestionFetchFailedError wraps a transport failure while harvesting a
// cuisine. Retryable: the harvest can simply be rerun.
func NewIngestionFetchFailedError(cuisine string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIngestionFetchFailed,
		Message:   "Business search fetch failed",
		Details:   fmt.Sprintf("cuisine: %s, error: %s", cuisine, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
