package dify

import (
	"encoding/json"
	"fmt"
)

// UploadError reports a failed attachment upload. Message carries the remote
// service's own wording when the error body could be decoded.
type UploadError struct {
	Status  int
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dify upload failed: %v", e.Err)
	}
	return e.Message
}

func (e *UploadError) Unwrap() error { return e.Err }

// WorkflowError reports a failed workflow run.
type WorkflowError struct {
	Status  int
	Message string
	Err     error
}

func (e *WorkflowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dify workflow failed: %v", e.Err)
	}
	return e.Message
}

func (e *WorkflowError) Unwrap() error { return e.Err }

// remoteMessage picks the error body's message field, falling back to a
// status-derived one.
func remoteMessage(body []byte, status int, op string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("dify %s error: status %d", op, status)
}
