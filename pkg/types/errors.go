package types

import "fmt"

// ResponseStoppedError is returned when the provider halted generation
type ResponseStoppedError struct {
	FinishReason string
}

func (e *ResponseStoppedError) Error() string {
	return fmt.Sprintf("Content generation stopped. Reason: %s", e.FinishReason)
}

// ServerError is returned when the provider answered with a non-success status
type ServerError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != "" {
		return e.Status
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// PromptBlockedError is returned when the provider refused the prompt outright.
// It is not one of the recovered kinds.
type PromptBlockedError struct {
	BlockReason string
}

func (e *PromptBlockedError) Error() string {
	return fmt.Sprintf("Prompt was blocked: %s", e.BlockReason)
}
