package types

import "fmt"

// Error represents an API error
type Error struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"statusCode"`
	Details    map[string]interface{} `json:"details,omitempty"`
	RequestID  string                 `json:"requestId,omitempty"`
	Err        error                  `json:"-"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("error: %s", e.Code)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// ProviderError represents an error body returned by a provider API.
// The card provider uses error_code/error_message, the bureau uses
// errors[].errorCode; both collapse into this shape.
type ProviderError struct {
	ErrorType    string `json:"error_type,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	RequestID    string `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.ErrorMessage != "" {
		return e.ErrorMessage
	}
	if e.ErrorCode != "" {
		return e.ErrorCode
	}
	return "provider error"
}
