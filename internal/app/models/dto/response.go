package dto

import "time"

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// StructuredResponse provides a base structured API response with nested objects
type StructuredResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewStructuredResponse creates a standard structured API response
func NewStructuredResponse(data interface{}) StructuredResponse {
	return StructuredResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}
