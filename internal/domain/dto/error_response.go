package dto

import "time"

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Message      string    `json:"message" example:"dataset not found"`
	ErrorDetails string    `json:"error,omitempty" example:"quandl status 404 QECx02: You have submitted an incorrect Quandl code."`
	Timestamp    time.Time `json:"timestamp" example:"2024-01-01T00:00:00Z"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
