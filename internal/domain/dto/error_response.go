package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx response.
//
// Fields:
//   - Message: human-readable summary.
//   - ErrorDetails: underlying error text, if any.
//   - Fields: missing or invalid form fields (validation failures only).
//   - UpstreamStatus: HTTP status returned by the analysis service, if any.
//   - Timestamp: when the error was produced (UTC).
type ErrorResponse struct {
	Message        string    `json:"message" example:"all fields are required"`
	ErrorDetails   string    `json:"error,omitempty" example:"missing: asset"`
	Fields         []string  `json:"fields,omitempty"`
	UpstreamStatus int       `json:"upstream_status,omitempty" example:"500"`
	Timestamp      time.Time `json:"timestamp"`
}

// Error implements error so an ErrorResponse can travel through c.Error().
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
