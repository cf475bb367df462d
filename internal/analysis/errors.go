package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUpstreamTimeout is returned when the analysis service does not answer
	// within the configured deadline.
	ErrUpstreamTimeout = errors.New("analysis service timed out")
	// ErrUpstreamUnavailable wraps transport failures other than timeouts.
	ErrUpstreamUnavailable = errors.New("analysis service unreachable")
	// ErrMalformedPayload is returned when a 2xx body is not a valid result document.
	ErrMalformedPayload = errors.New("analysis service returned a malformed payload")
)

// ValidationError lists required query fields that were empty. No request is
// made when it is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "all fields are required (missing: " + strings.Join(e.Fields, ", ") + ")"
}

// UpstreamError is a non-2xx answer from the analysis service.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("analysis api: status %d", e.Status)
}
