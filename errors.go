package climate

import (
	"errors"
	"fmt"
)

var (
	// ErrCountryNotRecognized means the upstream service did not know the
	// requested country code.
	ErrCountryNotRecognized = errors.New("climate: country code not recognized by ClimateWeb")

	// ErrTranscriptExhausted means a playback client made more calls than
	// its fixture has recorded, usually because calls were added to a test
	// without re-recording it.
	ErrTranscriptExhausted = errors.New("climate: transcript exhausted, no interactions left to replay")

	// ErrClosed means a call was made after Close.
	ErrClosed = errors.New("climate: client is closed")
)

// DateRangeError means the upstream service has no data for the requested
// year range.
type DateRangeError struct {
	FromYear, ToYear int
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("climate: date range %d-%d not supported", e.FromYear, e.ToYear)
}

// HTTPError is a non-success response from the upstream service. Such
// responses are surfaced to the caller and never recorded into a fixture.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("climate: upstream returned %s", e.Status)
}

// MismatchError means the next recorded interaction in a fixture does not
// match the request being replayed. The fixture is stale relative to the
// code under test and should be re-recorded.
type MismatchError struct {
	Expected string // descriptor of the next recorded interaction
	Actual   string // descriptor of the request being replayed
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("climate: transcript mismatch: recorded %q, requested %q", e.Expected, e.Actual)
}

// ParseError means a response body did not contain the expected annual
// rainfall structure.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("climate: parsing rainfall response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
