package service

import (
	"errors"
	"fmt"

	"ticketboard/internal/content"
	"ticketboard/internal/document"
	"ticketboard/internal/section"
)

var (
	// ErrInvalidRequest is returned when request validation fails.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTicketNotFound is returned when no document exists for a ticket key.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrIO is returned when reading or writing the document fails.
	ErrIO = errors.New("io error")
)

// RequestError reports a request-shape violation on a named field. It is
// surfaced immediately and never retried.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request field %s: %s", e.Field, e.Message)
}

func (e *RequestError) Unwrap() error { return ErrInvalidRequest }

// Error kinds exposed on the wire.
const (
	KindInvalidRequest    = "InvalidRequest"
	KindMalformedDocument = "MalformedDocument"
	KindTicketNotFound    = "TicketNotFound"
	KindSectionNotFound   = "SectionNotFound"
	KindAmbiguousSection  = "AmbiguousSection"
	KindContentTooLarge   = "ContentTooLarge"
	KindIOError           = "IOError"
)

// Classify maps an error from the engine onto its wire kind and the
// suggestions that must accompany it.
func Classify(err error) (kind string, suggestions []string) {
	var notFound *section.NotFoundError
	var ambiguous *section.AmbiguousError
	var tooLarge *content.TooLargeError
	switch {
	case errors.As(err, &notFound):
		return KindSectionNotFound, notFound.Suggestions
	case errors.As(err, &ambiguous):
		return KindAmbiguousSection, ambiguous.Candidates
	case errors.As(err, &tooLarge):
		return KindContentTooLarge, nil
	case errors.Is(err, document.ErrMalformedDocument):
		return KindMalformedDocument, nil
	case errors.Is(err, ErrTicketNotFound):
		return KindTicketNotFound, nil
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest, nil
	default:
		return KindIOError, nil
	}
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
