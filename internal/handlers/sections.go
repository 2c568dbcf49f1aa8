package handlers

import (
	"encoding/json"
	"net/http"

	"ticketboard/internal/contextutil"
	"ticketboard/internal/service"
)

// SectionsHandler handles HTTP requests for section operations: the
// tool-call surface of the section addressing and mutation engine.
type SectionsHandler struct {
	sections service.SectionService
}

// NewSectionsHandler creates a new SectionsHandler.
func NewSectionsHandler(sections service.SectionService) *SectionsHandler {
	return &SectionsHandler{sections: sections}
}

// ErrorResponse is the wire form of an engine error.
type ErrorResponse struct {
	Kind        string   `json:"kind"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ServeHTTP handles a section operation request.
func (h *SectionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, ErrorResponse{
			Kind:    service.KindInvalidRequest,
			Message: "method not allowed",
		})
		return
	}

	var req service.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, ErrorResponse{
			Kind:    service.KindInvalidRequest,
			Message: "invalid request body",
		})
		return
	}

	result, err := h.sections.Dispatch(ctx, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleServiceError maps engine errors onto HTTP statuses, carrying the
// mandatory suggestions along.
func (h *SectionsHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	kind, suggestions := service.Classify(err)

	status := http.StatusInternalServerError
	switch kind {
	case service.KindInvalidRequest:
		status = http.StatusBadRequest
	case service.KindTicketNotFound, service.KindSectionNotFound:
		status = http.StatusNotFound
	case service.KindAmbiguousSection:
		status = http.StatusConflict
	case service.KindContentTooLarge:
		status = http.StatusRequestEntityTooLarge
	case service.KindMalformedDocument:
		status = http.StatusUnprocessableEntity
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "section operation failed", "kind", kind, "error", err)
	} else {
		logger.WarnContext(ctx, "section operation rejected", "kind", kind, "error", err)
	}

	h.writeError(w, status, ErrorResponse{
		Kind:        kind,
		Message:     err.Error(),
		Suggestions: suggestions,
	})
}

func (h *SectionsHandler) writeError(w http.ResponseWriter, statusCode int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
