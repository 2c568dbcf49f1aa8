package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_path_resolver.go -package=mocks ticketboard/internal/service PathResolver
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_file_store.go -package=mocks ticketboard/internal/service FileStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_section_service.go -package=mocks -mock_names=SectionService=MockSectionService ticketboard/internal/service SectionService

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"ticketboard/internal/content"
	"ticketboard/internal/contextutil"
	"ticketboard/internal/document"
	"ticketboard/internal/mutate"
	"ticketboard/internal/section"
	"ticketboard/internal/storage"
)

// PathResolver maps a normalized ticket key to the document's path within
// the board. Implementations return an error wrapping storage.ErrNotFound
// when no ticket matches.
type PathResolver interface {
	ResolvePath(ctx context.Context, key string) (string, error)
}

// FileStore reads and writes whole documents. Write must be all-or-nothing:
// a failed write leaves the previous file intact.
type FileStore interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
}

// Operation is a section operation name.
type Operation string

const (
	OpList    Operation = "list"
	OpGet     Operation = "get"
	OpReplace Operation = "replace"
	OpAppend  Operation = "append"
	OpPrepend Operation = "prepend"
)

// legacyUpdate is a deprecated alias for replace, accepted for callers of
// the old tooling.
const legacyUpdate = "update"

// Request is a section operation request against one ticket document.
type Request struct {
	Key        string `json:"key"`
	Operation  string `json:"operation"`
	Identifier string `json:"identifier,omitempty"`
	Content    string `json:"content,omitempty"`

	// StripLeadingHeader controls whether append/prepend discard a leading
	// same-level heading from the content instead of inserting it
	// mid-document. Defaults to true, matching the legacy behavior.
	StripLeadingHeader *bool `json:"stripLeadingHeader,omitempty"`
}

// ListEntry describes one section, in document order.
type ListEntry struct {
	Path          string `json:"path"`
	Title         string `json:"title"`
	Level         int    `json:"level"`
	ContentLength int    `json:"contentLength"`
}

// GetResult is the content of one resolved section.
type GetResult struct {
	Path          string `json:"path"`
	ContentLength int    `json:"contentLength"`
	Content       string `json:"content"`
}

// MutateResult reports a successful replace/append/prepend.
type MutateResult struct {
	Path             string   `json:"path"`
	Operation        string   `json:"operation"`
	NewContentLength int      `json:"newContentLength"`
	Timestamp        string   `json:"timestamp"`
	Warnings         []string `json:"warnings,omitempty"`
}

// Result is the outcome of a dispatched request; exactly one of the payload
// fields is set, according to Operation.
type Result struct {
	Operation Operation     `json:"operation"`
	List      []ListEntry   `json:"list,omitempty"`
	Get       *GetResult    `json:"get,omitempty"`
	Mutate    *MutateResult `json:"mutate,omitempty"`
}

// SectionService exposes the section addressing and mutation engine.
//
// The engine provides no cross-process write coordination: callers must
// ensure at most one in-flight mutation per document (for example with a
// single-writer queue per ticket key). Concurrent mutating calls against
// the same file can lose updates.
type SectionService interface {
	// List returns every section of the ticket document in document order.
	List(ctx context.Context, key string) ([]ListEntry, error)
	// Get returns the content span of the section the identifier resolves to.
	Get(ctx context.Context, key, identifier string) (*GetResult, error)
	// Modify applies a replace/append/prepend request and persists the
	// rewritten document. The document is either fully rewritten or left
	// untouched; no error path persists a partial mutation.
	Modify(ctx context.Context, req Request) (*MutateResult, error)
	// Dispatch validates the request shape and routes it to the operation.
	Dispatch(ctx context.Context, req Request) (*Result, error)
}

// sectionService implements SectionService. It holds no per-document state;
// every call re-reads and re-parses the file.
type sectionService struct {
	tickets          PathResolver
	files            FileStore
	maxContentLength int
	now              func() time.Time
}

// NewSectionService creates a SectionService. A maxContentLength of zero
// falls back to content.DefaultMaxLength.
func NewSectionService(tickets PathResolver, files FileStore, maxContentLength int) SectionService {
	return &sectionService{
		tickets:          tickets,
		files:            files,
		maxContentLength: maxContentLength,
		now:              time.Now,
	}
}

// Dispatch validates the operation name and per-operation required fields,
// then routes to the minimal component chain.
func (s *sectionService) Dispatch(ctx context.Context, req Request) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	op := strings.ToLower(strings.TrimSpace(req.Operation))
	if op == legacyUpdate {
		logger.WarnContext(ctx, "deprecated operation alias", "alias", legacyUpdate, "use", string(OpReplace))
		op = string(OpReplace)
	}

	switch Operation(op) {
	case OpList:
		entries, err := s.List(ctx, req.Key)
		if err != nil {
			return nil, err
		}
		return &Result{Operation: OpList, List: entries}, nil

	case OpGet:
		if strings.TrimSpace(req.Identifier) == "" {
			return nil, &RequestError{Field: "identifier", Message: "required for get"}
		}
		get, err := s.Get(ctx, req.Key, req.Identifier)
		if err != nil {
			return nil, err
		}
		return &Result{Operation: OpGet, Get: get}, nil

	case OpReplace, OpAppend, OpPrepend:
		if strings.TrimSpace(req.Identifier) == "" {
			return nil, &RequestError{Field: "identifier", Message: "required for " + op}
		}
		if req.Content == "" {
			return nil, &RequestError{Field: "content", Message: "required for " + op}
		}
		req.Operation = op
		mut, err := s.Modify(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Result{Operation: Operation(op), Mutate: mut}, nil

	default:
		return nil, &RequestError{Field: "operation", Message: fmt.Sprintf("unknown operation %q", req.Operation)}
	}
}

// load resolves the ticket key, reads the file, and parses it.
func (s *sectionService) load(ctx context.Context, rawKey string) (key, path string, doc *document.Document, err error) {
	_, key, err = NormalizeKey(rawKey)
	if err != nil {
		return "", "", nil, err
	}

	path, err = s.tickets.ResolvePath(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", "", nil, fmt.Errorf("%s: %w", key, ErrTicketNotFound)
		}
		return "", "", nil, WrapError(err, "resolve ticket "+key)
	}

	raw, err := s.files.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", nil, fmt.Errorf("%s (%s): %w", key, path, ErrTicketNotFound)
		}
		return "", "", nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err = document.Parse(string(raw))
	if err != nil {
		return "", "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return key, path, doc, nil
}

func (s *sectionService) List(ctx context.Context, key string) ([]ListEntry, error) {
	_, _, doc, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	entries := make([]ListEntry, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		entries = append(entries, ListEntry{
			Path:          section.FormatPath(doc, sec.ID),
			Title:         sec.Title,
			Level:         sec.Level,
			ContentLength: len(doc.Content(sec.ID)),
		})
	}
	return entries, nil
}

func (s *sectionService) Get(ctx context.Context, key, identifier string) (*GetResult, error) {
	_, _, doc, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	id, err := section.Resolve(doc, identifier)
	if err != nil {
		return nil, err
	}
	raw := doc.Content(id)
	return &GetResult{
		Path:          section.FormatPath(doc, id),
		ContentLength: len(raw),
		Content:       raw,
	}, nil
}

func (s *sectionService) Modify(ctx context.Context, req Request) (*MutateResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	op := Operation(strings.ToLower(strings.TrimSpace(req.Operation)))
	switch op {
	case OpReplace, OpAppend, OpPrepend:
	default:
		return nil, &RequestError{Field: "operation", Message: fmt.Sprintf("%q is not a mutating operation", req.Operation)}
	}

	key, path, doc, err := s.load(ctx, req.Key)
	if err != nil {
		return nil, err
	}

	val := section.Validate(doc, req.Identifier)
	if !val.Valid {
		if len(val.Errors) > 0 {
			return nil, &RequestError{Field: "identifier", Message: val.Errors[0]}
		}
		return nil, &section.NotFoundError{
			Identifier:  strings.TrimSpace(req.Identifier),
			Suggestions: val.Suggestions,
		}
	}

	id, err := section.Resolve(doc, val.Normalized)
	if err != nil {
		return nil, err
	}

	processed, err := content.Process(req.Content, s.maxContentLength)
	if err != nil {
		return nil, err
	}

	level := doc.Sections[id].Level
	var newBody string
	switch op {
	case OpReplace:
		ren := content.DetectRename(level, processed.Content)
		if ren.Found {
			logger.InfoContext(ctx, "section rename detected", "key", key, "title", ren.Title)
		}
		newBody = mutate.Replace(doc, id, processed.Content, ren)

	case OpAppend, OpPrepend:
		insert := processed.Content
		if req.StripLeadingHeader == nil || *req.StripLeadingHeader {
			if ren := content.DetectRename(level, processed.Content); ren.Found {
				logger.DebugContext(ctx, "stripped leading same-level heading", "key", key, "heading", ren.HeaderLine)
				insert = ren.Body
			}
		}
		if op == OpAppend {
			newBody = mutate.Append(doc, id, insert)
		} else {
			newBody = mutate.Prepend(doc, id, insert)
		}
	}

	now := s.now()
	frontmatter := document.PatchTimestamp(doc.Frontmatter, now)
	out := document.Assemble(frontmatter, newBody)

	if err := s.files.Write(path, []byte(out)); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	// The target keeps its arena index: every heading before it is
	// untouched and inserted headings fall inside its span.
	updated, err := document.Parse(out)
	if err != nil {
		return nil, WrapError(err, "reparse after mutation")
	}
	if id >= len(updated.Sections) {
		return nil, fmt.Errorf("reparse after mutation: section %d out of range", id)
	}

	logger.InfoContext(ctx, "section mutated",
		"key", key,
		"operation", string(op),
		"path", section.FormatPath(updated, id),
		"content_length", len(updated.Content(id)),
	)
	return &MutateResult{
		Path:             section.FormatPath(updated, id),
		Operation:        string(op),
		NewContentLength: len(updated.Content(id)),
		Timestamp:        now.UTC().Format(time.RFC3339),
		Warnings:         processed.Warnings,
	}, nil
}
