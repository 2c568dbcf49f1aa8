package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"ticketboard/internal/content"
	"ticketboard/internal/section"
	"ticketboard/internal/service"
	"ticketboard/internal/service/mocks"
	"ticketboard/internal/storage"
)

const ticketDoc = `---
code: MDT-001
lastModified: 2025-01-01T00:00:00Z
---
## 1. Description
old text
## 2. Rationale
why
### Functional
f1
## 3. Acceptance Criteria
### Functional
f2
`

const ticketPath = "MDT/MDT-001.md"

var fixedNow = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

func newService(t *testing.T, maxContentLength int) (service.SectionService, *mocks.MockPathResolver, *mocks.MockFileStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	tickets := mocks.NewMockPathResolver(ctrl)
	files := mocks.NewMockFileStore(ctrl)
	svc := service.NewSectionServiceWithClock(tickets, files, maxContentLength, func() time.Time { return fixedNow })
	return svc, tickets, files
}

func expectLoad(tickets *mocks.MockPathResolver, files *mocks.MockFileStore) {
	tickets.EXPECT().ResolvePath(gomock.Any(), "MDT-001").Return(ticketPath, nil)
	files.EXPECT().Read(ticketPath).Return([]byte(ticketDoc), nil)
}

func TestDispatch_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		req  service.Request
	}{
		{"unknown operation", service.Request{Key: "MDT-001", Operation: "frobnicate"}},
		{"get without identifier", service.Request{Key: "MDT-001", Operation: "get"}},
		{"replace without identifier", service.Request{Key: "MDT-001", Operation: "replace", Content: "x"}},
		{"replace without content", service.Request{Key: "MDT-001", Operation: "replace", Identifier: "1. Description"}},
		{"append without content", service.Request{Key: "MDT-001", Operation: "append", Identifier: "1. Description"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(t, 0)
			_, err := svc.Dispatch(context.Background(), tt.req)
			if !errors.Is(err, service.ErrInvalidRequest) {
				t.Errorf("Dispatch() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestDispatch_InvalidKey(t *testing.T) {
	svc, _, _ := newService(t, 0)
	_, err := svc.Dispatch(context.Background(), service.Request{Key: "not a key", Operation: "list"})
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Errorf("Dispatch() error = %v, want ErrInvalidRequest", err)
	}
}

// Keys are normalized before the registry lookup: "mdt-1" resolves as MDT-001.
func TestDispatch_NormalizesKey(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)

	res, err := svc.Dispatch(context.Background(), service.Request{Key: "mdt-1", Operation: "list"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if res.Operation != service.OpList {
		t.Errorf("Operation = %q, want list", res.Operation)
	}
}

func TestList(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)

	entries, err := svc.List(context.Background(), "MDT-001")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	wantPaths := []string{
		"## 1. Description",
		"## 2. Rationale",
		"## 2. Rationale / ### Functional",
		"## 3. Acceptance Criteria",
		"## 3. Acceptance Criteria / ### Functional",
	}
	if len(entries) != len(wantPaths) {
		t.Fatalf("List() returned %d entries, want %d", len(entries), len(wantPaths))
	}
	for i, want := range wantPaths {
		if entries[i].Path != want {
			t.Errorf("entries[%d].Path = %q, want %q", i, entries[i].Path, want)
		}
	}
	if entries[0].Level != 2 || entries[0].Title != "1. Description" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[0].ContentLength != len("old text\n") {
		t.Errorf("entries[0].ContentLength = %d", entries[0].ContentLength)
	}
}

func TestGet(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)

	got, err := svc.Get(context.Background(), "MDT-001", "Description")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Path != "## 1. Description" {
		t.Errorf("Path = %q", got.Path)
	}
	if got.Content != "old text\n" {
		t.Errorf("Content = %q", got.Content)
	}
	if got.ContentLength != len(got.Content) {
		t.Errorf("ContentLength = %d, want %d", got.ContentLength, len(got.Content))
	}
}

func TestModify_ReplaceWritesPatchedDocument(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)

	var written string
	files.EXPECT().Write(ticketPath, gomock.Any()).DoAndReturn(func(path string, data []byte) error {
		written = string(data)
		return nil
	})

	res, err := svc.Modify(context.Background(), service.Request{
		Key:        "MDT-001",
		Operation:  "replace",
		Identifier: "1. Description",
		Content:    "new text\n",
	})
	if err != nil {
		t.Fatalf("Modify() error = %v", err)
	}

	want := strings.ReplaceAll(ticketDoc, "old text", "new text")
	want = strings.ReplaceAll(want, "2025-01-01T00:00:00Z", "2025-03-15T10:30:00Z")
	if written != want {
		t.Errorf("written document:\n%q\nwant:\n%q", written, want)
	}

	if res.Path != "## 1. Description" {
		t.Errorf("Path = %q", res.Path)
	}
	if res.Operation != "replace" {
		t.Errorf("Operation = %q", res.Operation)
	}
	if res.NewContentLength != len("new text\n") {
		t.Errorf("NewContentLength = %d", res.NewContentLength)
	}
	if res.Timestamp != "2025-03-15T10:30:00Z" {
		t.Errorf("Timestamp = %q", res.Timestamp)
	}
}

func TestModify_ReplaceWithRename(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)

	var written string
	files.EXPECT().Write(ticketPath, gomock.Any()).DoAndReturn(func(path string, data []byte) error {
		written = string(data)
		return nil
	})

	res, err := svc.Modify(context.Background(), service.Request{
		Key:        "MDT-001",
		Operation:  "replace",
		Identifier: "1. Description",
		Content:    "## New Name\nBody\n",
	})
	if err != nil {
		t.Fatalf("Modify() error = %v", err)
	}
	if !strings.Contains(written, "## New Name\nBody\n## 2. Rationale") {
		t.Errorf("written document missing renamed section:\n%q", written)
	}
	if strings.Contains(written, "1. Description") {
		t.Errorf("written document still carries the old header:\n%q", written)
	}
	if res.Path != "## New Name" {
		t.Errorf("Path = %q, want the new header", res.Path)
	}
}

func TestModify_AppendStripsLeadingHeader(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)

	var written string
	files.EXPECT().Write(ticketPath, gomock.Any()).DoAndReturn(func(path string, data []byte) error {
		written = string(data)
		return nil
	})

	_, err := svc.Modify(context.Background(), service.Request{
		Key:        "MDT-001",
		Operation:  "append",
		Identifier: "1. Description",
		Content:    "## 1. Description\nextra\n",
	})
	if err != nil {
		t.Fatalf("Modify() error = %v", err)
	}
	if !strings.Contains(written, "old text\nextra\n## 2. Rationale") {
		t.Errorf("written = %q", written)
	}
	if strings.Count(written, "## 1. Description") != 1 {
		t.Errorf("header duplicated in written document:\n%q", written)
	}
}

func TestModify_AppendKeepsHeaderWhenDisabled(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)

	var written string
	files.EXPECT().Write(ticketPath, gomock.Any()).DoAndReturn(func(path string, data []byte) error {
		written = string(data)
		return nil
	})

	strip := false
	_, err := svc.Modify(context.Background(), service.Request{
		Key:                "MDT-001",
		Operation:          "append",
		Identifier:         "1. Description",
		Content:            "## 1. Description\nextra\n",
		StripLeadingHeader: &strip,
	})
	if err != nil {
		t.Fatalf("Modify() error = %v", err)
	}
	if strings.Count(written, "## 1. Description") != 2 {
		t.Errorf("expected the leading header to be kept verbatim:\n%q", written)
	}
}

func TestModify_Prepend(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)

	var written string
	files.EXPECT().Write(ticketPath, gomock.Any()).DoAndReturn(func(path string, data []byte) error {
		written = string(data)
		return nil
	})

	_, err := svc.Modify(context.Background(), service.Request{
		Key:        "MDT-001",
		Operation:  "prepend",
		Identifier: "1. Description",
		Content:    "first\n",
	})
	if err != nil {
		t.Fatalf("Modify() error = %v", err)
	}
	if !strings.Contains(written, "## 1. Description\nfirst\nold text\n") {
		t.Errorf("written = %q", written)
	}
}

// The deprecated "update" alias routes to replace.
func TestDispatch_UpdateAlias(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)
	files.EXPECT().Write(ticketPath, gomock.Any()).Return(nil)

	res, err := svc.Dispatch(context.Background(), service.Request{
		Key:        "MDT-001",
		Operation:  "update",
		Identifier: "1. Description",
		Content:    "new text\n",
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if res.Operation != service.OpReplace {
		t.Errorf("Operation = %q, want replace", res.Operation)
	}
	if res.Mutate == nil || res.Mutate.Operation != "replace" {
		t.Errorf("Mutate = %+v, want replace result", res.Mutate)
	}
}

func TestModify_SectionNotFound(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)
	// No Write expectation: a failed resolution must not persist anything.

	_, err := svc.Modify(context.Background(), service.Request{
		Key:        "MDT-001",
		Operation:  "replace",
		Identifier: "Nonexistent Thing",
		Content:    "x\n",
	})
	var notFound *section.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Modify() error = %v, want NotFoundError", err)
	}
	if len(notFound.Suggestions) == 0 {
		t.Error("NotFoundError without suggestions")
	}
}

func TestModify_AmbiguousIdentifier(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)

	_, err := svc.Modify(context.Background(), service.Request{
		Key:        "MDT-001",
		Operation:  "replace",
		Identifier: "Functional",
		Content:    "x\n",
	})
	var ambiguous *section.AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("Modify() error = %v, want AmbiguousError", err)
	}
	if len(ambiguous.Candidates) != 2 {
		t.Errorf("Candidates = %v, want two full paths", ambiguous.Candidates)
	}
}

func TestModify_TicketNotFound(t *testing.T) {
	svc, tickets, _ := newService(t, 0)
	tickets.EXPECT().ResolvePath(gomock.Any(), "MDT-099").
		Return("", fmt.Errorf("lookup: %w", storage.ErrNotFound))

	_, err := svc.Modify(context.Background(), service.Request{
		Key:        "MDT-099",
		Operation:  "replace",
		Identifier: "1. Description",
		Content:    "x\n",
	})
	if !errors.Is(err, service.ErrTicketNotFound) {
		t.Errorf("Modify() error = %v, want ErrTicketNotFound", err)
	}
}

func TestModify_ContentTooLarge(t *testing.T) {
	svc, tickets, files := newService(t, 10)
	expectLoad(tickets, files)

	_, err := svc.Modify(context.Background(), service.Request{
		Key:        "MDT-001",
		Operation:  "replace",
		Identifier: "1. Description",
		Content:    strings.Repeat("a", 11),
	})
	var tooLarge *content.TooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("Modify() error = %v, want TooLargeError", err)
	}
}

func TestModify_WriteFailurePropagates(t *testing.T) {
	svc, tickets, files := newService(t, 0)
	expectLoad(tickets, files)
	files.EXPECT().Write(ticketPath, gomock.Any()).Return(fmt.Errorf("disk full"))

	_, err := svc.Modify(context.Background(), service.Request{
		Key:        "MDT-001",
		Operation:  "replace",
		Identifier: "1. Description",
		Content:    "x\n",
	})
	if err == nil {
		t.Fatal("Modify() expected error")
	}
	if kind, _ := service.Classify(err); kind != service.KindIOError {
		t.Errorf("Classify() = %q, want %q", kind, service.KindIOError)
	}
}
