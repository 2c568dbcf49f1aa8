package service

import "time"

// NewSectionServiceWithClock builds a SectionService with a fixed clock so
// tests can assert on the written timestamp.
func NewSectionServiceWithClock(tickets PathResolver, files FileStore, maxContentLength int, now func() time.Time) SectionService {
	return &sectionService{
		tickets:          tickets,
		files:            files,
		maxContentLength: maxContentLength,
		now:              now,
	}
}
