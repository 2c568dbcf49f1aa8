package storage

import "time"

// TicketRecord is the registry entry mapping a ticket key to its document
// file within the board.
type TicketRecord struct {
	ID        string // UUID
	Key       string // Normalized ticket key, e.g. "MDT-066"
	Project   string // Project code, e.g. "MDT"
	RelPath   string // Relative path from the board root
	Title     string
	UpdatedAt time.Time
}
