package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// TicketStore provides registry operations over ticket records.
type TicketStore interface {
	// ResolvePath returns the board-relative path of the ticket's document.
	// Returns ErrNotFound when the key is unknown.
	ResolvePath(ctx context.Context, key string) (string, error)
	// GetByKey returns the full registry record for a ticket key.
	GetByKey(ctx context.Context, key string) (TicketRecord, error)
	// Upsert inserts or updates a ticket record keyed by its ticket key.
	Upsert(ctx context.Context, ticket *TicketRecord) error
	// ListByProject returns all tickets of a project ordered by key.
	ListByProject(ctx context.Context, project string) ([]TicketRecord, error)
}

// TicketRepo implements TicketStore on SQLite.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo creates a new TicketRepo.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

func (r *TicketRepo) ResolvePath(ctx context.Context, key string) (string, error) {
	var relPath string
	err := r.db.QueryRowContext(ctx,
		"SELECT rel_path FROM tickets WHERE key = ?",
		key,
	).Scan(&relPath)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("ticket %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return relPath, nil
}

func (r *TicketRepo) GetByKey(ctx context.Context, key string) (TicketRecord, error) {
	var t TicketRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, key, project, rel_path, title, updated_at FROM tickets WHERE key = ?",
		key,
	).Scan(&t.ID, &t.Key, &t.Project, &t.RelPath, &t.Title, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return TicketRecord{}, fmt.Errorf("ticket %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return TicketRecord{}, err
	}
	return t, nil
}

func (r *TicketRepo) Upsert(ctx context.Context, ticket *TicketRecord) error {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (id, key, project, rel_path, title)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			project = excluded.project,
			rel_path = excluded.rel_path,
			title = excluded.title,
			updated_at = CURRENT_TIMESTAMP`,
		ticket.ID, ticket.Key, ticket.Project, ticket.RelPath, ticket.Title,
	)
	return err
}

func (r *TicketRepo) ListByProject(ctx context.Context, project string) ([]TicketRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, key, project, rel_path, title, updated_at FROM tickets WHERE project = ? ORDER BY key",
		project,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []TicketRecord
	for rows.Next() {
		var t TicketRecord
		if err := rows.Scan(&t.ID, &t.Key, &t.Project, &t.RelPath, &t.Title, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
