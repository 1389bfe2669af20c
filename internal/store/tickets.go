package store

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is one created-issue record.
type Ticket struct {
	ID        string
	Key       string
	Summary   string
	Priority  string
	Epic      string
	CreatedAt time.Time
}

// RecordTicket inserts a new ticket record and returns its id.
func (s *Store) RecordTicket(key, summary, priority, epic string) (string, error) {
	id := uuid.NewString()
	query := `INSERT INTO tickets (id, key, summary, priority, epic, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, id, key, summary, priority, epic, time.Now())
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListTickets retrieves the most recent records, newest first.
func (s *Store) ListTickets(limit int) ([]*Ticket, error) {
	query := `SELECT id, key, summary, priority, epic, created_at FROM tickets ORDER BY created_at DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.Key, &t.Summary, &t.Priority, &t.Epic, &t.CreatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, &t)
	}
	return tickets, rows.Err()
}
