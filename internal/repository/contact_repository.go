package repository

import (
	"context"
	"time"

	"portfolio/internal/models"
)

type ContactRepository struct {
	db DB
}

func NewContactRepository(db DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m models.ContactMessage) error {
	const query = `
		INSERT INTO contact_messages (id, name, email, subject, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, m.ID, m.Name, m.Email, m.Subject, m.Message, m.IsRead, m.CreatedAt)
	return err
}

// List returns messages newest first.
func (r *ContactRepository) List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	const query = `
		SELECT id, name, email, subject, message, is_read, created_at
		FROM contact_messages
		WHERE ($1 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ContactMessage, 0)
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *ContactRepository) MarkRead(ctx context.Context, id string) error {
	return execExpectingRow(ctx, r.db, `UPDATE contact_messages SET is_read = TRUE WHERE id = $1`, id)
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return execExpectingRow(ctx, r.db, `DELETE FROM contact_messages WHERE id = $1`, id)
}

// DeleteReadBefore purges read messages created before cutoff and reports how many went.
func (r *ContactRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE is_read = TRUE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
