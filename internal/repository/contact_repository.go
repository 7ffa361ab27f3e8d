package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/spec-kit/petcare-service/internal/domain"
)

// ContactRepository stores messages from the contact form.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	List(ctx context.Context) ([]domain.ContactMessage, error)
}

type contactRepository struct {
	db      DBTX
	timeout time.Duration
}

// NewContactRepository builds the repository.
func NewContactRepository(db DBTX, queryTimeout time.Duration) ContactRepository {
	return &contactRepository{db: db, timeout: queryTimeout}
}

func (r *contactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	const query = `
        INSERT INTO contactos (nombre, email, mensaje)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	if err := r.db.QueryRow(ctx, query, msg.Nombre, msg.Email, msg.Mensaje).
		Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

func (r *contactRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	const query = `
        SELECT id, nombre, email, mensaje, created_at
        FROM contactos ORDER BY created_at DESC`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var result []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Email, &m.Mensaje, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
