package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petcare-service/internal/domain"
)

// PetRepository manages pet persistence.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	GetByID(ctx context.Context, id string) (*domain.Pet, error)
	List(ctx context.Context) ([]domain.Pet, error)
}

type petRepository struct {
	db      DBTX
	timeout time.Duration
}

// NewPetRepository builds the repository.
func NewPetRepository(db DBTX, queryTimeout time.Duration) PetRepository {
	return &petRepository{db: db, timeout: queryTimeout}
}

func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	const query = `
        INSERT INTO mascotas (nombre, edad, raza, tipo)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	if err := r.db.QueryRow(ctx, query,
		pet.Nombre,
		pet.Edad,
		pet.Raza,
		pet.Tipo,
	).Scan(&pet.ID, &pet.CreatedAt); err != nil {
		return fmt.Errorf("create pet: %w", err)
	}
	return nil
}

// GetByID returns pgx.ErrNoRows when the pet does not exist.
func (r *petRepository) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	const query = `
        SELECT id, nombre, edad, raza, tipo, created_at
        FROM mascotas WHERE id = $1`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	var pet domain.Pet
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&pet.ID,
		&pet.Nombre,
		&pet.Edad,
		&pet.Raza,
		&pet.Tipo,
		&pet.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get pet: %w", err)
	}
	return &pet, nil
}

func (r *petRepository) List(ctx context.Context) ([]domain.Pet, error) {
	const query = `
        SELECT id, nombre, edad, raza, tipo, created_at
        FROM mascotas ORDER BY created_at`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()

	var result []domain.Pet
	for rows.Next() {
		var pet domain.Pet
		if err := rows.Scan(&pet.ID, &pet.Nombre, &pet.Edad, &pet.Raza, &pet.Tipo, &pet.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, pet)
	}
	return result, rows.Err()
}
