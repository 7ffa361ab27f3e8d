package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petcare-service/internal/domain"
)

// Unique constraint names declared by the usuarios table.
const (
	ConstraintUserEmail = "usuarios_email_key"
	ConstraintUserRut   = "usuarios_rut_key"
)

// UserRepository is the credential store for registered users.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByRut(ctx context.Context, rut string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

type userRepository struct {
	db      DBTX
	timeout time.Duration
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX, queryTimeout time.Duration) UserRepository {
	return &userRepository{db: db, timeout: queryTimeout}
}

const userColumns = `id, email, password, nombre, apellidos, rut, rol, created_at`

// Create inserts the user. An empty Rol falls back to the column default.
// A concurrent duplicate surfaces as *UniqueViolationError.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO usuarios (email, password, nombre, apellidos, rut, rol)
        VALUES ($1, $2, $3, $4, $5, COALESCE(NULLIF($6, ''), 'user'))
        RETURNING id, rol, created_at`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Nombre,
		user.Apellidos,
		user.Rut,
		string(user.Rol),
	).Scan(&user.ID, &user.Rol, &user.CreatedAt)
	if err != nil {
		if uv, ok := asUniqueViolation(err); ok {
			return uv
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios WHERE email = $1`
	return r.findOne(ctx, "find user by email", query, email)
}

func (r *userRepository) FindByRut(ctx context.Context, rut string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios WHERE rut = $1`
	return r.findOne(ctx, "find user by rut", query, rut)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`
	return r.findOne(ctx, "find user by id", query, id)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios ORDER BY created_at`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

// DeleteByEmail returns the number of removed rows (0 or 1).
func (r *userRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	const query = `DELETE FROM usuarios WHERE email = $1`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	cmd, err := r.db.Exec(ctx, query, email)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *userRepository) findOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	var user domain.User
	if err := scanUser(r.db.QueryRow(ctx, query, arg), &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

func scanUser(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Nombre,
		&user.Apellidos,
		&user.Rut,
		&user.Rol,
		&user.CreatedAt,
	)
}
