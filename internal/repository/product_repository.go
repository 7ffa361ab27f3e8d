package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petcare-service/internal/domain"
)

// ProductRepository manages the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type productRepository struct {
	db      DBTX
	timeout time.Duration
}

// NewProductRepository builds the repository.
func NewProductRepository(db DBTX, queryTimeout time.Duration) ProductRepository {
	return &productRepository{db: db, timeout: queryTimeout}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO productos (nombre, descripcion, precio, stock, imagen)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	if err := r.db.QueryRow(ctx, query,
		product.Nombre,
		product.Descripcion,
		product.Precio,
		product.Stock,
		product.Imagen,
	).Scan(&product.ID, &product.CreatedAt); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID returns pgx.ErrNoRows when the product does not exist.
func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id, nombre, descripcion, precio, stock, imagen, created_at
        FROM productos WHERE id = $1`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	var product domain.Product
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Nombre,
		&product.Descripcion,
		&product.Precio,
		&product.Stock,
		&product.Imagen,
		&product.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `
        SELECT id, nombre, descripcion, precio, stock, imagen, created_at
        FROM productos ORDER BY nombre`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Stock, &p.Imagen, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
