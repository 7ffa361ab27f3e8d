package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petcare-service/internal/domain"
)

// PurchaseRepository manages purchases and their detail lines.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	GetByID(ctx context.Context, id string) (*domain.Purchase, error)
	List(ctx context.Context) ([]domain.Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Purchase, error)
	ListDetails(ctx context.Context, purchaseID string) ([]domain.PurchaseDetail, error)
}

type purchaseRepository struct {
	db      DBTX
	timeout time.Duration
}

// NewPurchaseRepository builds the repository.
func NewPurchaseRepository(db DBTX, queryTimeout time.Duration) PurchaseRepository {
	return &purchaseRepository{db: db, timeout: queryTimeout}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	const query = `
        INSERT INTO compras (usuario_id, total)
        VALUES ($1, $2)
        RETURNING id, fecha`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	if err := r.db.QueryRow(ctx, query, purchase.UsuarioID, purchase.Total).
		Scan(&purchase.ID, &purchase.Fecha); err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// GetByID returns pgx.ErrNoRows when the purchase does not exist.
func (r *purchaseRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	const query = `
        SELECT id, usuario_id, total, fecha
        FROM compras WHERE id = $1`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	var purchase domain.Purchase
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&purchase.ID,
		&purchase.UsuarioID,
		&purchase.Total,
		&purchase.Fecha,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &purchase, nil
}

func (r *purchaseRepository) List(ctx context.Context) ([]domain.Purchase, error) {
	const query = `
        SELECT id, usuario_id, total, fecha
        FROM compras ORDER BY fecha DESC`
	return r.list(ctx, query)
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Purchase, error) {
	const query = `
        SELECT id, usuario_id, total, fecha
        FROM compras WHERE usuario_id = $1 ORDER BY fecha DESC`
	return r.list(ctx, query, userID)
}

func (r *purchaseRepository) list(ctx context.Context, query string, args ...any) ([]domain.Purchase, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var result []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.UsuarioID, &p.Total, &p.Fecha); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *purchaseRepository) ListDetails(ctx context.Context, purchaseID string) ([]domain.PurchaseDetail, error) {
	const query = `
        SELECT id, compra_id, producto_id, cantidad, precio_unitario
        FROM detalles_compra WHERE compra_id = $1`

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase details: %w", err)
	}
	defer rows.Close()

	var result []domain.PurchaseDetail
	for rows.Next() {
		var d domain.PurchaseDetail
		if err := rows.Scan(&d.ID, &d.CompraID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
