package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/petcare-service/internal/domain"
	"github.com/spec-kit/petcare-service/internal/events"
	"github.com/spec-kit/petcare-service/internal/repository"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

// PurchaseService records purchases and exposes them to owners and admins.
type PurchaseService struct {
	purchases  repository.PurchaseRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPurchaseService constructs the service.
func NewPurchaseService(purchases repository.PurchaseRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{purchases: purchases, dispatcher: dispatcher, logger: logger}
}

// Create records a purchase for the buyer.
func (s *PurchaseService) Create(ctx context.Context, buyer *domain.User, total int64) (*domain.Purchase, error) {
	if total <= 0 {
		return nil, apperrors.NewInvalidInput("invalid purchase data", map[string]any{"total": "must be greater than zero"})
	}

	purchase := &domain.Purchase{UsuarioID: buyer.ID, Total: total}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		event := events.NewEvent(events.EventPurchaseCreated, buyer.Email, events.PurchaseCreatedPayload{
			PurchaseID: purchase.ID,
			UserID:     buyer.ID,
			Total:      purchase.Total,
		})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return purchase, nil
}

// List returns every purchase for admins and the caller's own purchases otherwise.
func (s *PurchaseService) List(ctx context.Context, caller *domain.User) ([]domain.Purchase, error) {
	var (
		purchases []domain.Purchase
		err       error
	)
	if caller.IsAdmin() {
		purchases, err = s.purchases.List(ctx)
	} else {
		purchases, err = s.purchases.ListByUser(ctx, caller.ID)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return purchases, nil
}

// Get returns a purchase visible to the caller. Other users' purchases
// are reported as not found.
func (s *PurchaseService) Get(ctx context.Context, caller *domain.User, id string) (*domain.Purchase, error) {
	purchase, err := s.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "purchase")
	}
	if !caller.IsAdmin() && purchase.UsuarioID != caller.ID {
		return nil, apperrors.NewNotFound("purchase", nil)
	}
	return purchase, nil
}

// Details lists the product lines of a purchase visible to the caller.
func (s *PurchaseService) Details(ctx context.Context, caller *domain.User, id string) ([]domain.PurchaseDetail, error) {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return nil, err
	}
	details, err := s.purchases.ListDetails(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return details, nil
}
