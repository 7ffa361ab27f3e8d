package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petcare-service/internal/api/dto"
	"github.com/spec-kit/petcare-service/internal/auth"
	"github.com/spec-kit/petcare-service/internal/service"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

// PurchasesHandler serves the authenticated user's purchases.
type PurchasesHandler struct {
	purchases *service.PurchaseService
}

// NewPurchasesHandler constructs handler.
func NewPurchasesHandler(purchases *service.PurchaseService) *PurchasesHandler {
	return &PurchasesHandler{purchases: purchases}
}

// Create handles POST /api/compras.
func (h *PurchasesHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.PurchaseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	purchase, err := h.purchases.Create(c.UserContext(), user, req.Total)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPurchaseResponse(purchase)})
}

// List handles GET /api/compras. Admins see every purchase.
func (h *PurchasesHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	purchases, err := h.purchases.List(c.UserContext(), user)
	if err != nil {
		return err
	}
	resp := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		resp = append(resp, dto.NewPurchaseResponse(&purchases[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *PurchasesHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	purchase, err := h.purchases.Get(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPurchaseResponse(purchase)})
}

// Details handles GET /api/compras/:id/detalles.
func (h *PurchasesHandler) Details(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	details, err := h.purchases.Details(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPurchaseDetailResponses(details)})
}
