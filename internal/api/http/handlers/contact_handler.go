package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petcare-service/internal/api/dto"
	"github.com/spec-kit/petcare-service/internal/service"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

type ContactHandler struct {
	contact *service.ContactService
}

func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Submit handles POST /api/contacto.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	msg, err := h.contact.Submit(c.UserContext(), service.ContactInput{
		Nombre:  req.Nombre,
		Email:   req.Email,
		Mensaje: req.Mensaje,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewContactResponse(msg)})
}

// List handles GET /api/contacto.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	msgs, err := h.contact.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.ContactResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, dto.NewContactResponse(&msgs[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}
