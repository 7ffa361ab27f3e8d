package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

// idParam reads a UUID path parameter.
func idParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewInvalidInput("invalid id", map[string]any{name: raw})
	}
	return id.String(), nil
}
