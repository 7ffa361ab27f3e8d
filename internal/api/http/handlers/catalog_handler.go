package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petcare-service/internal/api/dto"
	"github.com/spec-kit/petcare-service/internal/service"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

// CatalogHandler serves pets and products.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CreatePet handles POST /api/mascotas.
func (h *CatalogHandler) CreatePet(c *fiber.Ctx) error {
	var req dto.PetCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	pet, err := h.catalog.CreatePet(c.UserContext(), service.PetCreateInput{
		Nombre: req.Nombre,
		Edad:   req.Edad,
		Raza:   req.Raza,
		Tipo:   req.Tipo,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPetResponse(pet)})
}

func (h *CatalogHandler) ListPets(c *fiber.Ctx) error {
	pets, err := h.catalog.ListPets(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.PetResponse, 0, len(pets))
	for i := range pets {
		resp = append(resp, dto.NewPetResponse(&pets[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *CatalogHandler) GetPet(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	pet, err := h.catalog.GetPet(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPetResponse(pet)})
}

// CreateProduct handles POST /api/productos.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	product, err := h.catalog.CreateProduct(c.UserContext(), service.ProductCreateInput{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Stock:       req.Stock,
		Imagen:      req.Imagen,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, dto.NewProductResponse(&products[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	product, err := h.catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}
