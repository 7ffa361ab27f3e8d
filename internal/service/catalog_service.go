package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petcare-service/internal/domain"
	"github.com/spec-kit/petcare-service/internal/repository"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

// PetCreateInput describes pet creation payload.
type PetCreateInput struct {
	Nombre string
	Edad   int
	Raza   string
	Tipo   string
}

// ProductCreateInput describes product creation payload.
type ProductCreateInput struct {
	Nombre      string
	Descripcion string
	Precio      int64
	Stock       int
	Imagen      string
}

// CatalogService manages pets and products.
type CatalogService struct {
	pets     repository.PetRepository
	products repository.ProductRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(pets repository.PetRepository, products repository.ProductRepository) *CatalogService {
	return &CatalogService{pets: pets, products: products}
}

// CreatePet validates and stores a pet record.
func (s *CatalogService) CreatePet(ctx context.Context, in PetCreateInput) (*domain.Pet, error) {
	errs := fieldErrors{}
	errs.required("nombre", in.Nombre)
	errs.required("tipo", in.Tipo)
	if in.Edad < 0 {
		errs["edad"] = "must not be negative"
	}
	if err := errs.err("invalid pet data"); err != nil {
		return nil, err
	}

	pet := &domain.Pet{
		Nombre: strings.TrimSpace(in.Nombre),
		Edad:   in.Edad,
		Raza:   strings.TrimSpace(in.Raza),
		Tipo:   strings.TrimSpace(in.Tipo),
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return pet, nil
}

func (s *CatalogService) ListPets(ctx context.Context) ([]domain.Pet, error) {
	pets, err := s.pets.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return pets, nil
}

func (s *CatalogService) GetPet(ctx context.Context, id string) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "pet")
	}
	return pet, nil
}

// CreateProduct validates and stores a catalog product.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductCreateInput) (*domain.Product, error) {
	errs := fieldErrors{}
	errs.required("nombre", in.Nombre)
	if in.Precio <= 0 {
		errs["precio"] = "must be greater than zero"
	}
	if in.Stock < 0 {
		errs["stock"] = "must not be negative"
	}
	if err := errs.err("invalid product data"); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Nombre:      strings.TrimSpace(in.Nombre),
		Descripcion: strings.TrimSpace(in.Descripcion),
		Precio:      in.Precio,
		Stock:       in.Stock,
		Imagen:      strings.TrimSpace(in.Imagen),
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "product")
	}
	return product, nil
}

func notFoundOrInternal(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.NewInternalError(err)
}
