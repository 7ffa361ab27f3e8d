package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/petcare-service/internal/domain"
	"github.com/spec-kit/petcare-service/internal/events"
	"github.com/spec-kit/petcare-service/internal/repository/repotest"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

func TestCatalogService_Pets(t *testing.T) {
	svc := NewCatalogService(&repotest.Pets{}, &repotest.Products{})
	ctx := context.Background()

	_, err := svc.CreatePet(ctx, PetCreateInput{Nombre: "", Tipo: "perro", Edad: -1})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeInvalidInput, de.Code)
	assert.Contains(t, de.Details, "nombre")
	assert.Contains(t, de.Details, "edad")

	pet, err := svc.CreatePet(ctx, PetCreateInput{Nombre: " Firulais ", Tipo: "perro", Edad: 3})
	require.NoError(t, err)
	assert.Equal(t, "Firulais", pet.Nombre)

	got, err := svc.GetPet(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.ID, got.ID)

	_, err = svc.GetPet(ctx, "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	pets, err := svc.ListPets(ctx)
	require.NoError(t, err)
	assert.Len(t, pets, 1)
}

func TestCatalogService_Products(t *testing.T) {
	products := &repotest.Products{}
	svc := NewCatalogService(&repotest.Pets{}, products)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductCreateInput{Nombre: "Collar", Precio: 0, Stock: -2})
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Contains(t, de.Details, "precio")
	assert.Contains(t, de.Details, "stock")

	product, err := svc.CreateProduct(ctx, ProductCreateInput{Nombre: "Collar", Precio: 5990, Stock: 3})
	require.NoError(t, err)

	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5990), got.Precio)

	products.Err = repotest.ErrUnavailable
	_, err = svc.ListProducts(ctx)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}

func TestPurchaseService_Visibility(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	published := 0
	dispatcher.Subscribe(events.EventPurchaseCreated, func(context.Context, events.Event) error {
		published++
		return nil
	})
	svc := NewPurchaseService(&repotest.Purchases{}, dispatcher, zap.NewNop())
	ctx := context.Background()

	alice := &domain.User{ID: "u-1", Email: "alice@b.com", Rol: domain.RoleUser}
	bob := &domain.User{ID: "u-2", Email: "bob@b.com", Rol: domain.RoleUser}
	admin := &domain.User{ID: "u-3", Email: "admin@b.com", Rol: domain.RoleAdmin}

	_, err := svc.Create(ctx, alice, 0)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))

	purchase, err := svc.Create(ctx, alice, 7980)
	require.NoError(t, err)
	assert.Equal(t, "u-1", purchase.UsuarioID)
	assert.Equal(t, 1, published)

	_, err = svc.Get(ctx, bob, purchase.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = svc.Get(ctx, admin, purchase.ID)
	assert.NoError(t, err)

	mine, err := svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, mine)

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.Details(ctx, bob, purchase.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestContactService_Submit(t *testing.T) {
	svc := NewContactService(&repotest.Contacts{}, nil, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, ContactInput{Nombre: "Ana", Email: "not-an-email", Mensaje: "Hola"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))

	msg, err := svc.Submit(ctx, ContactInput{Nombre: "Ana", Email: "ana@b.com", Mensaje: "  Hola  "})
	require.NoError(t, err)
	assert.Equal(t, "Hola", msg.Mensaje)

	msgs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "hola", preview("hola", 10))
	assert.Equal(t, "ho…", preview("hola", 2))
}
