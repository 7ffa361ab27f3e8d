// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petcare-service/internal/domain"
	"github.com/spec-kit/petcare-service/internal/repository"
)

// Users is an in-memory repository.UserRepository that enforces the same
// unique constraints as the usuarios table and counts every call.
type Users struct {
	mu    sync.Mutex
	rows  []domain.User
	calls int
	Err   error
	// BeforeCreate runs inside Create before constraints are checked.
	BeforeCreate func()
}

var _ repository.UserRepository = (*Users)(nil)

func NewUsers() *Users { return &Users{} }

// Calls returns the number of repository calls made so far.
func (u *Users) Calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

// Insert stores a user directly, bypassing constraint checks.
func (u *Users) Insert(user domain.User) domain.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Rol == "" {
		user.Rol = domain.RoleUser
	}
	u.rows = append(u.rows, user)
	return user
}

func (u *Users) Create(_ context.Context, user *domain.User) error {
	if u.BeforeCreate != nil {
		u.BeforeCreate()
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.Err != nil {
		return u.Err
	}
	for _, row := range u.rows {
		switch {
		case row.Email == user.Email:
			return &repository.UniqueViolationError{Constraint: repository.ConstraintUserEmail}
		case row.Rut == user.Rut:
			return &repository.UniqueViolationError{Constraint: repository.ConstraintUserRut}
		}
	}
	user.ID = uuid.NewString()
	if user.Rol == "" {
		user.Rol = domain.RoleUser
	}
	user.CreatedAt = time.Now()
	u.rows = append(u.rows, *user)
	return nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return u.find(func(row domain.User) bool { return row.Email == email })
}

func (u *Users) FindByRut(_ context.Context, rut string) (*domain.User, error) {
	return u.find(func(row domain.User) bool { return row.Rut == rut })
}

func (u *Users) FindByID(_ context.Context, id string) (*domain.User, error) {
	return u.find(func(row domain.User) bool { return row.ID == id })
}

func (u *Users) List(_ context.Context) ([]domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.Err != nil {
		return nil, u.Err
	}
	return append([]domain.User(nil), u.rows...), nil
}

func (u *Users) DeleteByEmail(_ context.Context, email string) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.Err != nil {
		return 0, u.Err
	}
	for i, row := range u.rows {
		if row.Email == email {
			u.rows = append(u.rows[:i], u.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (u *Users) find(match func(domain.User) bool) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.Err != nil {
		return nil, u.Err
	}
	for _, row := range u.rows {
		if match(row) {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

// Pets is an in-memory repository.PetRepository.
type Pets struct {
	mu   sync.Mutex
	rows []domain.Pet
	Err  error
}

var _ repository.PetRepository = (*Pets)(nil)

func (p *Pets) Create(_ context.Context, pet *domain.Pet) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	pet.ID = uuid.NewString()
	pet.CreatedAt = time.Now()
	p.rows = append(p.rows, *pet)
	return nil
}

func (p *Pets) GetByID(_ context.Context, id string) (*domain.Pet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	for _, row := range p.rows {
		if row.ID == id {
			found := row
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (p *Pets) List(_ context.Context) ([]domain.Pet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Pet(nil), p.rows...), p.Err
}

// Products is an in-memory repository.ProductRepository.
type Products struct {
	mu   sync.Mutex
	rows []domain.Product
	Err  error
}

var _ repository.ProductRepository = (*Products)(nil)

func (p *Products) Create(_ context.Context, product *domain.Product) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	product.ID = uuid.NewString()
	product.CreatedAt = time.Now()
	p.rows = append(p.rows, *product)
	return nil
}

func (p *Products) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	for _, row := range p.rows {
		if row.ID == id {
			found := row
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (p *Products) List(_ context.Context) ([]domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Product(nil), p.rows...), p.Err
}

// Purchases is an in-memory repository.PurchaseRepository.
type Purchases struct {
	mu      sync.Mutex
	rows    []domain.Purchase
	Details map[string][]domain.PurchaseDetail
	Err     error
}

var _ repository.PurchaseRepository = (*Purchases)(nil)

func (p *Purchases) Create(_ context.Context, purchase *domain.Purchase) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	purchase.ID = uuid.NewString()
	purchase.Fecha = time.Now()
	p.rows = append(p.rows, *purchase)
	return nil
}

func (p *Purchases) GetByID(_ context.Context, id string) (*domain.Purchase, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	for _, row := range p.rows {
		if row.ID == id {
			found := row
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (p *Purchases) List(_ context.Context) ([]domain.Purchase, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Purchase(nil), p.rows...), p.Err
}

func (p *Purchases) ListByUser(_ context.Context, userID string) ([]domain.Purchase, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var result []domain.Purchase
	for _, row := range p.rows {
		if row.UsuarioID == userID {
			result = append(result, row)
		}
	}
	return result, p.Err
}

func (p *Purchases) ListDetails(_ context.Context, purchaseID string) ([]domain.PurchaseDetail, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Details[purchaseID], p.Err
}

// Contacts is an in-memory repository.ContactRepository.
type Contacts struct {
	mu   sync.Mutex
	rows []domain.ContactMessage
	Err  error
}

var _ repository.ContactRepository = (*Contacts)(nil)

func (c *Contacts) Create(_ context.Context, msg *domain.ContactMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now()
	c.rows = append(c.rows, *msg)
	return nil
}

func (c *Contacts) List(_ context.Context) ([]domain.ContactMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ContactMessage(nil), c.rows...), c.Err
}

// ErrUnavailable simulates a store outage.
var ErrUnavailable = errors.New("store unavailable")
