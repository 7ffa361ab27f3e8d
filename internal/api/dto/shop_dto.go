package dto

import (
	"time"

	"github.com/spec-kit/petcare-service/internal/domain"
)

// PetCreateRequest payload for new pets.
type PetCreateRequest struct {
	Nombre string `json:"nombre"`
	Edad   int    `json:"edad"`
	Raza   string `json:"raza"`
	Tipo   string `json:"tipo"`
}

type PetResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Edad      int       `json:"edad"`
	Raza      string    `json:"raza"`
	Tipo      string    `json:"tipo"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPetResponse(p *domain.Pet) PetResponse {
	return PetResponse{ID: p.ID, Nombre: p.Nombre, Edad: p.Edad, Raza: p.Raza, Tipo: p.Tipo, CreatedAt: p.CreatedAt}
}

// ProductCreateRequest payload for new products.
type ProductCreateRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Precio      int64  `json:"precio"`
	Stock       int    `json:"stock"`
	Imagen      string `json:"imagen"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Precio      int64     `json:"precio"`
	Stock       int       `json:"stock"`
	Imagen      string    `json:"imagen"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		Imagen:      p.Imagen,
		CreatedAt:   p.CreatedAt,
	}
}

// PurchaseCreateRequest payload for a purchase.
type PurchaseCreateRequest struct {
	Total int64 `json:"total"`
}

type PurchaseResponse struct {
	ID        string    `json:"id"`
	UsuarioID string    `json:"usuario_id"`
	Total     int64     `json:"total"`
	Fecha     time.Time `json:"fecha"`
}

func NewPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{ID: p.ID, UsuarioID: p.UsuarioID, Total: p.Total, Fecha: p.Fecha}
}

type PurchaseDetailResponse struct {
	ID             string `json:"id"`
	ProductoID     string `json:"producto_id"`
	Cantidad       int    `json:"cantidad"`
	PrecioUnitario int64  `json:"precio_unitario"`
}

// ContactRequest payload for the contact form.
type ContactRequest struct {
	Nombre  string `json:"nombre"`
	Email   string `json:"email"`
	Mensaje string `json:"mensaje"`
}

type ContactResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Mensaje   string    `json:"mensaje"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPurchaseDetailResponses(details []domain.PurchaseDetail) []PurchaseDetailResponse {
	out := make([]PurchaseDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, PurchaseDetailResponse{
			ID:             d.ID,
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
		})
	}
	return out
}

func NewContactResponse(m *domain.ContactMessage) ContactResponse {
	return ContactResponse{ID: m.ID, Nombre: m.Nombre, Email: m.Email, Mensaje: m.Mensaje, CreatedAt: m.CreatedAt}
}
