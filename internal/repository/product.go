package repository

import (
	"context"

	"github.com/ErlanBelekov/shop-api/internal/domain"
)

// ProductRepository returns products with their category populated.
type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// SetImages replaces the gallery, keeping the given order.
	SetImages(ctx context.Context, id string, images []string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
