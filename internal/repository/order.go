package repository

import (
	"context"

	"github.com/ErlanBelekov/shop-api/internal/domain"
)

type OrderRepository interface {
	// List returns orders newest first with the user populated. A non-empty
	// userID restricts the listing to that user and populates line items.
	List(ctx context.Context, userID string) ([]*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// Create inserts the order and its items in one transaction.
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	TotalSales(ctx context.Context) (float64, error)
}
