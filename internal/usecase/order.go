package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/repository"
	"github.com/google/uuid"
)

type OrderUsecase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
}

func NewOrderUsecase(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository) *OrderUsecase {
	return &OrderUsecase{orders: orders, products: products, users: users}
}

type OrderItemInput struct {
	ProductID string
	Quantity  int `validate:"gte=1"`
}

type OrderInput struct {
	Items            []OrderItemInput `validate:"dive"`
	ShippingAddress1 string           `validate:"required"`
	ShippingAddress2 string
	City             string `validate:"required"`
	Zip              string `validate:"required"`
	Country          string `validate:"required"`
	Phone            string `validate:"required"`
	UserID           string
}

// Create resolves every product, prices the order from stored product prices
// and writes the order with its items in one transaction.
func (u *OrderUsecase) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	if err := check(in, domain.ErrValidation); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ShippingAddress1: in.ShippingAddress1,
		ShippingAddress2: in.ShippingAddress2,
		City:             in.City,
		Zip:              in.Zip,
		Country:          in.Country,
		Phone:            in.Phone,
		Status:           domain.OrderPending,
		OrderItems:       make([]domain.OrderItem, 0, len(in.Items)),
	}

	if in.UserID != "" {
		user, err := u.resolveUser(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		order.User = &domain.UserRef{ID: user.ID, Name: user.Name}
	}

	var total float64
	for _, item := range in.Items {
		p, err := u.resolveProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		total += p.Price * float64(item.Quantity)
		order.OrderItems = append(order.OrderItems, domain.OrderItem{Product: p, Quantity: item.Quantity})
	}
	order.TotalPrice = math.Round(total*100) / 100

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}

func (u *OrderUsecase) resolveProduct(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidProduct
	}
	p, err := u.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrInvalidProduct
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	return p, nil
}

func (u *OrderUsecase) resolveUser(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidUser
	}
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidUser
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

func (u *OrderUsecase) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := u.orders.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UserOrders lists one user's orders with their items populated.
func (u *OrderUsecase) UserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	if err := parseID(userID); err != nil {
		return nil, err
	}
	orders, err := u.orders.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return orders, nil
}

func (u *OrderUsecase) Get(ctx context.Context, id string) (*domain.Order, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (u *OrderUsecase) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	switch status {
	case domain.OrderPending, domain.OrderShipped, domain.OrderDelivered:
	default:
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrValidation, status)
	}

	o, err := u.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

func (u *OrderUsecase) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := u.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (u *OrderUsecase) Count(ctx context.Context) (int, error) {
	n, err := u.orders.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (u *OrderUsecase) TotalSales(ctx context.Context) (float64, error) {
	total, err := u.orders.TotalSales(ctx)
	if err != nil {
		return 0, fmt.Errorf("total sales: %w", err)
	}
	return total, nil
}
