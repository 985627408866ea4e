package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/usecase"
)

const otherProductID = "7a8b9c0d-1e2f-4a3b-8c4d-5e6f7a8b9c05"

func priced() *fakeProductRepo {
	prices := map[string]float64{productID: 19.99, otherProductID: 5.10}
	return &fakeProductRepo{
		getByID: func(_ context.Context, id string) (*domain.Product, error) {
			price, ok := prices[id]
			if !ok {
				return nil, domain.ErrProductNotFound
			}
			return &domain.Product{ID: id, Price: price}, nil
		},
	}
}

func orderInput(items ...usecase.OrderItemInput) usecase.OrderInput {
	return usecase.OrderInput{
		Items:            items,
		ShippingAddress1: "1 Main St",
		City:             "Bishkek",
		Zip:              "720000",
		Country:          "KG",
		Phone:            "+996555000000",
	}
}

func TestCreateOrder_TotalFromStoredPrices(t *testing.T) {
	var written *domain.Order
	orders := &fakeOrderRepo{
		create: func(_ context.Context, o *domain.Order) (*domain.Order, error) {
			written = o
			return o, nil
		},
	}
	uc := usecase.NewOrderUsecase(orders, priced(), &fakeUserRepo{})

	in := orderInput(
		usecase.OrderItemInput{ProductID: productID, Quantity: 2},
		usecase.OrderItemInput{ProductID: otherProductID, Quantity: 3},
	)
	if _, err := uc.Create(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if written.TotalPrice != 55.28 {
		t.Errorf("total = %v, want 55.28", written.TotalPrice)
	}
	if written.Status != domain.OrderPending {
		t.Errorf("status = %q, want Pending", written.Status)
	}
	if len(written.OrderItems) != 2 || written.OrderItems[1].Product.ID != otherProductID {
		t.Errorf("items = %+v", written.OrderItems)
	}
	if written.User != nil {
		t.Errorf("user = %+v, want nil", written.User)
	}
}

func TestCreateOrder_Rejections(t *testing.T) {
	tests := []struct {
		name string
		in   usecase.OrderInput
		want error
	}{
		{"no items", orderInput(), domain.ErrEmptyOrder},
		{"unknown product", orderInput(usecase.OrderItemInput{ProductID: orderID, Quantity: 1}), domain.ErrInvalidProduct},
		{"malformed product", orderInput(usecase.OrderItemInput{ProductID: "x", Quantity: 1}), domain.ErrInvalidProduct},
		{"zero quantity", orderInput(usecase.OrderItemInput{ProductID: productID}), domain.ErrValidation},
	}
	orders := &fakeOrderRepo{
		create: func(_ context.Context, _ *domain.Order) (*domain.Order, error) {
			t.Fatal("create must not be called")
			return nil, nil
		},
	}
	uc := usecase.NewOrderUsecase(orders, priced(), &fakeUserRepo{})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Errorf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateOrder_PopulatesUser(t *testing.T) {
	var written *domain.Order
	orders := &fakeOrderRepo{
		create: func(_ context.Context, o *domain.Order) (*domain.Order, error) {
			written = o
			return o, nil
		},
	}
	users := &fakeUserRepo{
		getByID: func(_ context.Context, id string) (*domain.User, error) {
			if id != userID {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: userID, Name: "Ada"}, nil
		},
	}
	uc := usecase.NewOrderUsecase(orders, priced(), users)

	in := orderInput(usecase.OrderItemInput{ProductID: productID, Quantity: 1})
	in.UserID = userID
	if _, err := uc.Create(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written.User == nil || written.User.Name != "Ada" {
		t.Errorf("user = %+v", written.User)
	}

	in.UserID = orderID
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidUser) {
		t.Errorf("want ErrInvalidUser, got %v", err)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	orders := &fakeOrderRepo{
		updateStatus: func(_ context.Context, _ string, _ domain.OrderStatus) (*domain.Order, error) {
			t.Fatal("update must not be called")
			return nil, nil
		},
	}
	uc := usecase.NewOrderUsecase(orders, priced(), &fakeUserRepo{})

	_, err := uc.UpdateStatus(context.Background(), orderID, "Lost")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestUserOrders_FiltersByUser(t *testing.T) {
	var got string
	orders := &fakeOrderRepo{
		list: func(_ context.Context, id string) ([]*domain.Order, error) {
			got = id
			return nil, nil
		},
	}
	uc := usecase.NewOrderUsecase(orders, priced(), &fakeUserRepo{})

	if _, err := uc.UserOrders(context.Background(), userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != userID {
		t.Errorf("listed for %q, want %q", got, userID)
	}
	if _, err := uc.UserOrders(context.Background(), "me"); !errors.Is(err, domain.ErrInvalidID) {
		t.Errorf("want ErrInvalidID, got %v", err)
	}
}
