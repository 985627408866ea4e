package usecase_test

import (
	"context"

	"github.com/ErlanBelekov/shop-api/internal/domain"
)

// ---- fakes ----

type fakeCategoryRepo struct {
	list    func(ctx context.Context) ([]*domain.Category, error)
	getByID func(ctx context.Context, id string) (*domain.Category, error)
	create  func(ctx context.Context, c *domain.Category) (*domain.Category, error)
	update  func(ctx context.Context, c *domain.Category) (*domain.Category, error)
	delete  func(ctx context.Context, id string) error
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	return r.list(ctx)
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.getByID(ctx, id)
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	return r.create(ctx, c)
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	return r.update(ctx, c)
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

type fakeProductRepo struct {
	list      func(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	getByID   func(ctx context.Context, id string) (*domain.Product, error)
	create    func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	update    func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	setImages func(ctx context.Context, id string, images []string) (*domain.Product, error)
	delete    func(ctx context.Context, id string) error
	count     func(ctx context.Context) (int, error)
}

func (r *fakeProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return r.list(ctx, filter)
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getByID(ctx, id)
}

func (r *fakeProductRepo) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	return r.create(ctx, p)
}

func (r *fakeProductRepo) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	return r.update(ctx, p)
}

func (r *fakeProductRepo) SetImages(ctx context.Context, id string, images []string) (*domain.Product, error) {
	return r.setImages(ctx, id, images)
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *fakeProductRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx)
}

type fakeUserRepo struct {
	list       func(ctx context.Context) ([]*domain.User, error)
	getByID    func(ctx context.Context, id string) (*domain.User, error)
	getByEmail func(ctx context.Context, email string) (*domain.User, error)
	create     func(ctx context.Context, u *domain.User) (*domain.User, error)
	update     func(ctx context.Context, u *domain.User) (*domain.User, error)
	delete     func(ctx context.Context, id string) error
	count      func(ctx context.Context) (int, error)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx)
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getByID(ctx, id)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByEmail(ctx, email)
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.create(ctx, u)
}

func (r *fakeUserRepo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.update(ctx, u)
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *fakeUserRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx)
}

type fakeOrderRepo struct {
	list         func(ctx context.Context, userID string) ([]*domain.Order, error)
	getByID      func(ctx context.Context, id string) (*domain.Order, error)
	create       func(ctx context.Context, o *domain.Order) (*domain.Order, error)
	updateStatus func(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	delete       func(ctx context.Context, id string) error
	count        func(ctx context.Context) (int, error)
	totalSales   func(ctx context.Context) (float64, error)
}

func (r *fakeOrderRepo) List(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.list(ctx, userID)
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.getByID(ctx, id)
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	return r.create(ctx, o)
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return r.updateStatus(ctx, id, status)
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *fakeOrderRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx)
}

func (r *fakeOrderRepo) TotalSales(ctx context.Context) (float64, error) {
	return r.totalSales(ctx)
}

type fakeIssuer struct {
	issue func(userID string, admin bool) (string, error)
}

func (i *fakeIssuer) Issue(userID string, admin bool) (string, error) {
	return i.issue(userID, admin)
}

// ---- helpers ----

const (
	categoryID = "6f1c2d1e-8a4b-4c1d-9a77-0b5a4f0e0c01"
	productID  = "0b7e5d0a-3c55-4c3a-8d3e-6c2a9b0e1f02"
	userID     = "a4e1b3c2-5d6f-4a7b-8c9d-0e1f2a3b4c03"
	orderID    = "d2c3b4a5-6e7f-4a8b-9c0d-1e2f3a4b5c04"

	testPhone = "+1 555 0100"
)

var testCategory = &domain.Category{ID: categoryID, Name: "Phones"}

func categoryRepoWith(c *domain.Category) *fakeCategoryRepo {
	return &fakeCategoryRepo{
		getByID: func(_ context.Context, id string) (*domain.Category, error) {
			if c != nil && id == c.ID {
				return c, nil
			}
			return nil, domain.ErrCategoryNotFound
		},
	}
}
