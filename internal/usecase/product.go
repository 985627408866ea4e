package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/repository"
	"github.com/google/uuid"
)

type ProductUsecase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewProductUsecase(products repository.ProductRepository, categories repository.CategoryRepository) *ProductUsecase {
	return &ProductUsecase{products: products, categories: categories}
}

type ProductInput struct {
	Name            string  `validate:"required,max=200"`
	Description     string  `validate:"required"`
	RichDescription string
	Brand           string
	Price           float64 `validate:"gte=0"`
	CategoryID      string
	CountInStock    int     `validate:"gte=0,lte=255"`
	Rating          float64 `validate:"gte=0,lte=5"`
	NumReviews      int     `validate:"gte=0"`
	IsFeatured      bool
}

// ValidatedProduct is a product whose fields and category reference have
// been checked against the store. Only Validate produces one, and Create and
// Update accept nothing else.
type ValidatedProduct struct {
	product domain.Product
	ok      bool
}

// WithImage returns a copy carrying the stored image reference.
func (v ValidatedProduct) WithImage(ref string) ValidatedProduct {
	v.product.Image = ref
	return v
}

// Validate checks the input and resolves its category without writing
// anything.
func (u *ProductUsecase) Validate(ctx context.Context, in ProductInput) (ValidatedProduct, error) {
	if err := check(in, domain.ErrInvalidProduct); err != nil {
		return ValidatedProduct{}, err
	}

	if _, err := uuid.Parse(in.CategoryID); err != nil {
		return ValidatedProduct{}, domain.ErrInvalidCategory
	}
	category, err := u.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return ValidatedProduct{}, domain.ErrInvalidCategory
		}
		return ValidatedProduct{}, fmt.Errorf("resolve category: %w", err)
	}

	return ValidatedProduct{
		product: domain.Product{
			Name:            in.Name,
			Description:     in.Description,
			RichDescription: in.RichDescription,
			Brand:           in.Brand,
			Price:           in.Price,
			Category:        category,
			CountInStock:    in.CountInStock,
			Rating:          in.Rating,
			NumReviews:      in.NumReviews,
			IsFeatured:      in.IsFeatured,
		},
		ok: true,
	}, nil
}

func (u *ProductUsecase) Create(ctx context.Context, v ValidatedProduct) (*domain.Product, error) {
	if !v.ok {
		return nil, domain.ErrInvalidProduct
	}
	p := v.product
	created, err := u.products.Create(ctx, &p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

// Update replaces the product's fields. An empty image keeps the stored one.
func (u *ProductUsecase) Update(ctx context.Context, id string, v ValidatedProduct) (*domain.Product, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	if !v.ok {
		return nil, domain.ErrInvalidProduct
	}

	p := v.product
	p.ID = id
	if p.Image == "" {
		existing, err := u.products.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
		p.Image = existing.Image
	}

	updated, err := u.products.Update(ctx, &p)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

// List filters by a comma-separated list of category ids when given.
func (u *ProductUsecase) List(ctx context.Context, categories string) ([]*domain.Product, error) {
	var filter domain.ProductFilter
	for _, id := range strings.Split(categories, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return nil, domain.ErrInvalidCategory
		}
		filter.CategoryIDs = append(filter.CategoryIDs, id)
	}

	products, err := u.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id string) (*domain.Product, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	p, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Featured returns up to count featured products; zero means no limit.
func (u *ProductUsecase) Featured(ctx context.Context, count string) ([]*domain.Product, error) {
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: count must be a non-negative integer", domain.ErrValidation)
	}

	products, err := u.products.List(ctx, domain.ProductFilter{Featured: true, Limit: n})
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return products, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := u.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (u *ProductUsecase) Count(ctx context.Context) (int, error) {
	n, err := u.products.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// SetGallery replaces the product's gallery with refs, in order.
func (u *ProductUsecase) SetGallery(ctx context.Context, id string, refs []string) (*domain.Product, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	p, err := u.products.SetImages(ctx, id, refs)
	if err != nil {
		return nil, fmt.Errorf("set gallery: %w", err)
	}
	return p, nil
}
