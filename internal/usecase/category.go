package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/repository"
)

type CategoryUsecase struct {
	repo repository.CategoryRepository
}

func NewCategoryUsecase(repo repository.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{repo: repo}
}

type CategoryInput struct {
	Name  string `validate:"required,max=120"`
	Icon  string `validate:"max=120"`
	Color string `validate:"max=32"`
}

func (u *CategoryUsecase) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id string) (*domain.Category, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := check(in, domain.ErrValidation); err != nil {
		return nil, err
	}
	c, err := u.repo.Create(ctx, &domain.Category{Name: in.Name, Icon: in.Icon, Color: in.Color})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	if err := check(in, domain.ErrValidation); err != nil {
		return nil, err
	}
	c, err := u.repo.Update(ctx, &domain.Category{ID: id, Name: in.Name, Icon: in.Icon, Color: in.Color})
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete fails with a constraint violation while products still reference
// the category.
func (u *CategoryUsecase) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
