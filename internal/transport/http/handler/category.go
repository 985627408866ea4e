package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type categoryUsecaser interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in usecase.CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in usecase.CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type CategoryHandler struct {
	categories categoryUsecaser
	logger     *slog.Logger
}

func NewCategoryHandler(categories categoryUsecaser, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger.With("component", "category_handler")}
}

type categoryRequest struct {
	Name  string `json:"name"  binding:"required"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func (r categoryRequest) input() usecase.CategoryInput {
	return usecase.CategoryInput{Name: r.Name, Icon: r.Icon, Color: r.Color}
}

// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.InfoContext(c.Request.Context(), "category created", "category_id", category.ID)
	c.JSON(http.StatusCreated, category)
}

// PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	category, err := h.categories.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.InfoContext(c.Request.Context(), "category deleted", "category_id", id)
	deleted(c, "The category is deleted")
}
