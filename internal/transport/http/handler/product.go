package handler

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/upload"
	"github.com/ErlanBelekov/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type productUsecaser interface {
	Validate(ctx context.Context, in usecase.ProductInput) (usecase.ValidatedProduct, error)
	Create(ctx context.Context, v usecase.ValidatedProduct) (*domain.Product, error)
	Update(ctx context.Context, id string, v usecase.ValidatedProduct) (*domain.Product, error)
	List(ctx context.Context, categories string) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Featured(ctx context.Context, count string) ([]*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	SetGallery(ctx context.Context, id string, refs []string) (*domain.Product, error)
}

// uploader is satisfied by *upload.Mediator.
type uploader interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
	SaveAll(ctx context.Context, fhs []*multipart.FileHeader) ([]string, error)
}

type ProductHandler struct {
	products productUsecaser
	uploads  uploader
	logger   *slog.Logger
}

func NewProductHandler(products productUsecaser, uploads uploader, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		uploads:  uploads,
		logger:   logger.With("component", "product_handler"),
	}
}

type productForm struct {
	Name            string  `form:"name"`
	Description     string  `form:"description"`
	RichDescription string  `form:"richDescription"`
	Brand           string  `form:"brand"`
	Price           float64 `form:"price"`
	Category        string  `form:"category"`
	CountInStock    int     `form:"countInStock"`
	Rating          float64 `form:"rating"`
	NumReviews      int     `form:"numReviews"`
	IsFeatured      bool    `form:"isFeatured"`
}

func (f productForm) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:            f.Name,
		Description:     f.Description,
		RichDescription: f.RichDescription,
		Brand:           f.Brand,
		Price:           f.Price,
		CategoryID:      f.Category,
		CountInStock:    f.CountInStock,
		Rating:          f.Rating,
		NumReviews:      f.NumReviews,
		IsFeatured:      f.IsFeatured,
	}
}

// GET /products?categories=id1,id2
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context(), c.Query("categories"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /products (multipart, "image" required)
//
// The category is resolved and the file validated before anything is
// written, so a bad category never leaves an orphaned upload.
func (h *ProductHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(err)
		return
	}

	v, err := h.products.Validate(ctx, form.input())
	if err != nil {
		_ = c.Error(err)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = upload.ErrNoFile
		}
		_ = c.Error(err)
		return
	}
	ref, err := h.uploads.Save(ctx, fh)
	if err != nil {
		_ = c.Error(err)
		return
	}

	product, err := h.products.Create(ctx, v.WithImage(ref))
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.InfoContext(ctx, "product created", "product_id", product.ID)
	c.JSON(http.StatusCreated, product)
}

// PUT /products/:id (multipart, "image" optional)
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(err)
		return
	}

	v, err := h.products.Validate(ctx, form.input())
	if err != nil {
		_ = c.Error(err)
		return
	}

	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		if _, err := h.products.Get(ctx, id); err != nil {
			_ = c.Error(err)
			return
		}
		ref, err := h.uploads.Save(ctx, fh)
		if err != nil {
			_ = c.Error(err)
			return
		}
		v = v.WithImage(ref)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		_ = c.Error(err)
		return
	}

	product, err := h.products.Update(ctx, id, v)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// PUT /products/gallery-images/:id (multipart "images", up to 12)
func (h *ProductHandler) Gallery(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.products.Get(ctx, id); err != nil {
		_ = c.Error(err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		_ = c.Error(err)
		return
	}
	refs, err := h.uploads.SaveAll(ctx, form.File["images"])
	if err != nil {
		_ = c.Error(err)
		return
	}

	product, err := h.products.SetGallery(ctx, id, refs)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.InfoContext(ctx, "gallery replaced", "product_id", id, "images", len(refs))
	c.JSON(http.StatusOK, product)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c, "The product is deleted")
}

// GET /products/get/count
func (h *ProductHandler) Count(c *gin.Context) {
	n, err := h.products.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productCount": n})
}

// GET /products/get/featured/:count
func (h *ProductHandler) Featured(c *gin.Context) {
	products, err := h.products.Featured(c.Request.Context(), c.Param("count"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
