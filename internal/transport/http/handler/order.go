package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/shop-api/internal/auth"
	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type orderUsecaser interface {
	Create(ctx context.Context, in usecase.OrderInput) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UserOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	TotalSales(ctx context.Context) (float64, error)
}

type OrderHandler struct {
	orders orderUsecaser
	logger *slog.Logger
}

func NewOrderHandler(orders orderUsecaser, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger.With("component", "order_handler")}
}

type orderItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type orderRequest struct {
	OrderItems       []orderItemRequest `json:"orderItems"`
	ShippingAddress1 string             `json:"shippingAddress1"`
	ShippingAddress2 string             `json:"shippingAddress2"`
	City             string             `json:"city"`
	Zip              string             `json:"zip"`
	Country          string             `json:"country"`
	Phone            string             `json:"phone"`
	User             string             `json:"user"`
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// POST /orders
// The order belongs to the "user" field when given, else to the caller.
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	in := usecase.OrderInput{
		Items:            make([]usecase.OrderItemInput, 0, len(req.OrderItems)),
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
		UserID:           req.User,
	}
	if in.UserID == "" {
		in.UserID = auth.UserID(c.Request.Context())
	}
	for _, item := range req.OrderItems {
		in.Items = append(in.Items, usecase.OrderItemInput{ProductID: item.Product, Quantity: item.Quantity})
	}

	order, err := h.orders.Create(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.InfoContext(c.Request.Context(), "order placed", "order_id", order.ID, "total", order.TotalPrice)
	c.JSON(http.StatusCreated, order)
}

// PUT /orders/:id
// Only the status can change once an order is placed.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c, "The order is deleted")
}

// GET /orders/get/count
func (h *OrderHandler) Count(c *gin.Context) {
	n, err := h.orders.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderCount": n})
}

// GET /orders/get/totalsales
func (h *OrderHandler) TotalSales(c *gin.Context) {
	total, err := h.orders.TotalSales(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalsales": total})
}

// GET /orders/get/userorders/:userid
func (h *OrderHandler) UserOrders(c *gin.Context) {
	orders, err := h.orders.UserOrders(c.Request.Context(), c.Param("userid"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
