package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type userUsecaser interface {
	Register(ctx context.Context, in usecase.UserInput) (*domain.User, error)
	Create(ctx context.Context, in usecase.UserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in usecase.UserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type UserHandler struct {
	users  userUsecaser
	logger *slog.Logger
}

func NewUserHandler(users userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.With("component", "user_handler")}
}

type userRequest struct {
	Name      string `json:"name"      binding:"required"`
	Email     string `json:"email"     binding:"required,email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"isAdmin"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

func (r userRequest) input() usecase.UserInput {
	return usecase.UserInput{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		IsAdmin:   r.IsAdmin,
		Street:    r.Street,
		Apartment: r.Apartment,
		Zip:       r.Zip,
		City:      r.City,
		Country:   r.Country,
	}
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.InfoContext(c.Request.Context(), "user registered", "new_user_id", user.ID)
	c.JSON(http.StatusCreated, user)
}

// POST /users/login
// Returns {"user": "<email>", "token": "<jwt>"}.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": res.User.Email, "token": res.Token})
}

// POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.InfoContext(c.Request.Context(), "user created", "new_user_id", user.ID, "admin", user.IsAdmin)
	c.JSON(http.StatusCreated, user)
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /users/:id
// An omitted password keeps the current one.
func (h *UserHandler) Update(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c, "The user is deleted")
}

// GET /users/get/count
func (h *UserHandler) Count(c *gin.Context) {
	n, err := h.users.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userCount": n})
}
