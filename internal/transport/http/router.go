package httptransport

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/shop-api/internal/access"
	"github.com/ErlanBelekov/shop-api/internal/apperror"
	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/health"
	"github.com/ErlanBelekov/shop-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/shop-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/shop-api/internal/upload"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Options struct {
	APIPrefix    string
	UploadDir    string
	Timeout      time.Duration
	MaxBodyBytes int64
	CORSOrigins  []string
	HSTS         bool
}

type Handlers struct {
	Categories *handler.CategoryHandler
	Products   *handler.ProductHandler
	Users      *handler.UserHandler
	Orders     *handler.OrderHandler
}

// NewRouter wires the middleware chain in front of every route. Errors sits
// outside Access so policy rejections are written by the same code path as
// handler failures.
func NewRouter(logger *slog.Logger, opts Options, policy *access.Policy, normalizer *apperror.Normalizer, checker *health.Checker, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(normalizer, logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(opts.HSTS))
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(sloggin.NewWithConfig(logger, sloggin.Config{
		WithRequestID: false,
		Filters:       []sloggin.Filter{sloggin.IgnorePath("/healthz", "/readyz")},
	}))
	r.Use(middleware.Metrics("/healthz", "/readyz"))
	r.Use(middleware.Timeout(opts.Timeout))
	r.Use(middleware.BodyLimit(opts.MaxBodyBytes))
	r.Use(middleware.Errors(normalizer, logger))
	r.Use(middleware.Access(policy))

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("route %w", domain.ErrNotFound))
	})

	r.GET("/healthz", gin.WrapF(health.Probe(checker.Liveness)))
	r.GET("/readyz", gin.WrapF(health.Probe(checker.Readiness)))
	r.Static(upload.PublicPath, opts.UploadDir)

	api := r.Group(opts.APIPrefix)

	categories := api.Group("/categories")
	categories.GET("", h.Categories.List)
	categories.GET("/:id", h.Categories.Get)
	categories.POST("", h.Categories.Create)
	categories.PUT("/:id", h.Categories.Update)
	categories.DELETE("/:id", h.Categories.Delete)

	products := api.Group("/products")
	products.GET("", h.Products.List)
	products.GET("/:id", h.Products.Get)
	products.POST("", h.Products.Create)
	products.PUT("/:id", h.Products.Update)
	products.DELETE("/:id", h.Products.Delete)
	products.GET("/get/count", h.Products.Count)
	products.GET("/get/featured/:count", h.Products.Featured)
	products.PUT("/gallery-images/:id", h.Products.Gallery)

	users := api.Group("/users")
	users.GET("", h.Users.List)
	users.POST("", h.Users.Create)
	users.GET("/:id", h.Users.Get)
	users.PUT("/:id", h.Users.Update)
	users.DELETE("/:id", h.Users.Delete)
	users.GET("/get/count", h.Users.Count)
	users.POST("/register", h.Users.Register)
	users.POST("/login", h.Users.Login)

	orders := api.Group("/orders")
	orders.GET("", h.Orders.List)
	orders.POST("", h.Orders.Create)
	orders.GET("/:id", h.Orders.Get)
	orders.PUT("/:id", h.Orders.UpdateStatus)
	orders.DELETE("/:id", h.Orders.Delete)
	orders.GET("/get/count", h.Orders.Count)
	orders.GET("/get/totalsales", h.Orders.TotalSales)
	orders.GET("/get/userorders/:userid", h.Orders.UserOrders)

	return r
}
