package api

import (
	"net/http" // HTTP status codes

	"stock_management/internal/metrics"    // Prometheus collectors
	"stock_management/internal/middleware" // Logging, recovery and validation
	"stock_management/internal/service"    // Workflows
	"stock_management/internal/validation" // Request schemas

	"github.com/gin-gonic/gin" // Gin web framework
)

// Services bundles the workflows the handlers dispatch to
type Services struct {
	Accounts   *service.AccountService
	Categories *service.CategoryService
	Products   *service.ProductService
	Orders     *service.OrderService
}

// NewRouter wires every route. m may be nil, in which case /metrics is not served.
func NewRouter(svc Services, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery(), m.Middleware())

	// Liveness
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Stock Management API is running"})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler())) // Prometheus scrape endpoint
	}

	v := validation.New()
	api := r.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/signup", middleware.Validate(v, validation.SignUp), SignUpHandler(svc.Accounts)) // Registration endpoint
	auth.POST("/signin", middleware.Validate(v, validation.SignIn), SignInHandler(svc.Accounts)) // Credential check endpoint

	// User routes
	users := api.Group("/users")
	users.POST("", middleware.Validate(v, validation.Account), CreateUserHandler(svc.Accounts))
	users.GET("", ListUsersHandler(svc.Accounts))
	users.GET("/:id", GetUserHandler(svc.Accounts))
	users.PUT("/:id", middleware.Validate(v, validation.Account.Partial()), UpdateUserHandler(svc.Accounts))
	users.DELETE("/:id", DeleteUserHandler(svc.Accounts))

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", middleware.Validate(v, validation.Category), CreateCategoryHandler(svc.Categories))
	categories.GET("", ListCategoriesHandler(svc.Categories))
	categories.GET("/:id", GetCategoryHandler(svc.Categories))
	categories.PUT("/:id", middleware.Validate(v, validation.Category.Partial()), UpdateCategoryHandler(svc.Categories))
	categories.DELETE("/:id", DeleteCategoryHandler(svc.Categories))

	// Product routes
	products := api.Group("/products")
	products.POST("", middleware.Validate(v, validation.Product), CreateProductHandler(svc.Products))
	products.GET("", ListProductsHandler(svc.Products))
	products.GET("/:id", GetProductHandler(svc.Products))
	products.PUT("/:id", middleware.Validate(v, validation.Product.Partial()), UpdateProductHandler(svc.Products))
	products.DELETE("/:id", DeleteProductHandler(svc.Products))

	// Order routes
	orders := api.Group("/orders")
	orders.POST("", middleware.Validate(v, validation.Order), CreateOrderHandler(svc.Orders))
	orders.GET("", ListOrdersHandler(svc.Orders))
	orders.GET("/:id", GetOrderHandler(svc.Orders))
	orders.PUT("/:id", middleware.Validate(v, validation.Order.Partial()), UpdateOrderHandler(svc.Orders))
	orders.DELETE("/:id", DeleteOrderHandler(svc.Orders))

	return r
}
