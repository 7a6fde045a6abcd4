package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nskopt/catalog-api/internal/api/handler"
	"github.com/nskopt/catalog-api/internal/api/middleware"
	"github.com/nskopt/catalog-api/internal/core/domain"
	"github.com/nskopt/catalog-api/internal/core/ports"
	"github.com/nskopt/catalog-api/internal/core/service"
)

// maxImageBodySize bounds multipart uploads on the image route.
const maxImageBodySize = "8M"

// Dependencies carries everything the router needs. Repositories are
// interfaces so tests can swap in in-memory implementations; Mongo and Redis
// handles are only used by the readiness probe and may be nil in tests.
type Dependencies struct {
	Log        zerolog.Logger
	Tokens     ports.TokenService
	Users      ports.UserRepository
	Products   ports.ProductRepository
	Categories ports.CategoryRepository
	Images     ports.ImageRepository
	ImageCache ports.ImageCache

	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// The authentication filter runs on every request: bearer tokens are
	// validated up front, requests without one continue anonymously.
	e.Use(middleware.Auth(deps.Tokens))

	// Route-level authorization declarations.
	managerOrAdmin := middleware.RequireRoles(domain.RoleManager, domain.RoleAdmin)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Services and handlers ---
	authService := service.NewAuthService(deps.Users, deps.Tokens, deps.Log)
	productService := service.NewProductService(deps.Products, deps.Categories, deps.Images, deps.Log)
	categoryService := service.NewCategoryService(deps.Categories, deps.Images, deps.Log)
	imageService := service.NewImageService(deps.Images, deps.ImageCache, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	imageHandler := handler.NewImageHandler(imageService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/check-admin", authHandler.CheckAdmin, adminOnly)
	auth.POST("/check-manager", authHandler.CheckManager, managerOrAdmin)

	// --- Product routes ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.GET("/:id/images", productHandler.ImageIDs)
	products.POST("", productHandler.Create, managerOrAdmin)
	products.PUT("/:id", productHandler.Update, managerOrAdmin)
	products.DELETE("/:id", productHandler.Delete, managerOrAdmin)
	products.PUT("/:id/categories", productHandler.UpdateCategories, managerOrAdmin)
	products.PUT("/:id/images", productHandler.UpdateImages, managerOrAdmin)

	// --- Category routes ---
	categories := e.Group("/api/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.GET("/:id/products", productHandler.ListByCategory)
	categories.POST("", categoryHandler.Create, managerOrAdmin)
	categories.PUT("/:id", categoryHandler.Update, managerOrAdmin)
	categories.DELETE("/:id", categoryHandler.Delete, managerOrAdmin)

	// --- Image routes ---
	images := e.Group("/api/images")
	images.GET("/:id", imageHandler.Get)
	images.POST("", imageHandler.Upload, managerOrAdmin, echomiddleware.BodyLimit(maxImageBodySize))

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if deps.Mongo != nil && deps.Redis != nil {
		healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", healthDepsHandler.Readiness)
	}

	return e
}
