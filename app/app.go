package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/booknest/booknest-server/configs"
	"github.com/booknest/booknest-server/internal/handlers"
	"github.com/booknest/booknest-server/internal/services"
	"github.com/booknest/booknest-server/pkg/database"
	"github.com/booknest/booknest-server/pkg/gateway"
	middleware "github.com/booknest/booknest-server/pkg/middlewares"
	"github.com/booknest/booknest-server/pkg/repositories"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server and a cleanup func.
// It reads configuration from environment variables via configs.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	// Load config
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	// Initialize the document store
	db, disconnect, err := database.New(ctx, logger, database.Config{
		URI:         cfg.MongoURI,
		Database:    cfg.MongoDatabase,
		MaxPoolSize: cfg.MongoMaxPool,
	})
	if err != nil {
		return nil, nil, err
	}
	if err = database.EnsureIndexes(ctx, logger, db); err != nil {
		disconnect()
		return nil, nil, err
	}

	// Setup dependencies
	stripeGateway := gateway.NewStripeGateway(cfg.StripeSecretKey)

	userRepo := repositories.NewUserRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	userService := services.NewUserService(logger, userRepo)
	bookService := services.NewBookService(logger, bookRepo, orderRepo)
	orderService := services.NewOrderService(logger, orderRepo)
	paymentService := services.NewPaymentService(logger, cfg, stripeGateway, paymentRepo, orderRepo)

	baseHandler := handlers.NewBaseHandler(logger)
	userHandler := handlers.NewUserHandler(logger, userService)
	bookHandler := handlers.NewBookHandler(logger, bookService)
	orderHandler := handlers.NewOrderHandler(logger, orderService)
	paymentHandler := handlers.NewPaymentHandler(logger, paymentService)

	// Router
	r := gin.Default()
	r.Use(middleware.CORS(cfg.ClientOrigin))

	baseHandler.RegisterRoutes(r)

	api := r.Group("")
	api.Use(middleware.TraceID())
	api.Use(middleware.Metrics())

	userHandler.RegisterRoutes(api)
	bookHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	paymentHandler.RegisterRoutes(api)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	cleanup := func() {
		// close the store client
		disconnect()
	}

	return srv, cleanup, nil
}
