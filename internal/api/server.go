package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"receiptsync/internal/api/handlers"
	"receiptsync/internal/api/middleware"
	"receiptsync/internal/config"
	"receiptsync/internal/logger"
	"receiptsync/internal/receiptful"
	"receiptsync/internal/store"
	"receiptsync/internal/sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, st *store.Store, engine *sync.Engine, client *receiptful.Client) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(st, engine, logger)
	productHandler := handlers.NewProductHandler(st, engine, logger)
	syncHandler := handlers.NewSyncHandler(st, engine, client, logger)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Orders
		orders := v1.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
			orders.POST("", orderHandler.Create)
			orders.POST("/:id/complete", orderHandler.Complete)
			orders.POST("/:id/resend", orderHandler.Resend)
			orders.GET("/:id/notes", orderHandler.Notes)
		}

		// Products
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.POST("", productHandler.Create)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		// Sync state
		syncGroup := v1.Group("/sync")
		{
			syncGroup.GET("/queue", syncHandler.Queue)
			syncGroup.POST("/drain", syncHandler.Drain)
			syncGroup.GET("/status", syncHandler.Status)
		}

		v1.GET("/account/key", syncHandler.AccountKey)
	}

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      cors.Default().Handler(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}
