package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	govalidator "github.com/go-playground/validator/v10"
	_ "github.com/techsolutions/billing-service/docs/swagger"
	"github.com/techsolutions/billing-service/internal/api"
	v1 "github.com/techsolutions/billing-service/internal/api/v1"
	"github.com/techsolutions/billing-service/internal/cache"
	"github.com/techsolutions/billing-service/internal/config"
	"github.com/techsolutions/billing-service/internal/logger"
	"github.com/techsolutions/billing-service/internal/postgres"
	"github.com/techsolutions/billing-service/internal/repository"
	"github.com/techsolutions/billing-service/internal/service"
	"github.com/techsolutions/billing-service/internal/types"
	"github.com/techsolutions/billing-service/internal/validator"
	"go.uber.org/fx"
)

// @title Billing Service API
// @version 1.0
// @description Client invoice billing service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewInvoiceRepository,

			// Services
			provideTxRunner,
			service.NewInvoiceService,

			// Handlers and router
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

// provideHandlers depends on the validator so request validation is
// initialized before the first request comes in
func provideHandlers(
	_ *govalidator.Validate,
	logger *logger.Logger,
	invoiceService service.InvoiceService,
) api.Handlers {
	return api.Handlers{
		Invoice: v1.NewInvoiceHandler(invoiceService, logger),
		Health:  v1.NewHealthHandler(logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func provideTxRunner(db *postgres.DB) service.TxRunner {
	return db
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server in %s mode", mode)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			db.Close()
			return nil
		},
	})
}
