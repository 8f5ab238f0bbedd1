package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	v1 "github.com/techsolutions/billing-service/internal/api/v1"
	"github.com/techsolutions/billing-service/internal/rest/middleware"
)

type Handlers struct {
	Invoice *v1.InvoiceHandler
	Health  *v1.HealthHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Invoice routes
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id/pay", handlers.Invoice.PayInvoice)
	}

	// Client routes
	clients := router.Group("/clients")
	{
		clients.GET("/:clientId/invoices", handlers.Invoice.ListInvoicesByClient)
		clients.GET("/:clientId/total", handlers.Invoice.GetClientTotal)
	}
}
