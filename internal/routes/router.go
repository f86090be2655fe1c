package routes

import (
	"net/http"

	"fleet-device-manager/internal/config"
	"fleet-device-manager/internal/delivery/http/handler"
	"fleet-device-manager/internal/infrastructure/database/postgres"
	"fleet-device-manager/internal/ingestion"
	"fleet-device-manager/internal/logger"
	"fleet-device-manager/internal/middleware"
	"fleet-device-manager/internal/usecase/analytics"
	"fleet-device-manager/internal/usecase/assignment"
	"fleet-device-manager/internal/usecase/device"
	"fleet-device-manager/internal/usecase/shipment"
	"fleet-device-manager/internal/usecase/ticket"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, processor *ingestion.Processor) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware order: request ID, logging, security headers, CORS,
	// request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	deviceRepository := postgres.NewDeviceRepository(db)
	assignmentRepository := postgres.NewAssignmentRepository(db)
	shipmentRepository := postgres.NewShipmentRepository(db)
	sotiRepository := postgres.NewSotiRepository(db)
	ticketRepository := postgres.NewTicketRepository(db)
	catalogRepository := postgres.NewCatalogRepository(db)

	deviceService := device.NewService(deviceRepository, assignmentRepository, shipmentRepository, sotiRepository, catalogRepository)
	assignmentService := assignment.NewService(assignmentRepository, deviceRepository, shipmentRepository)
	shipmentService := shipment.NewService(shipmentRepository, assignmentRepository)
	ticketService := ticket.NewService(ticketRepository)
	analyticsService := analytics.NewService(ticketRepository)

	deviceHandler := handler.NewDeviceHandler(deviceService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, shipmentService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	fleetHandler := handler.NewFleetHandler(analyticsService, ticketService, catalogRepository, processor)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			deviceHandler.RegisterRoutes(protected)
			assignmentHandler.RegisterRoutes(protected)
			shipmentHandler.RegisterRoutes(protected)
			fleetHandler.RegisterRoutes(protected)

			operator := protected.Group("")
			operator.Use(middleware.OperatorOrAdmin())
			{
				deviceHandler.RegisterOperatorRoutes(operator)
				assignmentHandler.RegisterOperatorRoutes(operator)
				shipmentHandler.RegisterOperatorRoutes(operator)
			}

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				deviceHandler.RegisterAdminRoutes(admin)
				fleetHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
