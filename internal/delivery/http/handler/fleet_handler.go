package handler

import (
	"net/http"
	"time"

	domainCatalog "fleet-device-manager/internal/domain/catalog"
	"fleet-device-manager/internal/ingestion"
	"fleet-device-manager/internal/usecase/analytics"
	"fleet-device-manager/internal/usecase/ticket"
	"fleet-device-manager/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FleetHandler serves the reporting and master-data surface: the demand and
// stock report, ticket imports, catalog lookups and presence feed health.
type FleetHandler struct {
	analyticsService *analytics.Service
	ticketService    *ticket.Service
	catalogRepo      domainCatalog.Repository
	processor        *ingestion.Processor
}

func NewFleetHandler(
	analyticsService *analytics.Service,
	ticketService *ticket.Service,
	catalogRepo domainCatalog.Repository,
	processor *ingestion.Processor,
) *FleetHandler {
	return &FleetHandler{
		analyticsService: analyticsService,
		ticketService:    ticketService,
		catalogRepo:      catalogRepo,
		processor:        processor,
	}
}

func (h *FleetHandler) RegisterRoutes(router *gin.RouterGroup) {
	fleet := router.Group("/fleet")
	{
		fleet.GET("/report", h.GetReport)
		fleet.GET("/feed/metrics", h.GetFeedMetrics)
	}
	catalog := router.Group("/catalog")
	{
		catalog.GET("/models", h.ListModels)
		catalog.GET("/distributors", h.ListDistributors)
	}
}

func (h *FleetHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/tickets/import", h.ImportTickets)
}

func (h *FleetHandler) GetReport(c *gin.Context) {
	result, err := h.analyticsService.BuildReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fleet report built successfully", result)
}

func (h *FleetHandler) ImportTickets(c *gin.Context) {
	var req ticket.ImportTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.ticketService.Import(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tickets imported successfully", result)
}

// GetFeedMetrics reports presence feed counters. The feed is optional; when
// it is not configured the endpoint says so instead of returning zeros.
func (h *FleetHandler) GetFeedMetrics(c *gin.Context) {
	if h.processor == nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Presence feed is not configured")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feed metrics retrieved successfully", h.processor.GetMetrics())
}

type modelResponse struct {
	ID           uuid.UUID `json:"id"`
	Manufacturer string    `json:"manufacturer"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

type distributorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *FleetHandler) ListModels(c *gin.Context) {
	models, err := h.catalogRepo.ListModels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]modelResponse, 0, len(models))
	for _, m := range models {
		result = append(result, modelResponse{
			ID:           m.ID,
			Manufacturer: m.Manufacturer,
			Name:         m.Name,
			CreatedAt:    m.CreatedAt,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "Models retrieved successfully", result)
}

func (h *FleetHandler) ListDistributors(c *gin.Context) {
	distributors, err := h.catalogRepo.ListDistributors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]distributorResponse, 0, len(distributors))
	for _, d := range distributors {
		result = append(result, distributorResponse{
			ID:        d.ID,
			Name:      d.Name,
			Region:    d.Region,
			CreatedAt: d.CreatedAt,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "Distributors retrieved successfully", result)
}
