package handler

import (
	"net/http"

	"fleet-device-manager/internal/usecase/assignment"
	"fleet-device-manager/internal/usecase/shipment"
	"fleet-device-manager/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssignmentHandler struct {
	service         *assignment.Service
	shipmentService *shipment.Service
}

func NewAssignmentHandler(service *assignment.Service, shipmentService *shipment.Service) *AssignmentHandler {
	return &AssignmentHandler{service: service, shipmentService: shipmentService}
}

func (h *AssignmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	assignments := router.Group("/assignments")
	{
		assignments.GET("", h.ListAssignments)
		assignments.GET("/:id", h.GetAssignment)
		assignments.GET("/:id/shipments", h.ListShipments)
	}
	router.GET("/devices/:id/assignments", h.GetDeviceHistory)
}

func (h *AssignmentHandler) RegisterOperatorRoutes(router *gin.RouterGroup) {
	assignments := router.Group("/assignments")
	{
		assignments.POST("", h.OpenAssignment)
		assignments.POST("/:id/close", h.CloseAssignment)
		assignments.POST("/:id/shipments", h.StartOutbound)
		assignments.POST("/:id/return", h.StartReturn)
	}
}

func (h *AssignmentHandler) OpenAssignment(c *gin.Context) {
	var req assignment.OpenAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Open(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Assignment opened successfully", result)
}

func (h *AssignmentHandler) CloseAssignment(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	var req assignment.CloseAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Close(c.Request.Context(), assignmentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment closed successfully", result)
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	result, err := h.service.GetAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment retrieved successfully", result)
}

func (h *AssignmentHandler) GetDeviceHistory(c *gin.Context) {
	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid device ID")
		return
	}

	result, err := h.service.GetDeviceHistory(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment history retrieved successfully", result)
}

func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	var filter assignment.AssignmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.ListAssignments(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignments retrieved successfully", result)
}

func (h *AssignmentHandler) StartOutbound(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	var req shipment.StartOutboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.shipmentService.StartOutbound(c.Request.Context(), assignmentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Outbound shipment started successfully", result)
}

func (h *AssignmentHandler) StartReturn(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	var req shipment.StartReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.shipmentService.StartReturn(c.Request.Context(), assignmentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Return shipment started successfully", result)
}

func (h *AssignmentHandler) ListShipments(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	result, err := h.shipmentService.ListByAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipments retrieved successfully", result)
}
