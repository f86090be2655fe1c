package handler

import (
	"net/http"

	domainDevice "fleet-device-manager/internal/domain/device"
	"fleet-device-manager/internal/ingestion"
	"fleet-device-manager/internal/usecase/device"
	"fleet-device-manager/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeviceHandler struct {
	service *device.Service
}

func NewDeviceHandler(service *device.Service) *DeviceHandler {
	return &DeviceHandler{service: service}
}

func (h *DeviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.GET("", h.ListDevices)
		devices.GET("/state", h.ListWithState)
		devices.GET("/statistics", h.GetStatistics)
		devices.GET("/imei/:imei", h.GetDeviceByIMEI)
		devices.GET("/imei/:imei/state", h.GetStateByIMEI)
		devices.GET("/:id", h.GetDevice)
	}
}

func (h *DeviceHandler) RegisterOperatorRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.POST("", h.RegisterDevice)
		devices.PUT("/:id", h.UpdateDevice)
	}
}

func (h *DeviceHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.POST("/import", h.ImportDevices)
		devices.DELETE("/:id", h.RetireDevice)
	}
}

func (h *DeviceHandler) RegisterDevice(c *gin.Context) {
	var req device.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Device registered successfully", result)
}

// importDeviceRow is the wire shape of one spreadsheet row. Status accepts
// the legacy Spanish labels; they are normalized here so the registry only
// ever sees canonical codes.
type importDeviceRow struct {
	IMEI          string     `json:"imei" binding:"required"`
	Status        string     `json:"status"`
	ModelID       *uuid.UUID `json:"model_id"`
	DistributorID *uuid.UUID `json:"distributor_id"`
	IsBackup      bool       `json:"is_backup"`
	OwnerName     *string    `json:"owner_name"`
}

type importDevicesRequest struct {
	Devices []importDeviceRow `json:"devices" binding:"required,min=1,max=5000"`
}

func (h *DeviceHandler) ImportDevices(c *gin.Context) {
	var req importDevicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	specs := make([]device.ImportDeviceSpec, 0, len(req.Devices))
	for _, row := range req.Devices {
		status := domainDevice.StatusNew
		if row.Status != "" {
			normalized, err := ingestion.NormalizeStatus(row.Status)
			if err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
				return
			}
			status = normalized
		}
		specs = append(specs, device.ImportDeviceSpec{
			IMEI:          row.IMEI,
			Status:        status,
			ModelID:       row.ModelID,
			DistributorID: row.DistributorID,
			IsBackup:      row.IsBackup,
			OwnerName:     row.OwnerName,
		})
	}

	result, err := h.service.ImportDevices(c.Request.Context(), specs)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Devices imported successfully", result)
}

func (h *DeviceHandler) UpdateDevice(c *gin.Context) {
	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid device ID")
		return
	}

	var req device.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateDevice(c.Request.Context(), deviceID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device updated successfully", result)
}

func (h *DeviceHandler) RetireDevice(c *gin.Context) {
	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid device ID")
		return
	}

	var req device.RetireDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Retire(c.Request.Context(), deviceID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device retired successfully", result)
}

func (h *DeviceHandler) GetDevice(c *gin.Context) {
	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid device ID")
		return
	}

	result, err := h.service.GetDevice(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device retrieved successfully", result)
}

func (h *DeviceHandler) GetDeviceByIMEI(c *gin.Context) {
	result, err := h.service.GetDeviceByIMEI(c.Request.Context(), c.Param("imei"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device retrieved successfully", result)
}

func (h *DeviceHandler) GetStateByIMEI(c *gin.Context) {
	result, err := h.service.GetStateByIMEI(c.Request.Context(), c.Param("imei"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device state retrieved successfully", result)
}

func (h *DeviceHandler) ListDevices(c *gin.Context) {
	var filter device.DeviceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.ListDevices(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Devices retrieved successfully", result)
}

func (h *DeviceHandler) ListWithState(c *gin.Context) {
	var filter device.DeviceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.ListWithState(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device states retrieved successfully", result)
}

func (h *DeviceHandler) GetStatistics(c *gin.Context) {
	result, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}
