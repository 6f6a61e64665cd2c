package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/dto"
	"github.com/Eigen-OS/eigen-os/internal/middleware"
	"github.com/Eigen-OS/eigen-os/internal/service"
	"github.com/Eigen-OS/eigen-os/internal/validation"
)

// DevicesHandler serves the public DeviceService operations.
type DevicesHandler struct {
	deviceService *service.DeviceService
	logger        *zap.Logger
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(deviceService *service.DeviceService, logger *zap.Logger) *DevicesHandler {
	return &DevicesHandler{
		deviceService: deviceService,
		logger:        logger,
	}
}

// ListDevices handles POST /v1/devices/list
func (h *DevicesHandler) ListDevices(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "DeviceService.ListDevices")

	var req dto.ListDevicesRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp := h.deviceService.ListDevices(c.Context(), &req)
	end()
	return c.JSON(resp)
}

// GetDeviceDetails handles POST /v1/devices/details
func (h *DevicesHandler) GetDeviceDetails(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "DeviceService.GetDeviceDetails")

	var req dto.GetDeviceDetailsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if violations := validation.DeviceID(req.DeviceID); len(violations) > 0 {
		return failValidation("DeviceService.GetDeviceDetails", violations)
	}

	resp := h.deviceService.GetDeviceDetails(c.Context(), req.DeviceID)
	end()
	return c.JSON(resp)
}

// GetDeviceStatus handles POST /v1/devices/status
func (h *DevicesHandler) GetDeviceStatus(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "DeviceService.GetDeviceStatus")

	var req dto.GetDeviceStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if violations := validation.DeviceID(req.DeviceID); len(violations) > 0 {
		return failValidation("DeviceService.GetDeviceStatus", violations)
	}

	resp := h.deviceService.GetDeviceStatus(c.Context(), req.DeviceID)
	end()
	return c.JSON(resp)
}

// ReserveDevice handles POST /v1/devices/reserve
func (h *DevicesHandler) ReserveDevice(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "DeviceService.ReserveDevice")

	var req dto.ReserveDeviceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if violations := validation.ReserveDevice(&req); len(violations) > 0 {
		return failValidation("DeviceService.ReserveDevice", violations)
	}

	resp := h.deviceService.ReserveDevice(c.Context(), &req)
	end()
	return c.JSON(resp)
}

// RegisterRoutes registers device routes
func (h *DevicesHandler) RegisterRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware) {
	v1 := app.Group("/v1", authMiddleware.RequireAPIKey())

	v1.Post("/devices/list", h.ListDevices)
	v1.Post("/devices/details", h.GetDeviceDetails)
	v1.Post("/devices/status", h.GetDeviceStatus)
	v1.Post("/devices/reserve", h.ReserveDevice)
}
