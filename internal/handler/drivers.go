package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/domain"
	"github.com/Eigen-OS/eigen-os/internal/middleware"
	apperrors "github.com/Eigen-OS/eigen-os/internal/pkg/errors"
)

// DriversHandler serves the DriverManagerService surface. No driver
// backend is registered yet, so the list is empty and everything else
// is declared-but-unimplemented.
type DriversHandler struct {
	logger *zap.Logger
}

// NewDriversHandler creates a new drivers handler
func NewDriversHandler(logger *zap.Logger) *DriversHandler {
	return &DriversHandler{logger: logger}
}

// ListDevices handles POST /internal/v1/drivers/list
func (h *DriversHandler) ListDevices(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "DriverManagerService.ListDevices")

	end()
	return c.JSON(fiber.Map{
		"devices": []domain.DeviceInfo{},
	})
}

// GetDeviceStatus handles POST /internal/v1/drivers/status
func (h *DriversHandler) GetDeviceStatus(c *fiber.Ctx) error {
	beginRPC(c, h.logger, "DriverManagerService.GetDeviceStatus")
	return apperrors.Unimplemented("DriverManagerService.GetDeviceStatus")
}

// ExecuteCircuit handles POST /internal/v1/drivers/execute
func (h *DriversHandler) ExecuteCircuit(c *fiber.Ctx) error {
	beginRPC(c, h.logger, "DriverManagerService.ExecuteCircuit")
	return apperrors.Unimplemented("DriverManagerService.ExecuteCircuit")
}

// CalibrateDevice handles POST /internal/v1/drivers/calibrate
func (h *DriversHandler) CalibrateDevice(c *fiber.Ctx) error {
	beginRPC(c, h.logger, "DriverManagerService.CalibrateDevice")
	return apperrors.Unimplemented("DriverManagerService.CalibrateDevice")
}

// RegisterRoutes registers driver manager routes
func (h *DriversHandler) RegisterRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware) {
	drivers := app.Group("/internal/v1/drivers", authMiddleware.RequireServiceToken())

	drivers.Post("/list", h.ListDevices)
	drivers.Post("/status", h.GetDeviceStatus)
	drivers.Post("/execute", h.ExecuteCircuit)
	drivers.Post("/calibrate", h.CalibrateDevice)
}
