package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/dto"
	"github.com/Eigen-OS/eigen-os/internal/middleware"
	"github.com/Eigen-OS/eigen-os/internal/service"
	"github.com/Eigen-OS/eigen-os/internal/validation"
)

// KernelHandler serves the KernelGateway operations on the internal
// gateway surface.
type KernelHandler struct {
	kernelService *service.KernelService
	logger        *zap.Logger
}

// NewKernelHandler creates a new kernel handler
func NewKernelHandler(kernelService *service.KernelService, logger *zap.Logger) *KernelHandler {
	return &KernelHandler{
		kernelService: kernelService,
		logger:        logger,
	}
}

// EnqueueJob handles POST /internal/v1/kernel/enqueue
func (h *KernelHandler) EnqueueJob(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "KernelGateway.EnqueueJob")

	var req dto.EnqueueJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	// A whitespace-only name is as useless as an empty one here.
	if violations := validation.RequiredString(strings.TrimSpace(req.Name), "name"); len(violations) > 0 {
		return failValidation("KernelGateway.EnqueueJob", violations)
	}

	resp := h.kernelService.EnqueueJob(c.Context(), &req)
	end()
	return c.JSON(resp)
}

// GetJobStatus handles POST /internal/v1/kernel/status
func (h *KernelHandler) GetJobStatus(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "KernelGateway.GetJobStatus")

	var req dto.GetJobStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if violations := validation.JobID(req.JobID); len(violations) > 0 {
		return failValidation("KernelGateway.GetJobStatus", violations)
	}

	resp, err := h.kernelService.GetJobStatus(c.Context(), req.JobID)
	if err != nil {
		return err
	}
	end()
	return c.JSON(resp)
}

// CancelJob handles POST /internal/v1/kernel/cancel
func (h *KernelHandler) CancelJob(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "KernelGateway.CancelJob")

	var req dto.CancelJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if violations := validation.JobID(req.JobID); len(violations) > 0 {
		return failValidation("KernelGateway.CancelJob", violations)
	}

	resp, err := h.kernelService.CancelJob(c.Context(), req.JobID)
	if err != nil {
		return err
	}
	end()
	return c.JSON(resp)
}

// GetJobResults handles POST /internal/v1/kernel/results
func (h *KernelHandler) GetJobResults(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "KernelGateway.GetJobResults")

	var req dto.GetJobResultsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if violations := validation.JobID(req.JobID); len(violations) > 0 {
		return failValidation("KernelGateway.GetJobResults", violations)
	}

	resp, err := h.kernelService.GetJobResults(c.Context(), req.JobID)
	if err != nil {
		return err
	}
	end()
	return c.JSON(resp)
}

// RegisterRoutes registers kernel gateway routes
func (h *KernelHandler) RegisterRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware) {
	kernel := app.Group("/internal/v1/kernel", authMiddleware.RequireServiceToken())

	kernel.Post("/enqueue", h.EnqueueJob)
	kernel.Post("/status", h.GetJobStatus)
	kernel.Post("/cancel", h.CancelJob)
	kernel.Post("/results", h.GetJobResults)
}
