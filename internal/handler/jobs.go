package handler

import (
	"bufio"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/dto"
	"github.com/Eigen-OS/eigen-os/internal/middleware"
	"github.com/Eigen-OS/eigen-os/internal/service"
	"github.com/Eigen-OS/eigen-os/internal/validation"
)

// JobsHandler serves the public JobService operations.
type JobsHandler struct {
	jobService *service.JobService
	logger     *zap.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(jobService *service.JobService, logger *zap.Logger) *JobsHandler {
	return &JobsHandler{
		jobService: jobService,
		logger:     logger,
	}
}

// SubmitJob handles POST /v1/jobs/submit
func (h *JobsHandler) SubmitJob(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "JobService.SubmitJob")

	var req dto.SubmitJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if violations := validation.SubmitJob(&req); len(violations) > 0 {
		return failValidation("JobService.SubmitJob", violations)
	}

	resp := h.jobService.SubmitJob(c.Context(), &req)
	end()
	return c.JSON(resp)
}

// GetJobStatus handles POST /v1/jobs/status
func (h *JobsHandler) GetJobStatus(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "JobService.GetJobStatus")

	var req dto.GetJobStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if violations := validation.JobID(req.JobID); len(violations) > 0 {
		return failValidation("JobService.GetJobStatus", violations)
	}

	resp := h.jobService.GetJobStatus(c.Context(), req.JobID)
	end()
	return c.JSON(resp)
}

// CancelJob handles POST /v1/jobs/cancel
func (h *JobsHandler) CancelJob(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "JobService.CancelJob")

	var req dto.CancelJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if violations := validation.JobID(req.JobID); len(violations) > 0 {
		return failValidation("JobService.CancelJob", violations)
	}

	resp := h.jobService.CancelJob(c.Context(), req.JobID)
	end()
	return c.JSON(resp)
}

// GetJobResults handles POST /v1/jobs/results
func (h *JobsHandler) GetJobResults(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "JobService.GetJobResults")

	var req dto.GetJobResultsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if violations := validation.JobID(req.JobID); len(violations) > 0 {
		return failValidation("JobService.GetJobResults", violations)
	}

	resp := h.jobService.GetJobResults(c.Context(), req.JobID)
	end()
	return c.JSON(resp)
}

// StreamJobUpdates handles GET /v1/jobs/stream
//
// The stream is push-only and fixed length: the subscriber receives the
// deterministic update sequence as SSE job_update events and the server
// closes the stream. rpc_end is logged after the final event.
func (h *JobsHandler) StreamJobUpdates(c *fiber.Ctx) error {
	end := beginRPC(c, h.logger, "JobService.StreamJobUpdates")

	jobID := c.Query("job_id")
	lastEventSeq := int64(c.QueryInt("last_event_seq", 0))
	if violations := validation.JobID(jobID); len(violations) > 0 {
		return failValidation("JobService.StreamJobUpdates", violations)
	}

	// Set SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")
	c.Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// The request context is cancelled when the client disconnects,
	// which stops the producer.
	updates := h.jobService.StreamUpdates(c.Context(), jobID, lastEventSeq)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for update := range updates {
			data, err := json.Marshal(update)
			if err != nil {
				h.logger.Error("failed to encode job update", zap.Error(err))
				continue
			}

			fmt.Fprintf(w, "event: job_update\n")
			fmt.Fprintf(w, "data: %s\n\n", data)
			if err := w.Flush(); err != nil {
				return
			}
		}
		end()
	}))

	return nil
}

// RegisterRoutes registers job routes
func (h *JobsHandler) RegisterRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware) {
	v1 := app.Group("/v1", authMiddleware.RequireAPIKey())

	v1.Post("/jobs/submit", h.SubmitJob)
	v1.Post("/jobs/status", h.GetJobStatus)
	v1.Post("/jobs/cancel", h.CancelJob)
	v1.Post("/jobs/results", h.GetJobResults)
	v1.Get("/jobs/stream", h.StreamJobUpdates)
}
