package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/middleware"
	apperrors "github.com/Eigen-OS/eigen-os/internal/pkg/errors"
)

// CompilerHandler serves the CompilationService surface. The compiler
// pipeline lives in the kernel; this facade is declared ahead of it.
type CompilerHandler struct {
	logger *zap.Logger
}

// NewCompilerHandler creates a new compiler handler
func NewCompilerHandler(logger *zap.Logger) *CompilerHandler {
	return &CompilerHandler{logger: logger}
}

// CompileCircuit handles POST /internal/v1/compiler/compile
func (h *CompilerHandler) CompileCircuit(c *fiber.Ctx) error {
	beginRPC(c, h.logger, "CompilationService.CompileCircuit")
	return apperrors.Unimplemented("CompilationService.CompileCircuit")
}

// OptimizeCircuit handles POST /internal/v1/compiler/optimize
func (h *CompilerHandler) OptimizeCircuit(c *fiber.Ctx) error {
	beginRPC(c, h.logger, "CompilationService.OptimizeCircuit")
	return apperrors.Unimplemented("CompilationService.OptimizeCircuit")
}

// ValidateCircuit handles POST /internal/v1/compiler/validate
func (h *CompilerHandler) ValidateCircuit(c *fiber.Ctx) error {
	beginRPC(c, h.logger, "CompilationService.ValidateCircuit")
	return apperrors.Unimplemented("CompilationService.ValidateCircuit")
}

// RegisterRoutes registers compilation routes
func (h *CompilerHandler) RegisterRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware) {
	compiler := app.Group("/internal/v1/compiler", authMiddleware.RequireServiceToken())

	compiler.Post("/compile", h.CompileCircuit)
	compiler.Post("/optimize", h.OptimizeCircuit)
	compiler.Post("/validate", h.ValidateCircuit)
}
