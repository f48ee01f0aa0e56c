package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/workflow"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *slog.Logger
	router *gin.Engine
	engine *workflow.Engine
	runs   *workflow.RunStore
}

// generateRequest is the body of both post-generation endpoints.
// WaitForResult switches between a synchronous response and a
// 202 + run ID that the caller polls.
type generateRequest struct {
	workflow.Input
	WaitForResult bool `json:"waitForResult"`
}

// New creates a new Server instance
func New(cfg *config.Config, logger *slog.Logger, engine *workflow.Engine) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Configure proxy trust for production (Fly.io)
	if cfg.Env == config.EnvProduction {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}

	server := &Server{
		config: cfg,
		logger: logger,
		router: router,
		engine: engine,
		runs:   workflow.NewRunStore(),
	}

	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router exposes the underlying gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.POST("/posts", s.handleGeneratePost)
		api.POST("/posts/preview", s.handleGeneratePreview)
		api.GET("/runs/:id", s.handleGetRun)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "draftforge",
	})
}

// handleGeneratePost runs the full post workflow, including assets and
// optional publication.
func (s *Server) handleGeneratePost(c *gin.Context) {
	s.handleGenerate(c, func(ctx context.Context, in workflow.Input) (any, error) {
		return s.engine.RunFull(ctx, in)
	})
}

// handleGeneratePreview runs the shorter preview workflow that stops
// after the first draft.
func (s *Server) handleGeneratePreview(c *gin.Context) {
	s.handleGenerate(c, func(ctx context.Context, in workflow.Input) (any, error) {
		return s.engine.RunPreview(ctx, in)
	})
}

func (s *Server) handleGenerate(c *gin.Context, run func(context.Context, workflow.Input) (any, error)) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.WaitForResult {
		result, err := run(c.Request.Context(), req.Input)
		if err != nil {
			s.logger.Error("Workflow failed", "topic", req.Topic, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	id := s.runs.Create()
	go s.runAsync(id, req.Input, run)

	c.JSON(http.StatusAccepted, gin.H{"runId": id, "state": workflow.RunPending})
}

// runAsync executes a workflow detached from the originating request.
// The request context ends when the 202 is written, so the run gets a
// fresh background context.
func (s *Server) runAsync(id string, in workflow.Input, run func(context.Context, workflow.Input) (any, error)) {
	_ = s.runs.SetRunning(id)

	result, err := run(context.Background(), in)
	if err != nil {
		s.logger.Error("Workflow failed", "run_id", id, "topic", in.Topic, "error", err)
		_ = s.runs.Fail(id, err)
		return
	}

	s.logger.Info("Workflow completed", "run_id", id, "topic", in.Topic)
	_ = s.runs.Complete(id, result)
}

// handleGetRun reports the state of a previously started run and, once
// completed, its result.
func (s *Server) handleGetRun(c *gin.Context) {
	run, err := s.runs.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}
