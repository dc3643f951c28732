// Package api wraps the orchestrator in a gin HTTP server (spec §4.18,
// §6). Grounded on the teacher's pkg/api.Server shape (a struct wrapping
// the framework engine, Set*-style optional wiring, a dedicated health
// handler) and on gin-gonic/gin plus gin-contrib/cors as used by
// yungbote-neurobridge-backend's router.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lineforge/pkg/llm"
	"lineforge/pkg/orchestrator"
	"lineforge/pkg/toyfactory"
)

// Server is the HTTP API server.
type Server struct {
	engine       *gin.Engine
	httpServer   *http.Server
	orchestrator *orchestrator.Orchestrator
	debugEnabled bool
}

// NewServer builds a Server wired to orch. corsOrigins may be empty, in
// which case no cross-origin requests are allowed. debugEnabled controls
// whether responses include the `debug` field (spec §6: "omitted when
// instrumentation is disabled").
func NewServer(orch *orchestrator.Orchestrator, corsOrigins []string, debugEnabled bool) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())

	if len(corsOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Request-Id"},
			AllowCredentials: true,
		}))
	}

	s := &Server{
		engine:       engine,
		orchestrator: orch,
		debugEnabled: debugEnabled,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.healthHandler)
	s.engine.POST("/api/simulate", s.simulateHandler)
	s.engine.POST("/api/onboard", s.onboardHandler)
}

// Handler exposes the underlying http.Handler, primarily for tests that
// drive the server with httptest.Server or httptest.NewRecorder.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts the HTTP server on addr (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Set("request_id", id)
		c.Next()
	}
}

func (s *Server) healthHandler(c *gin.Context) {
	gw, isHTTP := s.orchestrator.Gateway.(*llm.HTTPGateway)
	llmConfigured := isHTTP && strings.TrimSpace(gw.APIKey) != ""

	toyOK := toyfactory.Factory() != nil

	status := "healthy"
	if !toyOK {
		status = "unhealthy"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:             status,
		LLMConfigured:      llmConfigured,
		ToyFactoryLoadable: toyOK,
	})
}
