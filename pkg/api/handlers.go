package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lineforge/pkg/onboarding"
	"lineforge/pkg/orchestrator"
)

// simulateHandler handles POST /api/simulate. Gin's binding tags enforce
// the "request validation errors return 4xx without invoking the
// pipeline" rule from spec §6; every bound request runs the full
// orchestrator and always returns 2xx (the pipeline itself never fails
// to the caller, spec §7).
func (s *Server) simulateHandler(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result := s.orchestrator.Run(c.Request.Context(), *req.FactoryDescription, *req.SituationText)

	resp := SimulateResponse{
		Factory:  result.Factory,
		Specs:    result.Specs,
		Metrics:  result.Metrics,
		Briefing: result.Briefing,
		Meta:     result.Meta,
	}
	if s.debugEnabled {
		resp.Debug = result.Debug
	}
	c.JSON(http.StatusOK, resp)
}

// onboardHandler handles POST /api/onboard, running only O0-O4.
func (s *Server) onboardHandler(c *gin.Context) {
	var req OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	deps := onboarding.Deps{
		Gateway:      s.orchestrator.Gateway,
		AgentModel:   s.orchestrator.AgentModel,
		StageTimeout: s.orchestrator.StageTimeout,
	}
	result := onboarding.Run(c.Request.Context(), deps, *req.FactoryDescription)

	c.JSON(http.StatusOK, OnboardResponse{
		Factory: result.Factory,
		Meta:    orchestrator.BuildOnboardingMeta(result),
	})
}
