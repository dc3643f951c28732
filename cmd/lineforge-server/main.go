// Command lineforge-server runs the HTTP API (spec §4.18). Grounded on
// the teacher's cmd/tarsy/main.go: flag + getEnv-with-default for the
// env-file, config and debug settings, the port from config.Load
// (HTTP_PORT), godotenv for local secrets, gin.SetMode from GIN_MODE.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"lineforge/pkg/api"
	"lineforge/pkg/config"
	"lineforge/pkg/llm"
	"lineforge/pkg/orchestrator"
)

func main() {
	envPath := flag.String("env-file", getEnv("ENV_FILE", ".env"), "path to a .env file")
	yamlPath := flag.String("config", getEnv("LINEFORGE_CONFIG", ""), "path to an optional lineforge.yaml config file")
	debug := flag.Bool("debug", getEnv("LINEFORGE_DEBUG", "") != "", "include the debug payload in every response")
	flag.Parse()

	cfg, err := config.Load(*envPath, *yamlPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	gateway := llm.NewHTTPGateway(cfg.BaseURL, cfg.APIKey, cfg.Model, nil)
	orch := &orchestrator.Orchestrator{
		Gateway:      gateway,
		AgentModel:   cfg.Model,
		StageTimeout: cfg.StageTimeout,
	}

	server := api.NewServer(orch, cfg.CORSOrigins, *debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("lineforge-server listening", "port", cfg.HTTPPort, "llm_configured", cfg.HasAPIKey())
		if err := server.Start(":" + cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
