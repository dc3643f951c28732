// Command lineforge runs the onboarding+decision pipeline once against a
// single situation text and prints the resulting briefing to stdout
// (spec §6 CLI). Grounded on the teacher's flag/env-var getEnv style in
// cmd/tarsy/main.go, restructured around a cobra root command the way
// bartekus-stagecraft's cortex CLI is built.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lineforge/pkg/config"
	"lineforge/pkg/llm"
	"lineforge/pkg/orchestrator"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var factoryDescription string
	var factoryFile string
	var envPath string
	var yamlPath string
	var requireLLM bool

	cmd := &cobra.Command{
		Use:           "lineforge <situation-text>",
		Short:         "Simulate a factory what-if scenario and print the briefing",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			situationText := args[0]

			cfg, err := config.Load(envPath, yamlPath)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if !cfg.HasAPIKey() {
				if requireLLM {
					return config.ErrMissingAPIKey
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: OPENAI_API_KEY not set, LLM stages will fall back")
			}

			desc := factoryDescription
			if factoryFile != "" {
				data, err := os.ReadFile(factoryFile)
				if err != nil {
					return fmt.Errorf("reading --factory-file: %w", err)
				}
				desc = string(data)
			}

			gateway := llm.NewHTTPGateway(cfg.BaseURL, cfg.APIKey, cfg.Model, nil)
			orch := &orchestrator.Orchestrator{
				Gateway:      gateway,
				AgentModel:   cfg.Model,
				StageTimeout: cfg.StageTimeout,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			resp := orch.Run(ctx, desc, situationText)
			fmt.Fprintln(cmd.OutOrStdout(), resp.Briefing)
			return nil
		},
	}

	cmd.Flags().StringVar(&factoryDescription, "factory-description", "", "free-text factory description")
	cmd.Flags().StringVar(&factoryFile, "factory-file", "", "path to a file containing the factory description (overrides --factory-description)")
	cmd.Flags().StringVar(&envPath, "env-file", ".env", "path to a .env file")
	cmd.Flags().StringVar(&yamlPath, "config", "", "path to an optional lineforge.yaml config file")
	cmd.Flags().BoolVar(&requireLLM, "require-llm", false, "exit with an error when OPENAI_API_KEY is not set")

	return cmd
}
