// Command lineforge-eval runs the fixed-corpus adversarial harness
// against a live or scripted gateway and reports invariant violations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lineforge/pkg/config"
	"lineforge/pkg/eval"
	"lineforge/pkg/llm"
)

func main() {
	envPath := flag.String("env-file", ".env", "path to a .env file")
	yamlPath := flag.String("config", "", "path to an optional lineforge.yaml config file")
	flag.Parse()

	cfg, err := config.Load(*envPath, *yamlPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	gateway := llm.NewHTTPGateway(cfg.BaseURL, cfg.APIKey, cfg.Model, nil)

	report := eval.Run(context.Background(), cfg.Model, cfg.StageTimeout, fixedCorpus(gateway))

	for _, result := range report.Results {
		status := "PASS"
		if !result.Passed() {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s\n", status, result.Case.Name)
		for _, v := range result.Violations {
			fmt.Printf("    - %s\n", v)
		}
	}
	fmt.Printf("\n%d/%d cases passed\n", len(report.Results)-report.FailureCount(), len(report.Results))

	if !report.Passed() {
		os.Exit(1)
	}
}

// fixedCorpus is the six concrete end-to-end scenarios spec §8 names. Every
// case but "llm_down" runs against the real gateway; "llm_down" is wired to
// an empty llm.ScriptedGateway so it fails every call with KindTransport
// regardless of whether the real gateway is configured, genuinely
// exercising the fallback path rather than duplicating "happy_path".
func fixedCorpus(gateway llm.Gateway) []eval.Case {
	happyPathFactory := "3 machines: M1 assembly, M2 drill, M3 pack. " +
		"Job J1: M1 2h, M2 3h, M3 1h, due 12. " +
		"Job J2: M1 1h, M2 2h, M3 1h, due 14. " +
		"Job J3: M2 1h, M3 2h, due 16."

	invariants := eval.StandardInvariants()

	return []eval.Case{
		{
			Name:               "happy_path",
			FactoryDescription: happyPathFactory,
			SituationText:      "normal day",
			Gateway:            gateway,
			Invariants:         invariants,
		},
		{
			Name:               "coverage_failure_fallback",
			FactoryDescription: "Machines M1, M2, M5. Jobs J1, J2, J7.",
			SituationText:      "normal",
			Gateway:            gateway,
			Invariants:         invariants,
		},
		{
			Name:               "rush_scenario",
			FactoryDescription: happyPathFactory,
			SituationText:      "Rush order for J2, must deliver by hour 12.",
			Gateway:            gateway,
			Invariants:         invariants,
		},
		{
			Name:               "m2_slowdown",
			FactoryDescription: happyPathFactory,
			SituationText:      "M2 running at half speed today",
			Gateway:            gateway,
			Invariants:         invariants,
		},
		{
			Name:               "llm_down",
			FactoryDescription: happyPathFactory,
			SituationText:      "normal day",
			Gateway:            llm.NewScriptedGateway(),
			Invariants:         invariants,
		},
		{
			Name:               "invalid_rush_id",
			FactoryDescription: happyPathFactory,
			SituationText:      "Rush order for J99",
			Gateway:            gateway,
			Invariants:         invariants,
		},
	}
}
