package onboarding

import (
	"context"

	"lineforge/pkg/factory"
	"lineforge/pkg/stage"
	"lineforge/pkg/toyfactory"
)

// Result is the outcome of running the full onboarding pipeline.
type Result struct {
	Factory            *factory.Config
	UsedDefaultFactory bool
	OnboardingErrors   []string
	Records            []stage.Record
}

// Run sequences O0 through O4. On any stage failure, remaining onboarding
// stages are recorded SKIPPED and the toy-factory fallback is substituted
// (spec §4.10); the caller (the decision pipeline) always proceeds
// afterward regardless of which factory it received.
func Run(ctx context.Context, deps Deps, factoryDescription string) Result {
	var records []stage.Record

	explicit, recO0 := RunO0(factoryDescription)
	records = append(records, recO0)

	coarse, recO1 := RunO1(ctx, deps, factoryDescription, explicit)
	records = append(records, recO1)
	if recO1.Status != stage.StatusSuccess {
		return fallback(records, recO1.Errors, "O2", "O3", "O4")
	}

	raw, recO2 := RunO2(ctx, deps, factoryDescription, coarse)
	records = append(records, recO2)
	if recO2.Status != stage.StatusSuccess {
		return fallback(records, recO2.Errors, "O3", "O4")
	}

	cfg, recO3 := RunO3(raw)
	records = append(records, recO3)
	if recO3.Status != stage.StatusSuccess {
		return fallback(records, recO3.Errors, "O4")
	}

	recO4 := RunO4(explicit, cfg)
	records = append(records, recO4)
	if recO4.Status != stage.StatusSuccess {
		return fallback(records, recO4.Errors)
	}

	return Result{
		Factory:            cfg,
		UsedDefaultFactory: false,
		Records:            records,
	}
}

// skippedStageNames maps the remaining stage ids to their display names
// so fallback() can build well-formed SKIPPED records.
var skippedStageNames = map[string]string{
	"O1": "Coarse structure extraction",
	"O2": "Fine extraction",
	"O3": "Normalize & validate",
	"O4": "Coverage assessment",
}

func fallback(records []stage.Record, failingErrors []string, remainingIDs ...string) Result {
	for _, id := range remainingIDs {
		records = append(records, stage.Skipped(id, skippedStageNames[id], stage.KindOnboarding))
	}
	return Result{
		Factory:            toyfactory.Factory(),
		UsedDefaultFactory: true,
		OnboardingErrors:   failingErrors,
		Records:            records,
	}
}
