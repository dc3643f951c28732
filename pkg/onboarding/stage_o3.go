package onboarding

import (
	"lineforge/pkg/factory"
	"lineforge/pkg/stage"
)

// RunO3 is a pure invocation of factory.Normalize. A SUCCESS record may
// still carry warnings (spec §4.8: "the stage is SUCCESS with warnings,
// not FAILED"); only the empty-factory marker fails the stage.
func RunO3(raw factory.Raw) (*factory.Config, stage.Record) {
	cfg, warnings := factory.Normalize(raw)

	rec := stage.Record{
		ID:   "O3",
		Name: "Normalize & validate",
		Kind: stage.KindOnboarding,
	}

	if cfg == nil {
		rec.Status = stage.StatusFailed
		errs := append([]string{ErrNormalizationEmpty.Error()}, warnings...)
		rec.Errors = truncateAll(errs)
		rec.Summary = map[string]any{
			"machine_count": 0,
			"job_count":     0,
			"warnings":      warnings,
		}
		return nil, rec
	}

	rec.Status = stage.StatusSuccess
	rec.Summary = map[string]any{
		"machine_count": len(cfg.Machines),
		"job_count":     len(cfg.Jobs),
		"warnings":      warnings,
	}
	return cfg, rec
}

func truncateAll(errs []string) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = stage.TruncateError(e)
	}
	return out
}
