package factory

// ScenarioType is a closed enumeration; no value outside this set ever
// reaches the scheduler. D1/D2 normalize any LLM output against it.
type ScenarioType string

const (
	ScenarioBaseline    ScenarioType = "BASELINE"
	ScenarioRushArrives ScenarioType = "RUSH_ARRIVES"
	ScenarioM2Slowdown  ScenarioType = "M2_SLOWDOWN"
)

// IsValid reports whether t is one of the closed enum values.
func (t ScenarioType) IsValid() bool {
	switch t {
	case ScenarioBaseline, ScenarioRushArrives, ScenarioM2Slowdown:
		return true
	default:
		return false
	}
}

// Spec is a single what-if scenario. RushJobID is required iff Type is
// ScenarioRushArrives; SlowdownFactor is required iff Type is
// ScenarioM2Slowdown (and must be >= 2).
type Spec struct {
	Type           ScenarioType `json:"scenario_type"`
	RushJobID      string       `json:"rush_job_id,omitempty"`
	SlowdownFactor int          `json:"slowdown_factor,omitempty"`
}

// NormalizeSpec enforces the per-type parameter requirements of §3
// ScenarioSpec and §4.11's coercion rule. Any spec that fails validation
// against factory cfg is coerced to plain BASELINE; ok is true when the
// spec was valid as given and false when it was coerced (useful for
// warning collection upstream).
func NormalizeSpec(cfg *Config, s Spec) (Spec, bool) {
	switch s.Type {
	case ScenarioBaseline:
		return Spec{Type: ScenarioBaseline}, true
	case ScenarioRushArrives:
		if s.RushJobID == "" {
			return Spec{Type: ScenarioBaseline}, false
		}
		if _, ok := cfg.JobByID(s.RushJobID); !ok {
			return Spec{Type: ScenarioBaseline}, false
		}
		return Spec{Type: ScenarioRushArrives, RushJobID: s.RushJobID}, true
	case ScenarioM2Slowdown:
		if s.SlowdownFactor < 2 {
			return Spec{Type: ScenarioBaseline}, false
		}
		return Spec{Type: ScenarioM2Slowdown, SlowdownFactor: s.SlowdownFactor}, true
	default:
		return Spec{Type: ScenarioBaseline}, false
	}
}

// Equal reports whether two normalized specs represent the same scenario
// (used by D2's dedup rule in §4.12).
func (s Spec) Equal(o Spec) bool {
	if s.Type != o.Type {
		return false
	}
	switch s.Type {
	case ScenarioRushArrives:
		return s.RushJobID == o.RushJobID
	case ScenarioM2Slowdown:
		return s.SlowdownFactor == o.SlowdownFactor
	default:
		return true
	}
}
