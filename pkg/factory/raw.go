package factory

// Raw is the unvalidated shape returned by onboarding stage O2. Durations
// and due times are float64 because the LLM's JSON output may contain
// fractional or missing numbers (coerced by Normalize, never trusted
// as-is). This is the only place in the module that tolerates an
// unvalidated numeric type.
type Raw struct {
	Machines []RawMachine `json:"machines"`
	Jobs     []RawJob     `json:"jobs"`
}

// RawMachine mirrors Machine before validation.
type RawMachine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawStep mirrors Step before validation; Duration is a pointer so
// "missing" and "zero" are distinguishable for the coercion rule in
// Normalize rule 1.
type RawStep struct {
	MachineID string   `json:"machine_id"`
	Duration  *float64 `json:"duration_hours"`
}

// RawJob mirrors Job before validation; DueTimeHour is a pointer for the
// same missing-vs-zero reason as RawStep.Duration.
type RawJob struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Steps       []RawStep `json:"steps"`
	DueTimeHour *float64  `json:"due_time_hour"`
}
