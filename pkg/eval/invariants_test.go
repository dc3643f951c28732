package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lineforge/pkg/factory"
	"lineforge/pkg/metrics"
	"lineforge/pkg/orchestrator"
	"lineforge/pkg/scheduler"
	"lineforge/pkg/stage"
)

func validFactory() *factory.Config {
	return &factory.Config{
		Machines: []factory.Machine{{ID: "M1", Name: "a"}},
		Jobs:     []factory.Job{{ID: "J1", Name: "J1", Steps: []factory.Step{{MachineID: "M1", DurationHours: 1}}, DueTimeHour: 10}},
	}
}

func allSuccessStages() []stage.Record {
	ids := []string{"O0", "O1", "O2", "O3", "O4", "D1", "D2", "D3", "D4", "D5"}
	out := make([]stage.Record, len(ids))
	for i, id := range ids {
		kind := stage.KindOnboarding
		if id[0] == 'D' {
			kind = stage.KindDecision
		}
		out[i] = stage.Record{ID: id, Kind: kind, Status: stage.StatusSuccess}
	}
	return out
}

func validResponse() orchestrator.Response {
	return orchestrator.Response{
		Factory:  validFactory(),
		Specs:    []factory.Spec{{Type: factory.ScenarioBaseline}},
		Metrics: []metrics.Scenario{{
			MakespanHour:          1,
			JobLateness:           map[string]int{"J1": 0},
			BottleneckMachineID:   "M1",
			BottleneckUtilization: 1,
			ScheduledSteps:        []scheduler.ScheduledStep{{JobID: "J1", MachineID: "M1", StartHour: 0, EndHour: 1}},
		}},
		Briefing: "# Briefing\n",
		Meta:     orchestrator.OnboardingMeta{},
		Debug:    &orchestrator.PipelineDebugPayload{OverallStatus: "SUCCESS", Stages: allSuccessStages()},
	}
}

func TestCheckSpecsMetricsLengthPassesOnMatchedLengths(t *testing.T) {
	assert.Empty(t, checkSpecsMetricsLength(validResponse()))
}

func TestCheckSpecsMetricsLengthFailsOnMismatch(t *testing.T) {
	r := validResponse()
	r.Metrics = append(r.Metrics, metrics.Scenario{})
	assert.NotEmpty(t, checkSpecsMetricsLength(r))
}

func TestCheckSpecsMetricsLengthFailsWhenOutsideBounds(t *testing.T) {
	r := validResponse()
	r.Specs = nil
	r.Metrics = nil
	assert.NotEmpty(t, checkSpecsMetricsLength(r))
}

func TestCheckDebugStageOrderPassesOnCanonicalOrder(t *testing.T) {
	assert.Empty(t, checkDebugStageOrder(validResponse()))
}

func TestCheckDebugStageOrderFailsOnMissingDebug(t *testing.T) {
	r := validResponse()
	r.Debug = nil
	assert.NotEmpty(t, checkDebugStageOrder(r))
}

func TestCheckDebugStageOrderFailsOnWrongOrder(t *testing.T) {
	r := validResponse()
	r.Debug.Stages[0], r.Debug.Stages[1] = r.Debug.Stages[1], r.Debug.Stages[0]
	assert.NotEmpty(t, checkDebugStageOrder(r))
}

func TestCheckMetricsBoundsPassesOnValidMetrics(t *testing.T) {
	assert.Empty(t, checkMetricsBounds(validResponse()))
}

func TestCheckMetricsBoundsFailsOnUtilizationAboveOne(t *testing.T) {
	r := validResponse()
	r.Metrics[0].BottleneckUtilization = 1.5
	assert.NotEmpty(t, checkMetricsBounds(r))
}

func TestCheckMetricsBoundsFailsOnNegativeLateness(t *testing.T) {
	r := validResponse()
	r.Metrics[0].JobLateness["J1"] = -1
	assert.NotEmpty(t, checkMetricsBounds(r))
}

func TestCheckMetricsBoundsFailsOnLatenessForUnknownJob(t *testing.T) {
	r := validResponse()
	r.Metrics[0].JobLateness["J99"] = 0
	assert.NotEmpty(t, checkMetricsBounds(r))
}

func TestCheckFactoryInvariantsPassesOnValidFactory(t *testing.T) {
	assert.Empty(t, checkFactoryInvariants(validResponse()))
}

func TestCheckFactoryInvariantsFailsOnNilFactory(t *testing.T) {
	r := validResponse()
	r.Factory = nil
	assert.NotEmpty(t, checkFactoryInvariants(r))
}

func TestCheckFactoryInvariantsFailsOnDuplicateMachineID(t *testing.T) {
	r := validResponse()
	r.Factory.Machines = append(r.Factory.Machines, factory.Machine{ID: "M1", Name: "dup"})
	assert.NotEmpty(t, checkFactoryInvariants(r))
}

func TestCheckFactoryInvariantsFailsOnJobWithNoSteps(t *testing.T) {
	r := validResponse()
	r.Factory.Jobs[0].Steps = nil
	assert.NotEmpty(t, checkFactoryInvariants(r))
}

func TestCheckFactoryInvariantsFailsOnStepReferencingUnknownMachine(t *testing.T) {
	r := validResponse()
	r.Factory.Jobs[0].Steps[0].MachineID = "M99"
	assert.NotEmpty(t, checkFactoryInvariants(r))
}

func TestCheckFactoryInvariantsFailsOnSubOneDuration(t *testing.T) {
	r := validResponse()
	r.Factory.Jobs[0].Steps[0].DurationHours = 0
	assert.NotEmpty(t, checkFactoryInvariants(r))
}

func TestCheckOverallStatusSuccessPassesWhenConsistent(t *testing.T) {
	assert.Empty(t, checkOverallStatusSuccess(validResponse()))
}

func TestCheckOverallStatusSuccessFailsWhenInconsistent(t *testing.T) {
	r := validResponse()
	r.Debug.Stages[0].Status = stage.StatusFailed
	// OverallStatus still claims SUCCESS even though a stage failed.
	assert.NotEmpty(t, checkOverallStatusSuccess(r))
}

func TestCheckUsedDefaultFactoryPassesWhenConsistent(t *testing.T) {
	assert.Empty(t, checkUsedDefaultFactory(validResponse()))
}

func TestCheckUsedDefaultFactoryFailsWhenInconsistent(t *testing.T) {
	r := validResponse()
	r.Debug.Stages[1].Status = stage.StatusFailed // O1 fails
	// Meta still claims the real factory was used.
	assert.NotEmpty(t, checkUsedDefaultFactory(r))
}

func TestCheckBriefingNonEmptyPassesOnNonEmptyBriefing(t *testing.T) {
	assert.Empty(t, checkBriefingNonEmpty(validResponse()))
}

func TestCheckBriefingNonEmptyFailsOnEmptyBriefing(t *testing.T) {
	r := validResponse()
	r.Briefing = ""
	assert.NotEmpty(t, checkBriefingNonEmpty(r))
}

func TestCheckScheduleDisjointPassesOnValidSchedule(t *testing.T) {
	assert.Empty(t, checkScheduleDisjoint(validResponse()))
}

func TestCheckScheduleDisjointFailsOnSubOneDuration(t *testing.T) {
	r := validResponse()
	r.Metrics[0].ScheduledSteps[0].EndHour = r.Metrics[0].ScheduledSteps[0].StartHour
	assert.NotEmpty(t, checkScheduleDisjoint(r))
}

func TestCheckScheduleDisjointFailsOnUnknownMachine(t *testing.T) {
	r := validResponse()
	r.Metrics[0].ScheduledSteps[0].MachineID = "M99"
	assert.NotEmpty(t, checkScheduleDisjoint(r))
}

func TestCheckScheduleDisjointFailsOnOverlappingStepsOnSameMachine(t *testing.T) {
	r := validResponse()
	r.Metrics[0].ScheduledSteps = []scheduler.ScheduledStep{
		{JobID: "J1", MachineID: "M1", StartHour: 0, EndHour: 2},
		{JobID: "J2", MachineID: "M1", StartHour: 1, EndHour: 3},
	}
	assert.NotEmpty(t, checkScheduleDisjoint(r))
}

func TestCheckScheduleDisjointFailsWhenJobStepStartsBeforePriorEnds(t *testing.T) {
	r := validResponse()
	// Different machines, so only the job-order check can fire.
	r.Factory.Machines = append(r.Factory.Machines, factory.Machine{ID: "M2", Name: "b"})
	r.Metrics[0].ScheduledSteps = []scheduler.ScheduledStep{
		{JobID: "J1", MachineID: "M1", StartHour: 0, EndHour: 2},
		{JobID: "J1", MachineID: "M2", StartHour: 1, EndHour: 3},
	}
	msg := checkScheduleDisjoint(r)
	assert.NotEmpty(t, msg)
	assert.Contains(t, msg, "before prior step ends")
}

func TestStandardInvariantsCoversAllEightChecks(t *testing.T) {
	assert.Len(t, StandardInvariants(), 8)
}

func TestStandardInvariantsAllPassOnValidResponse(t *testing.T) {
	r := validResponse()
	for _, inv := range StandardInvariants() {
		assert.Empty(t, inv.Check(r), inv.Name)
	}
}
