package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineforge/pkg/factory"
	"lineforge/pkg/llm"
	"lineforge/pkg/stage"
)

func TestRunHappyPathAllStagesSucceed(t *testing.T) {
	gw := llm.NewScriptedGateway().
		AddValue(coarseStructure{
			Machines: []idName{{ID: "M1", Name: "Assembly"}},
			Jobs:     []idName{{ID: "J1", Name: "Job 1"}},
		}).
		AddValue(factory.Raw{
			Jobs: []factory.RawJob{
				{ID: "J1", Steps: []factory.RawStep{{MachineID: "M1", Duration: dur(2)}}, DueTimeHour: dur(10)},
			},
		})
	deps := Deps{Gateway: gw, AgentModel: "test-model", StageTimeout: time.Second}

	result := Run(context.Background(), deps, "Machine M1. Job J1.")

	require.False(t, result.UsedDefaultFactory)
	require.NotNil(t, result.Factory)
	require.Len(t, result.Records, 5)
	for _, rec := range result.Records {
		assert.Equal(t, stage.StatusSuccess, rec.Status, rec.ID)
	}
	wantIDs := []string{"O0", "O1", "O2", "O3", "O4"}
	for i, rec := range result.Records {
		assert.Equal(t, wantIDs[i], rec.ID)
	}
}

func TestRunO1FailureFallsBackAndSkipsRest(t *testing.T) {
	gw := llm.NewScriptedGateway().AddError(&llm.Error{Kind: llm.KindTransport, Message: "down"})
	deps := Deps{Gateway: gw, AgentModel: "test-model", StageTimeout: time.Second}

	result := Run(context.Background(), deps, "Machine M1. Job J1.")

	require.True(t, result.UsedDefaultFactory)
	require.NotNil(t, result.Factory)
	require.Len(t, result.Records, 5)
	assert.Equal(t, stage.StatusFailed, result.Records[1].Status)
	for _, rec := range result.Records[2:] {
		assert.Equal(t, stage.StatusSkipped, rec.Status)
	}
}

func TestRunCoverageFailureAtO4FallsBack(t *testing.T) {
	gw := llm.NewScriptedGateway().
		AddValue(coarseStructure{
			Machines: []idName{{ID: "M1", Name: "a"}, {ID: "M5", Name: "b"}},
			Jobs:     []idName{{ID: "J1", Name: "c"}, {ID: "J7", Name: "d"}},
		}).
		AddValue(factory.Raw{
			Jobs: []factory.RawJob{
				{ID: "J1", Steps: []factory.RawStep{{MachineID: "M1", Duration: dur(1)}}, DueTimeHour: dur(10)},
			},
		})
	deps := Deps{Gateway: gw, AgentModel: "test-model", StageTimeout: time.Second}

	result := Run(context.Background(), deps, "Machines M1, M5. Jobs J1, J7.")

	require.True(t, result.UsedDefaultFactory)
	assert.Equal(t, stage.StatusSuccess, result.Records[0].Status)
	assert.Equal(t, stage.StatusSuccess, result.Records[1].Status)
	assert.Equal(t, stage.StatusSuccess, result.Records[2].Status)
	assert.Equal(t, stage.StatusSuccess, result.Records[3].Status)
	assert.Equal(t, stage.StatusFailed, result.Records[4].Status)
}

func TestRunEmptyFactoryDescriptionFallsBack(t *testing.T) {
	gw := llm.NewScriptedGateway().AddValue(coarseStructure{})
	deps := Deps{Gateway: gw, AgentModel: "test-model", StageTimeout: time.Second}

	result := Run(context.Background(), deps, "")

	// O1 rejects the empty description before calling the model,
	// triggering the fallback.
	require.True(t, result.UsedDefaultFactory)
	assert.Equal(t, stage.StatusFailed, result.Records[1].Status)
}
