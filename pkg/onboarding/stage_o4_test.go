package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lineforge/pkg/factory"
	"lineforge/pkg/stage"
)

func TestRunO4FullCoveragePasses(t *testing.T) {
	cfg := &factory.Config{
		Machines: []factory.Machine{{ID: "M1", Name: "a"}},
		Jobs:     []factory.Job{{ID: "J1", Name: "j", Steps: []factory.Step{{MachineID: "M1", DurationHours: 1}}, DueTimeHour: 5}},
	}
	rec := RunO4(explicitFor([]string{"M1"}, []string{"J1"}), cfg)

	assert.Equal(t, stage.StatusSuccess, rec.Status)
	assert.Equal(t, 1.0, rec.Summary["machine_coverage"])
	assert.Equal(t, 1.0, rec.Summary["job_coverage"])
}

func TestRunO4PartialCoverageFails(t *testing.T) {
	cfg := &factory.Config{
		Machines: []factory.Machine{{ID: "M1", Name: "a"}},
		Jobs:     []factory.Job{{ID: "J1", Name: "j", Steps: []factory.Step{{MachineID: "M1", DurationHours: 1}}, DueTimeHour: 5}},
	}
	rec := RunO4(explicitFor([]string{"M1", "M5"}, []string{"J1", "J7"}), cfg)

	assert.Equal(t, stage.StatusFailed, rec.Status)
	assert.Equal(t, []string{"M5"}, rec.Summary["missing_machines"])
	assert.Equal(t, []string{"J7"}, rec.Summary["missing_jobs"])
}

func TestRunO4NoExplicitIDsIsFullCoverage(t *testing.T) {
	cfg := &factory.Config{
		Machines: []factory.Machine{{ID: "M1", Name: "a"}},
		Jobs:     []factory.Job{{ID: "J1", Name: "j", Steps: []factory.Step{{MachineID: "M1", DurationHours: 1}}, DueTimeHour: 5}},
	}
	rec := RunO4(explicitFor(nil, nil), cfg)

	assert.Equal(t, stage.StatusSuccess, rec.Status)
}
