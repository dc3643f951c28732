// Package toyfactory holds the static, known-good fallback factory
// substituted by the orchestrator whenever onboarding fails (spec §4.10).
// It is a read-only constant: no cross-request mutable state, no locks.
package toyfactory

import "lineforge/pkg/factory"

// Factory returns a fresh copy of the toy factory. Callers get their own
// copy so nothing downstream can accidentally mutate the shared constant.
func Factory() *factory.Config {
	return toy.DeepCopy()
}

var toy = &factory.Config{
	Machines: []factory.Machine{
		{ID: "M1", Name: "Assembly"},
		{ID: "M2", Name: "Drill"},
		{ID: "M3", Name: "Pack"},
	},
	Jobs: []factory.Job{
		{
			ID:   "J1",
			Name: "Order 1",
			Steps: []factory.Step{
				{MachineID: "M1", DurationHours: 2},
				{MachineID: "M2", DurationHours: 3},
				{MachineID: "M3", DurationHours: 1},
			},
			DueTimeHour: 12,
		},
		{
			ID:   "J2",
			Name: "Order 2",
			Steps: []factory.Step{
				{MachineID: "M1", DurationHours: 1},
				{MachineID: "M2", DurationHours: 2},
				{MachineID: "M3", DurationHours: 1},
			},
			DueTimeHour: 14,
		},
		{
			ID:   "J3",
			Name: "Order 3",
			Steps: []factory.Step{
				{MachineID: "M2", DurationHours: 1},
				{MachineID: "M3", DurationHours: 2},
			},
			DueTimeHour: 16,
		},
	},
}
