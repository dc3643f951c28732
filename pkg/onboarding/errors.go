package onboarding

import "errors"

// Sentinel errors for the onboarding-specific failure kinds in spec §7.
var (
	ErrCoverageMismatchCoarse = errors.New("COVERAGE_MISMATCH_COARSE")
	ErrCoverageMismatchFine   = errors.New("COVERAGE_MISMATCH_FINE")
	ErrCoverageMismatch       = errors.New("COVERAGE_MISMATCH")
	ErrNormalizationEmpty     = errors.New("NORMALIZATION_EMPTY")
)
