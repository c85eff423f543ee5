// Package engine is the deterministic decision core: biometrics in, one fully
// populated Decision out. Every function here is pure and safe to call from
// any number of goroutines.
package engine

import "math"

// #region hydration

const (
	hydrationLiters        = 3.0
	hydrationUnknownLiters = 2.5 // states outside the closed set
)

// HydrationTarget returns the daily water target for a state. The 2.5 branch
// cannot be reached through Classify; it exists for states added later.
func HydrationTarget(state HealthState) float64 {
	if !state.Valid() {
		return hydrationUnknownLiters
	}
	return hydrationLiters
}

// #endregion hydration

// #region decide

// Decide runs classification, both advisors and the briefing composer, and
// merges their disjoint outputs. It fails only when sleep_hours is not a
// finite number; a malformed blood pressure is silently defaulted.
func Decide(in BiometricInput) (Decision, error) {
	if math.IsNaN(in.SleepHours) || math.IsInf(in.SleepHours, 0) {
		return Decision{}, &InvalidInputError{Field: "sleep_hours", Reason: "must be a finite number"}
	}

	bp := in.BloodPressure
	if bp == "" {
		bp = DefaultBloodPressure
	}

	state := Classify(in.SleepHours, in.StressLevel, in.RestingHR, bp)
	recovery := Advise(state, in.StressLevel, in.RestingHR, bp)
	schedule := Schedule(state)
	briefing := Compose(state, recovery.ReasonCodes, recovery.WorkoutAllowed)

	return Decision{
		HealthState:           state,
		WorkoutAllowed:        recovery.WorkoutAllowed,
		NapRecommended:        recovery.NapRecommended,
		PriorityFocus:         recovery.PriorityFocus,
		ReasonCodes:           recovery.ReasonCodes,
		RecommendedBedtime:    schedule.RecommendedBedtime,
		WorkCutoffTime:        schedule.WorkCutoffTime,
		Briefing:              briefing,
		HydrationTargetLiters: HydrationTarget(state),
	}, nil
}

// #endregion decide
