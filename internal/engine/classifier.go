package engine

// #region thresholds

const (
	sleepDeprivedBelow  = 6.0
	sleepRestoredAt     = 7.0
	highStressAt        = 7
	elevatedRestingHRAt = 80 // strictly above
)

// #endregion thresholds

// #region classify

// Classify maps raw biometrics to a HealthState. Short sleep overrides every
// other signal; otherwise any single strain marker is enough for
// Under_Recovered. No model call, no error path.
func Classify(sleepHours float64, stressLevel, restingHR int, bloodPressure string) HealthState {
	bp := ParseBloodPressure(bloodPressure)

	if sleepHours < sleepDeprivedBelow {
		return StateSleepDeprived
	}

	strained := sleepHours < sleepRestoredAt ||
		stressLevel >= highStressAt ||
		restingHR > elevatedRestingHRAt ||
		bp.Hypertensive()
	if strained {
		return StateUnderRecovered
	}

	return StateWellRecovered
}

// #endregion classify
