package engine

// #region advise

// Advise decides workout permission, nap protocol and priority focus for a
// state, and records which markers justified it. The blood pressure string is
// parsed again here so the advisor can be called on its own.
func Advise(state HealthState, stressLevel, restingHR int, bloodPressure string) RecoveryAdvice {
	bp := ParseBloodPressure(bloodPressure)

	switch state {
	case StateSleepDeprived:
		return RecoveryAdvice{
			WorkoutAllowed: false,
			NapRecommended: true,
			PriorityFocus:  FocusSleep,
			ReasonCodes:    []ReasonCode{ReasonLowSleep},
		}

	case StateUnderRecovered:
		return RecoveryAdvice{
			WorkoutAllowed: false,
			NapRecommended: stressLevel > 5 || bp.Systolic > 130,
			PriorityFocus:  FocusRecovery,
			ReasonCodes:    strainReasons(stressLevel, restingHR, bp),
		}

	default:
		return RecoveryAdvice{
			WorkoutAllowed: true,
			NapRecommended: false,
			PriorityFocus:  FocusActivity,
			ReasonCodes:    []ReasonCode{ReasonGoodRecovery},
		}
	}
}

// #endregion advise

// #region strain-reasons

// strainReasons checks stress, heart rate, then blood pressure. Sleep is the
// only marker left when none of them fired.
func strainReasons(stressLevel, restingHR int, bp BloodPressure) []ReasonCode {
	reasons := make([]ReasonCode, 0, 3)
	if stressLevel >= highStressAt {
		reasons = append(reasons, ReasonHighStress)
	}
	if restingHR > elevatedRestingHRAt {
		reasons = append(reasons, ReasonHighHR)
	}
	if bp.Hypertensive() {
		reasons = append(reasons, ReasonHighBP)
	}
	if len(reasons) == 0 {
		reasons = append(reasons, ReasonLowSleep)
	}
	return reasons
}

// #endregion strain-reasons
