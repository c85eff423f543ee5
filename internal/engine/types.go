package engine

// #region health-state

// HealthState is the classified recovery state. The three defined values are
// ordered by severity, most severe first.
type HealthState string

const (
	StateSleepDeprived  HealthState = "Sleep_Deprived"
	StateUnderRecovered HealthState = "Under_Recovered"
	StateWellRecovered  HealthState = "Well_Recovered"
)

// States lists the defined states in severity order.
var States = []HealthState{StateSleepDeprived, StateUnderRecovered, StateWellRecovered}

// Valid reports whether s is one of the three defined states.
func (s HealthState) Valid() bool {
	switch s {
	case StateSleepDeprived, StateUnderRecovered, StateWellRecovered:
		return true
	}
	return false
}

// Severity returns 0 for the most severe state and increases toward
// Well_Recovered. Undefined states rank after every defined one.
func (s HealthState) Severity() int {
	for i, st := range States {
		if st == s {
			return i
		}
	}
	return len(States)
}

// #endregion health-state

// #region reason-code

// ReasonCode tags the physiological driver behind a classification.
type ReasonCode string

const (
	ReasonLowSleep       ReasonCode = "LOW_SLEEP"
	ReasonHighStress     ReasonCode = "HIGH_STRESS"
	ReasonHighHR         ReasonCode = "HIGH_HR"
	ReasonHighBP         ReasonCode = "HIGH_BP"
	ReasonGoodRecovery   ReasonCode = "GOOD_RECOVERY"
	ReasonStableBaseline ReasonCode = "STABLE_BASELINE"
)

// #endregion reason-code

// #region priority-focus

// PriorityFocus is the top-level behavioral theme of the advice.
type PriorityFocus string

const (
	FocusSleep    PriorityFocus = "sleep"
	FocusRecovery PriorityFocus = "recovery"
	FocusActivity PriorityFocus = "activity"
)

// #endregion priority-focus

// #region biometric-input

// DefaultBloodPressure is substituted for an absent or unparseable reading.
const DefaultBloodPressure = "120/80"

// BiometricInput is a single decision request. BloodPressure is "SYS/DIA";
// empty means absent.
type BiometricInput struct {
	SleepHours    float64 `json:"sleep_hours" yaml:"sleep_hours"`
	StressLevel   int     `json:"stress_level" yaml:"stress_level"`
	RestingHR     int     `json:"resting_hr" yaml:"resting_hr"`
	BloodPressure string  `json:"blood_pressure,omitempty" yaml:"blood_pressure,omitempty"`
}

// #endregion biometric-input

// #region advice

// RecoveryAdvice is the RecoveryAdvisor's contribution to a Decision.
type RecoveryAdvice struct {
	WorkoutAllowed bool
	NapRecommended bool
	PriorityFocus  PriorityFocus
	ReasonCodes    []ReasonCode
}

// SleepSchedule is the ScheduleAdvisor's contribution to a Decision.
type SleepSchedule struct {
	RecommendedBedtime string
	WorkCutoffTime     string
}

// #endregion advice

// #region decision

// Decision is the full output for one request. Every field is always set.
type Decision struct {
	HealthState           HealthState   `json:"health_state" yaml:"health_state"`
	WorkoutAllowed        bool          `json:"workout_allowed" yaml:"workout_allowed"`
	NapRecommended        bool          `json:"nap_recommended" yaml:"nap_recommended"`
	PriorityFocus         PriorityFocus `json:"priority_focus" yaml:"priority_focus"`
	ReasonCodes           []ReasonCode  `json:"reason_codes" yaml:"reason_codes"`
	RecommendedBedtime    string        `json:"recommended_bedtime" yaml:"recommended_bedtime"`
	WorkCutoffTime        string        `json:"work_cutoff_time" yaml:"work_cutoff_time"`
	Briefing              string        `json:"briefing" yaml:"briefing"`
	HydrationTargetLiters float64       `json:"hydration_target_liters" yaml:"hydration_target_liters"`
}

// #endregion decision
