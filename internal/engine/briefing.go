package engine

import (
	"fmt"
	"strings"
)

// #region phrase-tables

// Human-reviewed controlled phrases. The composer never generates text
// outside these tables.
var reasonPhrases = map[ReasonCode]string{
	ReasonLowSleep:       "Your sleep duration fell below clinical recovery thresholds.",
	ReasonHighStress:     "Significant daytime stress levels are impacting your nervous system's ability to recover.",
	ReasonHighHR:         "Elevated resting heart rate detected, indicating physiological strain or fatigue.",
	ReasonHighBP:         "Blood pressure readings are outside optimal ranges, suggesting systemic load.",
	ReasonGoodRecovery:   "Consistent sleep and low stress are maintaining your physiological capacity.",
	ReasonStableBaseline: "Your current metrics align with your standard activity-to-rest ratio.",
}

var stateTitles = map[HealthState]string{
	StateSleepDeprived:  "🔴 CRITICAL RECOVERY DEFICIT",
	StateUnderRecovered: "🟡 MODERATE STRAIN WARNING",
	StateWellRecovered:  "🟢 OPTIMAL READINESS",
}

var stateSummaries = map[HealthState]string{
	StateSleepDeprived:  "Your body has not completed a full repair cycle. Avoid all physiological load.",
	StateUnderRecovered: "Recovery is incomplete. Prioritize stability and avoid max-effort tasks.",
	StateWellRecovered:  "Your system is ready for standard or high-intensity activity.",
}

const (
	fallbackTitle   = "Health Status Update"
	fallbackSummary = "No specific guidance available."
	fallbackReason  = "Metric variation detected."

	workoutAllowedAdvice = "✅ Workout Allowed: Prioritize moderate intensity."
	workoutBlockedAdvice = "🛑 No Workout: Physical load should be minimized."
)

// #endregion phrase-tables

// #region compose

// Compose renders the briefing: title, summary, an Analysis section with one
// bullet per reason code in the order given, and a Directives section with a
// single workout line.
func Compose(state HealthState, reasonCodes []ReasonCode, workoutAllowed bool) string {
	title, ok := stateTitles[state]
	if !ok {
		title = fallbackTitle
	}
	summary, ok := stateSummaries[state]
	if !ok {
		summary = fallbackSummary
	}

	bullets := make([]string, len(reasonCodes))
	for i, code := range reasonCodes {
		bullets[i] = "- " + ReasonPhrase(code)
	}

	advice := workoutBlockedAdvice
	if workoutAllowed {
		advice = workoutAllowedAdvice
	}

	briefing := fmt.Sprintf("%s\n%s\n\nAnalysis:\n%s\n\nDirectives:\n%s",
		title, summary, strings.Join(bullets, "\n"), advice)
	return strings.TrimSpace(briefing)
}

// ReasonPhrase returns the controlled sentence for a code.
func ReasonPhrase(code ReasonCode) string {
	if p, ok := reasonPhrases[code]; ok {
		return p
	}
	return fallbackReason
}

// #endregion compose
