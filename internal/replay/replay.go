// Package replay re-runs recorded requests through the engine and reports
// where current behavior departs from what was expected. It backs both the
// regression fixtures and the journal drift check.
package replay

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/intake"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/journal"
)

// #region types
// CaseResult captures the outcome of replaying one fixture case.
type CaseResult struct {
	CaseID     string
	Decision   engine.Decision
	Err        error // set when the input was rejected
	Mismatches []string
	Passed     bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Invalid int // cases rejected as invalid input, expected or not
}

// DriftResult compares a journaled decision with a fresh run of its input.
type DriftResult struct {
	DecisionID          string
	RecordedFingerprint string
	CurrentFingerprint  string
	Drifted             bool
	Err                 error
}

// #endregion types

// #region replay
// Replay runs every case through intake and the engine. Operates entirely
// in-memory; nothing is journaled.
func Replay(cases []FixtureCase) []CaseResult {
	results := make([]CaseResult, 0, len(cases))
	for _, c := range cases {
		d, err := intake.Decide(c.Input)
		r := CaseResult{CaseID: c.CaseID, Decision: d, Err: err}
		r.Mismatches = compare(c.Expected, d, err)
		r.Passed = len(r.Mismatches) == 0
		results = append(results, r)
	}
	return results
}

func compare(want FixtureExpected, d engine.Decision, err error) []string {
	var invalid *engine.InvalidInputError
	if want.Invalid {
		if err == nil {
			return []string{"expected invalid input, got a decision"}
		}
		if !errors.As(err, &invalid) {
			return []string{fmt.Sprintf("expected invalid input, got %v", err)}
		}
		return nil
	}
	if err != nil {
		return []string{fmt.Sprintf("unexpected error: %v", err)}
	}

	var out []string
	check := func(field string, want, got any) {
		if !reflect.DeepEqual(want, got) {
			out = append(out, fmt.Sprintf("%s: want %v, got %v", field, want, got))
		}
	}
	if want.HealthState != nil {
		check("health_state", *want.HealthState, d.HealthState)
	}
	if want.WorkoutAllowed != nil {
		check("workout_allowed", *want.WorkoutAllowed, d.WorkoutAllowed)
	}
	if want.NapRecommended != nil {
		check("nap_recommended", *want.NapRecommended, d.NapRecommended)
	}
	if want.PriorityFocus != nil {
		check("priority_focus", *want.PriorityFocus, d.PriorityFocus)
	}
	if want.ReasonCodes != nil {
		check("reason_codes", want.ReasonCodes, d.ReasonCodes)
	}
	if want.RecommendedBedtime != nil {
		check("recommended_bedtime", *want.RecommendedBedtime, d.RecommendedBedtime)
	}
	if want.WorkCutoffTime != nil {
		check("work_cutoff_time", *want.WorkCutoffTime, d.WorkCutoffTime)
	}
	if want.HydrationTargetLiters != nil {
		check("hydration_target_liters", *want.HydrationTargetLiters, d.HydrationTargetLiters)
	}
	return out
}

// #endregion replay

// #region summarize
// Summarize aggregates results from Replay.
func Summarize(results []CaseResult) Summary {
	var s Summary
	s.Total = len(results)
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		if r.Err != nil {
			s.Invalid++
		}
	}
	return s
}

// #endregion summarize

// #region journal-drift
// ReplayJournal re-decides each journaled input and compares fingerprints.
// A drifted entry means the engine's rules changed since it was recorded.
func ReplayJournal(entries []journal.Entry) []DriftResult {
	results := make([]DriftResult, 0, len(entries))
	for _, e := range entries {
		r := DriftResult{DecisionID: e.DecisionID, RecordedFingerprint: e.Fingerprint}
		d, err := engine.Decide(e.Input)
		if err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}
		fp, err := journal.Fingerprint(d)
		if err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}
		r.CurrentFingerprint = fp
		r.Drifted = fp != e.Fingerprint
		results = append(results, r)
	}
	return results
}

// #endregion journal-drift
