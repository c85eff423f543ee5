package engine

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func bpGen() gopter.Gen {
	return gen.OneGenOf(
		gen.AnyString(),
		gen.Const(""),
		gopter.CombineGens(gen.IntRange(60, 220), gen.IntRange(40, 140)).Map(func(v []interface{}) string {
			return fmt.Sprintf("%d/%d", v[0].(int), v[1].(int))
		}),
	)
}

// TestDecideTotality verifies every generated input yields a complete decision.
// Property: Decide(in) has a defined state, a non-empty code list, and all schedule fields
func TestDecideTotality(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("decide is total over well-typed input", prop.ForAll(
		func(sleep float64, stress, hr int, bp string) bool {
			d, err := Decide(BiometricInput{SleepHours: sleep, StressLevel: stress, RestingHR: hr, BloodPressure: bp})
			if err != nil {
				return false
			}
			return d.HealthState.Valid() &&
				len(d.ReasonCodes) > 0 &&
				d.PriorityFocus != "" &&
				d.RecommendedBedtime != "" &&
				d.WorkCutoffTime != "" &&
				d.Briefing != "" &&
				d.HydrationTargetLiters == 3.0
		},
		gen.Float64Range(0, 14),
		gen.IntRange(0, 10),
		gen.IntRange(35, 200),
		bpGen(),
	))

	properties.TestingRun(t)
}

// TestDecideDeterminism verifies identical input serializes identically.
// Property: json(Decide(in)) == json(Decide(in))
func TestDecideDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decide is deterministic", prop.ForAll(
		func(sleep float64, stress, hr int, bp string) bool {
			in := BiometricInput{SleepHours: sleep, StressLevel: stress, RestingHR: hr, BloodPressure: bp}
			a, _ := Decide(in)
			b, _ := Decide(in)
			ja, errA := json.Marshal(a)
			jb, errB := json.Marshal(b)
			return errA == nil && errB == nil && string(ja) == string(jb)
		},
		gen.Float64Range(0, 14),
		gen.IntRange(0, 10),
		gen.IntRange(35, 200),
		bpGen(),
	))

	properties.TestingRun(t)
}

// TestShortSleepPriority verifies sleep below six hours wins over every marker.
// Property: sleep < 6 => Sleep_Deprived with [LOW_SLEEP]
func TestShortSleepPriority(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("short sleep always classifies as sleep deprived", prop.ForAll(
		func(sleep float64, stress, hr int, bp string) bool {
			d, err := Decide(BiometricInput{SleepHours: sleep, StressLevel: stress, RestingHR: hr, BloodPressure: bp})
			return err == nil &&
				d.HealthState == StateSleepDeprived &&
				len(d.ReasonCodes) == 1 && d.ReasonCodes[0] == ReasonLowSleep &&
				!d.WorkoutAllowed
		},
		gen.Float64Range(0, 5.999),
		gen.IntRange(0, 10),
		gen.IntRange(35, 220),
		bpGen(),
	))

	properties.TestingRun(t)
}

// TestReasonCodesUnique verifies no code repeats within a decision.
func TestReasonCodesUnique(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("reason codes never repeat", prop.ForAll(
		func(sleep float64, stress, hr int, bp string) bool {
			d, _ := Decide(BiometricInput{SleepHours: sleep, StressLevel: stress, RestingHR: hr, BloodPressure: bp})
			seen := make(map[ReasonCode]bool, len(d.ReasonCodes))
			for _, c := range d.ReasonCodes {
				if seen[c] {
					return false
				}
				seen[c] = true
			}
			return true
		},
		gen.Float64Range(0, 14),
		gen.IntRange(0, 10),
		gen.IntRange(35, 200),
		bpGen(),
	))

	properties.TestingRun(t)
}
