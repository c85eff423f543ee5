// Package intake turns plain key/value requests (decoded JSON, CSV rows,
// dashboard forms) into engine inputs, rejecting missing or ill-typed
// required fields instead of guessing them.
package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
)

// #region parse

// ParseJSON decodes a JSON object and parses it like Parse.
func ParseJSON(data []byte) (engine.BiometricInput, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return engine.BiometricInput{}, &engine.InvalidInputError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return parseDocument(doc)
}

// Parse validates a key/value mapping and builds a BiometricInput.
// blood_pressure is optional; an absent, null or non-string value becomes
// the default reading.
func Parse(raw map[string]any) (engine.BiometricInput, error) {
	if raw == nil {
		return engine.BiometricInput{}, &engine.InvalidInputError{Reason: "input must be an object"}
	}
	for _, key := range []string{"sleep_hours", "stress_level", "resting_hr"} {
		if f, ok := raw[key].(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return engine.BiometricInput{}, &engine.InvalidInputError{Field: key, Reason: "must be a finite number"}
		}
	}

	// Round-trip so Go-typed callers (int, float32, json.Number) validate the
	// same way decoded JSON does.
	data, err := json.Marshal(raw)
	if err != nil {
		return engine.BiometricInput{}, &engine.InvalidInputError{Reason: fmt.Sprintf("unencodable input: %v", err)}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return engine.BiometricInput{}, &engine.InvalidInputError{Reason: fmt.Sprintf("re-decode input: %v", err)}
	}
	return parseDocument(doc)
}

func parseDocument(doc any) (engine.BiometricInput, error) {
	if err := compiledInput.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := leafCause(ve)
			return engine.BiometricInput{}, &engine.InvalidInputError{Field: fieldOf(leaf), Reason: leaf.Message}
		}
		return engine.BiometricInput{}, &engine.InvalidInputError{Reason: err.Error()}
	}

	obj := doc.(map[string]any)
	in := engine.BiometricInput{
		SleepHours:    obj["sleep_hours"].(float64),
		StressLevel:   int(obj["stress_level"].(float64)),
		RestingHR:     int(obj["resting_hr"].(float64)),
		BloodPressure: engine.DefaultBloodPressure,
	}
	if bp, ok := obj["blood_pressure"].(string); ok {
		in.BloodPressure = bp
	}
	return in, nil
}

// #endregion parse

// #region decide

// Decide parses raw and runs the engine. It returns either a complete
// Decision or an *engine.InvalidInputError, never a partial result.
func Decide(raw map[string]any) (engine.Decision, error) {
	in, err := Parse(raw)
	if err != nil {
		return engine.Decision{}, err
	}
	return engine.Decide(in)
}

// #endregion decide

// #region validate-decision

// ValidateDecision checks a decision against the published output schema.
// Collaborators use it to verify decisions they received over the wire.
func ValidateDecision(d engine.Decision) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode decision: %w", err)
	}
	if err := compiledDecision.Validate(doc); err != nil {
		return fmt.Errorf("decision schema: %w", err)
	}
	return nil
}

// #endregion validate-decision
