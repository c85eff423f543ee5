package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
)

// #region fixture-types

// Fixture is the top-level structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description" yaml:"description"`
	Cases       []FixtureCase `json:"cases" yaml:"cases"`
}

// FixtureCase pairs a raw request with the decision it must produce.
// Input stays a plain mapping so fixtures can exercise missing and
// ill-typed fields too.
type FixtureCase struct {
	CaseID   string          `json:"case_id" yaml:"case_id"`
	Input    map[string]any  `json:"input" yaml:"input"`
	Expected FixtureExpected `json:"expected" yaml:"expected"`
}

// FixtureExpected lists the decision fields a case pins down. Nil fields
// are not checked; the briefing is covered by the engine's own tests.
// Invalid marks a case that must be rejected as invalid input.
type FixtureExpected struct {
	Invalid               bool                  `json:"invalid,omitempty" yaml:"invalid,omitempty"`
	HealthState           *engine.HealthState   `json:"health_state,omitempty" yaml:"health_state,omitempty"`
	WorkoutAllowed        *bool                 `json:"workout_allowed,omitempty" yaml:"workout_allowed,omitempty"`
	NapRecommended        *bool                 `json:"nap_recommended,omitempty" yaml:"nap_recommended,omitempty"`
	PriorityFocus         *engine.PriorityFocus `json:"priority_focus,omitempty" yaml:"priority_focus,omitempty"`
	ReasonCodes           []engine.ReasonCode   `json:"reason_codes,omitempty" yaml:"reason_codes,omitempty"`
	RecommendedBedtime    *string               `json:"recommended_bedtime,omitempty" yaml:"recommended_bedtime,omitempty"`
	WorkCutoffTime        *string               `json:"work_cutoff_time,omitempty" yaml:"work_cutoff_time,omitempty"`
	HydrationTargetLiters *float64              `json:"hydration_target_liters,omitempty" yaml:"hydration_target_liters,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads a JSON or YAML fixture; the extension picks the format.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	var f Fixture
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Cases) == 0 {
		return nil, fmt.Errorf("fixture %s has no cases", path)
	}
	return &f, nil
}

// #endregion fixture-loader
