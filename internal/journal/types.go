package journal

import (
	"errors"
	"time"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
)

// ErrNotFound is returned when no decision has the requested ID.
var ErrNotFound = errors.New("decision not found")

// #region entry
// Entry is one journaled decision together with the input that produced it.
type Entry struct {
	DecisionID  string                `json:"decision_id"`
	Subject     string                `json:"subject,omitempty"` // free-form caller label, e.g. "csv:row-265"
	Input       engine.BiometricInput `json:"input"`
	Decision    engine.Decision       `json:"decision"`
	Fingerprint string                `json:"fingerprint"`
	CreatedAt   time.Time             `json:"created_at"`
}
// #endregion entry

// #region state-count
// StateCount is one row of the journaled state distribution.
type StateCount struct {
	State engine.HealthState `json:"health_state"`
	Count int                `json:"count"`
}
// #endregion state-count
