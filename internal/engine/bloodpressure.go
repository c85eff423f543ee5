package engine

import (
	"errors"
	"strconv"
	"strings"
)

// #region blood-pressure

// BloodPressure is a parsed systolic/diastolic reading in mmHg.
type BloodPressure struct {
	Systolic  int
	Diastolic int
}

// normotensive is the reading assumed when the input cannot be parsed.
var normotensive = BloodPressure{Systolic: 120, Diastolic: 80}

// ParseBloodPressure splits "SYS/DIA" into two integers. Anything that is not
// exactly two integer parts yields 120/80. It never fails. An all-digit part
// too large for int saturates instead of being discarded.
func ParseBloodPressure(s string) BloodPressure {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return normotensive
	}
	sys, ok := parseReading(parts[0])
	if !ok {
		return normotensive
	}
	dia, ok := parseReading(parts[1])
	if !ok {
		return normotensive
	}
	return BloodPressure{Systolic: sys, Diastolic: dia}
}

// parseReading accepts out-of-range integers; Atoi clamps them to the int
// bounds alongside ErrRange.
func parseReading(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

// Hypertensive reports the proxy used by both the classifier and the
// recovery advisor: above 135 systolic or 88 diastolic.
func (bp BloodPressure) Hypertensive() bool {
	return bp.Systolic > 135 || bp.Diastolic > 88
}

// #endregion blood-pressure
