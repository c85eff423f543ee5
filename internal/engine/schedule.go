package engine

// #region schedule-table

var schedules = map[HealthState]SleepSchedule{
	StateSleepDeprived:  {RecommendedBedtime: "21:00", WorkCutoffTime: "17:00"},
	StateUnderRecovered: {RecommendedBedtime: "21:45", WorkCutoffTime: "18:00"},
	StateWellRecovered:  {RecommendedBedtime: "22:30", WorkCutoffTime: "19:00"},
}

// #endregion schedule-table

// #region schedule

// Schedule returns the fixed bedtime and work cutoff for a state. Anything
// outside the defined set gets the Well_Recovered row.
func Schedule(state HealthState) SleepSchedule {
	if s, ok := schedules[state]; ok {
		return s
	}
	return schedules[StateWellRecovered]
}

// #endregion schedule
