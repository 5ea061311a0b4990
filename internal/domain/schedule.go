package domain

// WeeklySchedule maps every weekday key to its ordered interval list.
// All 7 keys are always present, even for users with no record.
type WeeklySchedule map[Weekday][]Interval

// EmptyWeeklySchedule returns a schedule with all 7 day keys and no intervals.
func EmptyWeeklySchedule() WeeklySchedule {
	ws := make(WeeklySchedule, len(DayKeys))
	for _, d := range DayKeys {
		ws[d] = []Interval{}
	}
	return ws
}

// Clone returns a deep copy, so callers can never mutate stored state
// through a returned schedule.
func (ws WeeklySchedule) Clone() WeeklySchedule {
	out := make(WeeklySchedule, len(DayKeys))
	for _, d := range DayKeys {
		out[d] = append([]Interval{}, ws[d]...)
	}
	return out
}

// NextSlot is the answer to "when is this user next free": the first
// upcoming (or currently active) interval in the user's local week.
type NextSlot struct {
	Day   Weekday `json:"day"`
	Start string  `json:"start"`
	End   string  `json:"end"`
	IsNow bool    `json:"is_now"`
}

// ReadyPlayer is one matchmaking result: a user inside an active interval
// right now who shares at least one game with the invoker. SharedGames uses
// the invoker's display spellings, in the invoker's insertion order.
type ReadyPlayer struct {
	UserID      int64    `json:"user_id"`
	SharedGames []string `json:"shared_games"`
}
