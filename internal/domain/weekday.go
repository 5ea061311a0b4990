package domain

import (
	"strings"
	"time"
)

// Weekday is one of the 7 fixed keys of a recurring weekly schedule.
// It identifies a slot in the week, not a calendar date.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// DayKeys lists all weekdays in fixed mon..sun order (ISO weekday numbering).
var DayKeys = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayIndex = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3, Friday: 4, Saturday: 5, Sunday: 6,
}

// ParseWeekday converts a user-supplied day token to a Weekday.
// Matching is case-insensitive; unknown tokens return ErrInvalidWeekday.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := weekdayIndex[d]; !ok {
		return "", ErrInvalidWeekday
	}
	return d, nil
}

// Valid reports whether d is one of the 7 fixed weekday keys.
func (d Weekday) Valid() bool {
	_, ok := weekdayIndex[d]
	return ok
}

// Index returns the position of d in DayKeys (mon=0..sun=6).
func (d Weekday) Index() int {
	return weekdayIndex[d]
}

// Next returns the weekday following d, wrapping sun->mon.
func (d Weekday) Next() Weekday {
	return DayKeys[(weekdayIndex[d]+1)%7]
}

// Prev returns the weekday preceding d, wrapping mon->sun.
func (d Weekday) Prev() Weekday {
	return DayKeys[(weekdayIndex[d]+6)%7]
}

// WeekdayOf maps a wall-clock time to its weekday key.
// Go anchors time.Weekday on Sunday; the schedule is anchored on Monday.
func WeekdayOf(t time.Time) Weekday {
	return DayKeys[(int(t.Weekday())+6)%7]
}
