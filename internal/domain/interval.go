package domain

import (
	"regexp"
	"sort"
	"time"
)

// EndOfDay is the sentinel end bound produced by the midnight split of an
// overnight window. It is lexicographically greater than every valid HH:MM
// value and is only ever stored as an end bound.
const EndOfDay = "24:00"

// Interval is a [start, end) wall-clock window on one weekday, in the
// owning user's local time. Bounds are strict HH:MM strings, so the usual
// string ordering is also the time ordering.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

var timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateTime reports whether s is a strict 24-hour HH:MM time string
// (00:00 through 23:59). The EndOfDay sentinel is intentionally rejected;
// it is produced internally, never accepted as input.
func ValidateTime(s string) bool {
	return timeRe.MatchString(s)
}

// ValidateTimezone reports whether name is a recognized IANA zone identifier.
func ValidateTimezone(name string) bool {
	if name == "" || name == "Local" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// Overnight reports whether the interval represents a raw overnight marker
// (start strictly after end), i.e. a window that crosses midnight into the
// next day. New writes always split these at midnight; the predicate exists
// for read-compatibility with data recorded before the split representation.
// Zero-length rows (start == end) are not overnight: they are inert and
// never match any instant.
func (iv Interval) Overnight() bool {
	return iv.Start > iv.End
}

// Contains reports whether the HH:MM instant now falls inside a normal
// interval, start-inclusive and end-exclusive.
func (iv Interval) Contains(now string) bool {
	return iv.Start <= now && iv.End > now
}

// overlapsOrTouches reports whether two normal intervals overlap or share a
// boundary. Touching intervals merge, keeping day sets non-adjacent.
func (iv Interval) overlapsOrTouches(other Interval) bool {
	return iv.Start <= other.End && iv.End >= other.Start
}

// MergeInsert inserts nv into a day's interval set, absorbing every existing
// interval that overlaps or touches it. A single sweep suffices: absorbing
// only ever widens nv's bounds. The returned slice is sorted by start and
// holds pairwise non-overlapping, non-adjacent intervals.
func MergeInsert(existing []Interval, nv Interval) []Interval {
	merged := make([]Interval, 0, len(existing)+1)
	for _, iv := range existing {
		if nv.overlapsOrTouches(iv) {
			if iv.Start < nv.Start {
				nv.Start = iv.Start
			}
			if iv.End > nv.End {
				nv.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	merged = append(merged, nv)
	sort.Slice(merged, func(i, j int) bool { return merged[i].Start < merged[j].Start })
	return merged
}
