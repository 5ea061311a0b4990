package domain

import "time"

// User is a registered member. The ID is an opaque positive identifier
// supplied by the surrounding platform (a Discord snowflake in practice);
// it is never generated here.
type User struct {
	ID           int64      `json:"user_id"`
	Timezone     *string    `json:"timezone,omitempty"`
	SnoozedUntil *time.Time `json:"snoozed_until,omitempty"`
}

// Snoozed reports whether the user is hidden from matchmaking at the given
// instant. Expired snoozes are simply ignored; nothing reaps them.
func (u User) Snoozed(now time.Time) bool {
	return u.SnoozedUntil != nil && u.SnoozedUntil.After(now)
}
