package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed  = "Method not allowed"
	ErrMsgInvalidRequest    = "Invalid request body"
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidUserIDParam = "Invalid user_id parameter"

	ErrMsgGenericServerError = "Something went wrong"
)

// Success messages for API responses
const (
	MsgIntervalAdded  = "Interval added"
	MsgDayCleared     = "Day cleared"
	MsgGameAdded      = "Game added"
	MsgGameRemoved    = "Game removed"
	MsgGameNotFound   = "Game was not on your list"
	MsgTimezoneSet    = "Timezone set"
	MsgSnoozeSet      = "Snoozed"
	MsgSnoozeCleared  = "Snooze cleared"
)
