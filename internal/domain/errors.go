package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgInvalidWeekday  = "invalid weekday"
	ErrMsgInvalidTime     = "invalid time"
	ErrMsgInvalidTimezone = "invalid timezone"
	ErrMsgEmptyInterval   = "start and end times must differ"
	ErrMsgEmptyGameName   = "game name must not be empty"
	ErrMsgInvalidUserID   = "invalid user id"
	ErrMsgInvalidDuration = "duration must be positive"
	ErrMsgDatabaseError   = "database error"
)

// Common domain errors. Validation errors are rejected before any state
// mutation; wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for
// additional context.
var (
	ErrInvalidWeekday  = errors.New(ErrMsgInvalidWeekday)
	ErrInvalidTime     = errors.New(ErrMsgInvalidTime)
	ErrInvalidTimezone = errors.New(ErrMsgInvalidTimezone)
	ErrEmptyInterval   = errors.New(ErrMsgEmptyInterval)
	ErrEmptyGameName   = errors.New(ErrMsgEmptyGameName)
	ErrInvalidUserID   = errors.New(ErrMsgInvalidUserID)
	ErrInvalidDuration = errors.New(ErrMsgInvalidDuration)
)
