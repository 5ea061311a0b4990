package discord

// Friendly message constants for Discord responses
const (
	// Scheduling
	MsgInvalidWeekday = "📅 **Unknown Day**\nUse one of: mon, tue, wed, thu, fri, sat, sun."
	MsgInvalidTime    = "🕐 **Bad Time Format**\nTimes look like `18:00` or `09:30` (24-hour HH:MM)."
	MsgEmptyInterval  = "🕐 **Empty Window**\nStart and end times must differ."

	// Games
	MsgEmptyGameName = "🎮 **Missing Game Name**\nGive the game a name with at least one letter or digit."

	// Profile
	MsgInvalidTimezone = "🌍 **Unknown Timezone**\nUse an IANA name like `America/New_York` or `Europe/Berlin`."
	MsgInvalidDuration = "⏳ **Bad Duration**\nThe snooze length must be a positive number of minutes."

	MsgGenericError = "❌ Something went wrong."
)
