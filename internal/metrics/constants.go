package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameIntervalsAdded     = "availability_intervals_added_total"
	MetricNameDaysCleared        = "availability_days_cleared_total"
	MetricNameMatchQueries       = "matchmaking_queries_total"
	MetricNameReadyPlayersFound  = "matchmaking_ready_players_found_total"
	MetricNameGamesAdded         = "games_added_total"
	MetricNameGamesRemoved       = "games_removed_total"
	MetricNameTimezonesSet       = "timezones_set_total"
	MetricNameSnoozesSet         = "snoozes_set_total"
	MetricNameCommandsProcessed  = "discord_commands_processed_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextIntervalsAdded    = "Total number of availability intervals added"
	HelpTextDaysCleared       = "Total number of availability days cleared"
	HelpTextMatchQueries      = "Total number of matchmaking queries"
	HelpTextReadyPlayersFound = "Total number of ready players returned by matchmaking"
	HelpTextGamesAdded        = "Total number of games added to profiles"
	HelpTextGamesRemoved      = "Total number of games removed from profiles"
	HelpTextTimezonesSet      = "Total number of timezone updates"
	HelpTextSnoozesSet        = "Total number of snoozes set"
	HelpTextCommandsProcessed = "Total number of Discord commands processed"
)

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelDay     = "day"
	LabelCommand = "command"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
