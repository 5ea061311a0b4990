package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	IntervalsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameIntervalsAdded,
			Help: HelpTextIntervalsAdded,
		},
		[]string{LabelDay},
	)

	DaysCleared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDaysCleared,
			Help: HelpTextDaysCleared,
		},
		[]string{LabelDay},
	)

	MatchQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMatchQueries,
			Help: HelpTextMatchQueries,
		},
	)

	ReadyPlayersFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReadyPlayersFound,
			Help: HelpTextReadyPlayersFound,
		},
	)

	GamesAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGamesAdded,
			Help: HelpTextGamesAdded,
		},
	)

	GamesRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGamesRemoved,
			Help: HelpTextGamesRemoved,
		},
	)

	TimezonesSet = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTimezonesSet,
			Help: HelpTextTimezonesSet,
		},
	)

	SnoozesSet = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSnoozesSet,
			Help: HelpTextSnoozesSet,
		},
	)

	CommandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsProcessed,
			Help: HelpTextCommandsProcessed,
		},
		[]string{LabelCommand},
	)
)
