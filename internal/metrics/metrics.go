package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_computations_total",
			Help: "Total number of match computations by scoring path",
		},
		[]string{"path"}, // weighted | legacy
	)

	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "match_computation_duration_seconds",
			Help: "Duration of a single match computation in seconds",
		},
		[]string{"path"},
	)

	RankingPairsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ranking_pairs_scored_total",
			Help: "Total number of user/job pairs scored during ranking requests",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Total number of cache lookups by result",
		},
		[]string{"result"}, // hit | miss
	)

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_runs_total",
			Help: "Total number of training runs by outcome",
		},
		[]string{"status"}, // succeeded | failed | skipped
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "training_run_duration_seconds",
			Help:    "Duration of a full training run in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	ModelF1 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fit_model_f1_score",
			Help: "F1 score of the currently published fit model",
		},
	)

	FitPredictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fit_predictions_total",
			Help: "Total number of fit probability predictions served",
		},
	)
)
