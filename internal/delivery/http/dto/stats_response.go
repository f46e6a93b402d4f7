package dto

import (
	"time"

	"talent-match/internal/usecase"
)

type StatsResponse struct {
	TotalMatches         int64   `json:"total_matches"`
	AverageScore         float64 `json:"average_score"`
	EligibleCount        int64   `json:"eligible_count"`
	AlmostEligibleCount  int64   `json:"almost_eligible_count"`
	NotEligibleCount     int64   `json:"not_eligible_count"`
	LegacyMatchCount     int64   `json:"legacy_match_count"`
	MatchesComputedToday int64   `json:"matches_computed_today"`

	TotalJobs       int   `json:"total_jobs"`
	JobsWithReqs    int   `json:"jobs_with_requirements"`
	LabeledOutcomes int64 `json:"labeled_outcomes"`

	DatabaseHealthy bool `json:"database_healthy"`
	CacheHealthy    bool `json:"cache_healthy"`

	LatestTraining *TrainingRunResponse `json:"latest_training,omitempty"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

func NewStatsResponse(s usecase.PlatformStatus) StatsResponse {
	out := StatsResponse{
		TotalMatches:         s.Stats.TotalMatches,
		AverageScore:         s.Stats.AverageScore,
		EligibleCount:        s.Stats.EligibleCount,
		AlmostEligibleCount:  s.Stats.AlmostEligibleCount,
		NotEligibleCount:     s.Stats.NotEligibleCount,
		LegacyMatchCount:     s.Stats.LegacyMatchCount,
		MatchesComputedToday: s.Stats.MatchesComputedToday,
		TotalJobs:            s.TotalJobs,
		JobsWithReqs:         s.JobsWithReqs,
		LabeledOutcomes:      s.LabeledOutcomes,
		DatabaseHealthy:      s.DatabaseHealthy,
		CacheHealthy:         s.CacheHealthy,
		GeneratedAt:          s.GeneratedAt,
	}
	if s.LatestTraining != nil {
		run := NewTrainingRunResponse(*s.LatestTraining)
		out.LatestTraining = &run
	}
	return out
}
