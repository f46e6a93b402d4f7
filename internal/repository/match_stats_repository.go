package repository

import (
	"context"

	"talent-match/internal/database"
)

// MatchStats is the platform-wide matching summary served on the admin
// overview endpoint.
type MatchStats struct {
	TotalMatches         int64
	AverageScore         float64
	EligibleCount        int64
	AlmostEligibleCount  int64
	NotEligibleCount     int64
	LegacyMatchCount     int64
	MatchesComputedToday int64
}

type MatchStatsRepository interface {
	Summary(ctx context.Context) (MatchStats, error)
}

type PostgresMatchStatsRepository struct {
	db database.DB
}

func NewPostgresMatchStatsRepository(db database.DB) *PostgresMatchStatsRepository {
	return &PostgresMatchStatsRepository{db: db}
}

func (r *PostgresMatchStatsRepository) Summary(ctx context.Context) (MatchStats, error) {
	var s MatchStats

	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(COUNT(1), 0),
			COALESCE(AVG(match_score), 0),
			COALESCE(COUNT(1) FILTER (WHERE eligibility_status = 'Eligible'), 0),
			COALESCE(COUNT(1) FILTER (WHERE eligibility_status = 'Almost Eligible'), 0),
			COALESCE(COUNT(1) FILTER (WHERE eligibility_status = 'Not Eligible'), 0),
			COALESCE(COUNT(1) FILTER (WHERE is_legacy), 0),
			COALESCE(COUNT(1) FILTER (WHERE matched_at >= CURRENT_DATE), 0)
		 FROM job_matches`,
	)
	if err := row.Scan(&s.TotalMatches, &s.AverageScore, &s.EligibleCount,
		&s.AlmostEligibleCount, &s.NotEligibleCount, &s.LegacyMatchCount,
		&s.MatchesComputedToday); err != nil {
		return MatchStats{}, err
	}
	return s, nil
}
