package repository

import (
	"context"
	"time"

	"talent-match/internal/database"

	"github.com/google/uuid"
)

type JobMatchUpsert struct {
	UserID    uuid.UUID
	JobID     uuid.UUID
	Score     float64
	Status    string
	Indicator string
	Legacy    bool
	MatchedAt time.Time
}

type StoredMatch struct {
	JobID     uuid.UUID
	Score     float64
	Status    string
	Indicator string
	MatchedAt time.Time
}

type JobMatchRepository interface {
	Upsert(ctx context.Context, m JobMatchUpsert) error
	ListTopForUser(ctx context.Context, userID uuid.UUID, limit int) ([]StoredMatch, error)
}

type PostgresJobMatchRepository struct {
	db database.DB
}

func NewPostgresJobMatchRepository(db database.DB) *PostgresJobMatchRepository {
	return &PostgresJobMatchRepository{db: db}
}

func (r *PostgresJobMatchRepository) Upsert(ctx context.Context, m JobMatchUpsert) error {
	if m.UserID == uuid.Nil || m.JobID == uuid.Nil {
		return nil
	}
	if m.MatchedAt.IsZero() {
		m.MatchedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO job_matches (id, user_id, job_id, match_score, eligibility_status, indicator, is_legacy, matched_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (user_id, job_id) DO UPDATE SET
			match_score = EXCLUDED.match_score,
			eligibility_status = EXCLUDED.eligibility_status,
			indicator = EXCLUDED.indicator,
			is_legacy = EXCLUDED.is_legacy,
			matched_at = EXCLUDED.matched_at`,
		uuid.New(),
		m.UserID,
		m.JobID,
		m.Score,
		m.Status,
		m.Indicator,
		m.Legacy,
		m.MatchedAt,
	)
	return err
}

func (r *PostgresJobMatchRepository) ListTopForUser(ctx context.Context, userID uuid.UUID, limit int) ([]StoredMatch, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id, match_score, COALESCE(eligibility_status, ''), COALESCE(indicator, ''), matched_at
		 FROM job_matches
		 WHERE user_id = $1
		 ORDER BY match_score DESC, job_id
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoredMatch, 0, limit)
	for rows.Next() {
		var m StoredMatch
		if err := rows.Scan(&m.JobID, &m.Score, &m.Status, &m.Indicator, &m.MatchedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
