package repository

import (
	"context"

	"talent-match/internal/database"

	"github.com/google/uuid"
)

// TrainingOutcome is one labeled (candidate, job) pair mined from the
// application history. Label 1 means the application progressed.
type TrainingOutcome struct {
	UserID uuid.UUID
	JobID  uuid.UUID
	Label  int
}

type ApplicationRepository interface {
	ListOutcomes(ctx context.Context, limit, offset int) ([]TrainingOutcome, error)
	CountOutcomes(ctx context.Context) (int64, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// Applications still sitting at "applied" carry no signal either way and are
// excluded from the label set.
const outcomeFilter = `a.status IN ('hired', 'offered', 'interview', 'shortlisted', 'rejected')`

func (r *PostgresApplicationRepository) ListOutcomes(ctx context.Context, limit, offset int) ([]TrainingOutcome, error) {
	if limit <= 0 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT a.user_id, a.job_id,
			CASE WHEN a.status = 'rejected' THEN 0 ELSE 1 END
		 FROM applications a
		 WHERE `+outcomeFilter+`
		 ORDER BY a.applied_at, a.id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TrainingOutcome, 0, limit)
	for rows.Next() {
		var o TrainingOutcome
		if err := rows.Scan(&o.UserID, &o.JobID, &o.Label); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) CountOutcomes(ctx context.Context) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications a WHERE `+outcomeFilter)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
