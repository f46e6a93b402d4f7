package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talent-match/internal/database"

	"github.com/google/uuid"
)

var ErrTrainingRunNotFound = errors.New("training run not found")

const (
	TrainingRunRunning   = "running"
	TrainingRunSucceeded = "succeeded"
	TrainingRunFailed    = "failed"
)

type TrainingRun struct {
	ID           uuid.UUID
	Status       string
	StartedAt    time.Time
	FinishedAt   *time.Time
	SampleCount  int
	RealSamples  int
	F1           float64
	ErrorMessage string
}

type TrainingRunRepository interface {
	Start(ctx context.Context, id uuid.UUID) error
	Finish(ctx context.Context, id uuid.UUID, run TrainingRun) error
	Latest(ctx context.Context) (TrainingRun, error)
	List(ctx context.Context, limit int) ([]TrainingRun, error)
}

type PostgresTrainingRunRepository struct {
	db database.DB
}

func NewPostgresTrainingRunRepository(db database.DB) *PostgresTrainingRunRepository {
	return &PostgresTrainingRunRepository{db: db}
}

func (r *PostgresTrainingRunRepository) Start(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO training_runs (id, status, started_at) VALUES ($1, $2, $3)`,
		id, TrainingRunRunning, time.Now().UTC(),
	)
	return err
}

func (r *PostgresTrainingRunRepository) Finish(ctx context.Context, id uuid.UUID, run TrainingRun) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`UPDATE training_runs
		 SET status = $1, finished_at = $2, sample_count = $3, real_samples = $4, f1 = $5, error_message = $6
		 WHERE id = $7`,
		run.Status, now, run.SampleCount, run.RealSamples, run.F1, run.ErrorMessage, id,
	)
	return err
}

func (r *PostgresTrainingRunRepository) Latest(ctx context.Context) (TrainingRun, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, status, started_at, finished_at, COALESCE(sample_count, 0),
			COALESCE(real_samples, 0), COALESCE(f1, 0), COALESCE(error_message, '')
		 FROM training_runs
		 ORDER BY started_at DESC
		 LIMIT 1`,
	)
	run, err := scanTrainingRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TrainingRun{}, ErrTrainingRunNotFound
		}
		return TrainingRun{}, err
	}
	return run, nil
}

func (r *PostgresTrainingRunRepository) List(ctx context.Context, limit int) ([]TrainingRun, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, status, started_at, finished_at, COALESCE(sample_count, 0),
			COALESCE(real_samples, 0), COALESCE(f1, 0), COALESCE(error_message, '')
		 FROM training_runs
		 ORDER BY started_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TrainingRun, 0, limit)
	for rows.Next() {
		run, err := scanTrainingRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrainingRun(row database.Row) (TrainingRun, error) {
	var run TrainingRun
	var finished sql.NullTime
	if err := row.Scan(&run.ID, &run.Status, &run.StartedAt, &finished,
		&run.SampleCount, &run.RealSamples, &run.F1, &run.ErrorMessage); err != nil {
		return TrainingRun{}, err
	}
	if finished.Valid {
		t := finished.Time.UTC()
		run.FinishedAt = &t
	}
	return run, nil
}
