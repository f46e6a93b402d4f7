package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talent-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type Job struct {
	ID                      uuid.UUID
	Title                   string
	Company                 string
	Description             string
	SkillsText              string
	RequiredExperienceYears float64
	MinEducationLevel       int
	IsActive                bool
	CreatedAt               time.Time
}

type JobRepository interface {
	FindByID(ctx context.Context, jobID uuid.UUID) (Job, error)
	ListActive(ctx context.Context, limit, offset int) ([]Job, error)
	CountActive(ctx context.Context) (int64, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `j.id, COALESCE(j.title, ''), COALESCE(j.company, ''), COALESCE(j.description, ''),
	 COALESCE(j.skills_text, ''), COALESCE(j.required_experience_years, 0),
	 COALESCE(j.min_education_level, 0), j.is_active, j.created_at`

func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, jobID)

	var j Job
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Description, &j.SkillsText,
		&j.RequiredExperienceYears, &j.MinEducationLevel, &j.IsActive, &j.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, limit, offset int) ([]Job, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 WHERE j.is_active = TRUE
		 ORDER BY j.created_at DESC, j.id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0, limit)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Description, &j.SkillsText,
			&j.RequiredExperienceYears, &j.MinEducationLevel, &j.IsActive, &j.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE is_active = TRUE`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
