package repository

import (
	"context"
	"database/sql"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/domain/fit"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type Candidate struct {
	ID                  uuid.UUID
	FullName            string
	ExperienceYears     float64
	EducationLevel      int
	ProfileCompleteness float64
	Objective           string
	SkillsText          string
}

type CandidateRepository interface {
	FindProfile(ctx context.Context, userID uuid.UUID) (Candidate, error)
	ListAssessments(ctx context.Context, userID uuid.UUID) ([]fit.AssessmentScore, error)
	ListCandidateIDsForJob(ctx context.Context, jobID uuid.UUID, limit int) ([]uuid.UUID, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) FindProfile(ctx context.Context, userID uuid.UUID) (Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT p.user_id, COALESCE(p.full_name, ''), COALESCE(p.experience_years, 0),
			COALESCE(p.education_level, 0), COALESCE(p.profile_completeness, 0),
			COALESCE(p.objective, ''), COALESCE(p.skills_text, '')
		 FROM user_profiles p
		 WHERE p.user_id = $1`,
		userID,
	)

	var c Candidate
	if err := row.Scan(&c.ID, &c.FullName, &c.ExperienceYears, &c.EducationLevel,
		&c.ProfileCompleteness, &c.Objective, &c.SkillsText); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Candidate{}, ErrCandidateNotFound
		}
		return Candidate{}, err
	}
	return c, nil
}

func (r *PostgresCandidateRepository) ListAssessments(ctx context.Context, userID uuid.UUID) ([]fit.AssessmentScore, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.skill_id, COALESCE(a.score, 0), COALESCE(a.passed, FALSE)
		 FROM assessment_attempts a
		 WHERE a.user_id = $1
		 ORDER BY a.attempted_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]fit.AssessmentScore, 0)
	for rows.Next() {
		var a fit.AssessmentScore
		if err := rows.Scan(&a.SkillID, &a.Score, &a.Passed); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCandidateIDsForJob returns the scan arena for ranking a job's
// candidates: users holding at least one verified skill the job requires,
// applicants ahead of passive profiles, capped at limit. The cap keeps
// recruiter-facing ranking bounded no matter how large the pool grows.
func (r *PostgresCandidateRepository) ListCandidateIDsForJob(ctx context.Context, jobID uuid.UUID, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT us.user_id
		 FROM user_skills us
		 JOIN job_skills js ON js.skill_id = us.skill_id AND js.job_id = $1
		 LEFT JOIN applications a ON a.job_id = $1 AND a.user_id = us.user_id
		 WHERE us.status = 'verified'
		 GROUP BY us.user_id
		 ORDER BY MIN(a.applied_at) NULLS LAST, us.user_id ASC
		 LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0, limit)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
