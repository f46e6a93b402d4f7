package repository

import (
	"context"

	"talent-match/internal/database"

	"github.com/google/uuid"
)

type RequirementUpsert struct {
	SkillID       uuid.UUID
	RequiredLevel float64
	Criticality   float64
	Weight        float64
	IsMandatory   bool
}

type RequirementWriteRepository interface {
	ListJobIDsWithoutRequirements(ctx context.Context, limit, offset int) ([]uuid.UUID, error)
	UpsertForJob(ctx context.Context, jobID uuid.UUID, reqs []RequirementUpsert) error
}

type PostgresRequirementWriteRepository struct {
	db database.DB
}

func NewPostgresRequirementWriteRepository(db database.DB) *PostgresRequirementWriteRepository {
	return &PostgresRequirementWriteRepository{db: db}
}

// ListJobIDsWithoutRequirements finds active jobs that only carry free-text
// skills, the ones the backfill pipeline needs to structure.
func (r *PostgresRequirementWriteRepository) ListJobIDsWithoutRequirements(ctx context.Context, limit, offset int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT j.id
		 FROM jobs j
		 WHERE j.is_active = TRUE
		   AND COALESCE(j.skills_text, '') <> ''
		   AND NOT EXISTS (SELECT 1 FROM job_skills js WHERE js.job_id = j.id)
		 ORDER BY j.created_at DESC, j.id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
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

func (r *PostgresRequirementWriteRepository) UpsertForJob(ctx context.Context, jobID uuid.UUID, reqs []RequirementUpsert) error {
	if jobID == uuid.Nil || len(reqs) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	for _, it := range reqs {
		if it.SkillID == uuid.Nil {
			continue
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO job_skills (id, job_id, skill_id, required_level, criticality, weight, is_mandatory)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)
			 ON CONFLICT (job_id, skill_id) DO UPDATE SET
				required_level = EXCLUDED.required_level,
				criticality = EXCLUDED.criticality,
				weight = EXCLUDED.weight,
				is_mandatory = EXCLUDED.is_mandatory`,
			uuid.New(),
			jobID,
			it.SkillID,
			it.RequiredLevel,
			it.Criticality,
			it.Weight,
			it.IsMandatory,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
