package repository

import (
	"context"

	"talent-match/internal/database"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

type RequirementRepository interface {
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]matching.Requirement, error)
	FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]matching.Requirement, error)
}

type PostgresRequirementRepository struct {
	db database.DB
}

func NewPostgresRequirementRepository(db database.DB) *PostgresRequirementRepository {
	return &PostgresRequirementRepository{db: db}
}

const requirementColumns = `js.job_id, js.skill_id, s.name,
	 COALESCE(js.required_level, 1),
	 COALESCE(js.criticality, 0),
	 COALESCE(js.is_mandatory, FALSE),
	 COALESCE(js.weight, 1),
	 COALESCE(js.skill_type, 'important')`

func (r *PostgresRequirementRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]matching.Requirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+requirementColumns+`
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY s.name ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.Requirement, 0)
	for rows.Next() {
		req, _, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByJobIDs loads requirements for a whole candidate arena in one query so
// ranking does not issue a round trip per job.
func (r *PostgresRequirementRepository) FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]matching.Requirement, error) {
	out := make(map[uuid.UUID][]matching.Requirement, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+requirementColumns+`
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = ANY($1)
		 ORDER BY js.job_id, s.name ASC`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		req, jobID, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		out[jobID] = append(out[jobID], req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRequirement(rows database.Rows) (matching.Requirement, uuid.UUID, error) {
	var req matching.Requirement
	var jobID uuid.UUID
	var skillType string
	if err := rows.Scan(&jobID, &req.SkillID, &req.SkillName, &req.RequiredLevel,
		&req.Criticality, &req.IsMandatory, &req.Weight, &skillType); err != nil {
		return matching.Requirement{}, uuid.Nil, err
	}
	req.SkillType = matching.SkillType(skillType)
	return req, jobID, nil
}
