package repository

import (
	"context"

	"talent-match/internal/database"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

type ProficiencyRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]matching.Proficiency, error)
	MapByUserID(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]matching.Proficiency, error)
}

type PostgresProficiencyRepository struct {
	db database.DB
}

func NewPostgresProficiencyRepository(db database.DB) *PostgresProficiencyRepository {
	return &PostgresProficiencyRepository{db: db}
}

func (r *PostgresProficiencyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]matching.Proficiency, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.skill_id, s.name, COALESCE(us.proficiency_level, 0), COALESCE(us.status, 'claimed')
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.Proficiency, 0)
	for rows.Next() {
		var p matching.Proficiency
		var status string
		if err := rows.Scan(&p.SkillID, &p.SkillName, &p.Level, &status); err != nil {
			return nil, err
		}
		p.Status = matching.ProficiencyStatus(status)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProficiencyRepository) MapByUserID(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]matching.Proficiency, error) {
	list, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]matching.Proficiency, len(list))
	for _, p := range list {
		out[p.SkillID] = p
	}
	return out, nil
}
