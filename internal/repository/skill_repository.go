package repository

import (
	"context"
	"strings"

	"talent-match/internal/database"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID
	Name      string
	SkillType string
}

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]Skill, error)
	LoadSkillsByName(ctx context.Context) (map[string]uuid.UUID, error)
	CreateSkill(ctx context.Context, name, skillType string) (Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(skill_type, 'technical') FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.SkillType); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadSkillsByName keys the catalog by lowercased name for text matching.
func (r *PostgresSkillRepository) LoadSkillsByName(ctx context.Context) (map[string]uuid.UUID, error) {
	skills, err := r.GetAllSkills(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]uuid.UUID, len(skills))
	for _, s := range skills {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			continue
		}
		out[name] = s.ID
	}
	return out, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name, skillType string) (Skill, error) {
	if skillType == "" {
		skillType = "technical"
	}
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, skill_type) VALUES ($1, $2, $3)`, id, name, skillType)
	if err != nil {
		return Skill{}, err
	}
	return Skill{ID: id, Name: name, SkillType: skillType}, nil
}
