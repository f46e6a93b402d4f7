package usecase

import (
	"context"
	"strings"

	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type SkillItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SkillType string    `json:"skill_type"`
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	AddSkill(ctx context.Context, name, skillType string) (SkillItem, error)
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{ID: it.ID, Name: it.Name, SkillType: it.SkillType})
	}
	return out, nil
}

func (u *Skill) AddSkill(ctx context.Context, name, skillType string) (SkillItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillItem{}, ErrInvalidInput
	}
	skillType = strings.TrimSpace(strings.ToLower(skillType))
	switch skillType {
	case "", "technical", "soft":
	default:
		return SkillItem{}, ErrInvalidInput
	}

	created, err := u.repo.CreateSkill(ctx, name, skillType)
	if err != nil {
		return SkillItem{}, ErrInternal
	}
	return SkillItem{ID: created.ID, Name: created.Name, SkillType: created.SkillType}, nil
}
