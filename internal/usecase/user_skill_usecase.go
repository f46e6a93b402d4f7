package usecase

import (
	"context"
	"errors"

	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type AddUserSkillInput struct {
	SkillID          uuid.UUID
	ProficiencyLevel float64
	YearsExperience  int
}

type UpdateUserSkillInput struct {
	ProficiencyLevel float64
	YearsExperience  int
}

type UserSkillItem struct {
	ID               uuid.UUID `json:"id"`
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	ProficiencyLevel float64   `json:"proficiency_level"`
	Status           string    `json:"status"`
	YearsExperience  int       `json:"years_experience"`
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error)
	AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (UserSkillItem, error)
	UpdateUserSkill(ctx context.Context, userID, userSkillID uuid.UUID, in UpdateUserSkillInput) (UserSkillItem, error)
	DeleteUserSkill(ctx context.Context, userID, userSkillID uuid.UUID) error
}

// UserSkill manages a user's proficiency rows. Every mutation invalidates
// the user's cached matches; scores must track the profile they were
// computed from.
type UserSkill struct {
	repo  repository.UserSkillRepository
	cache MatchCache
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, cache MatchCache) *UserSkill {
	return &UserSkill{repo: repo, cache: cache}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]UserSkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, toUserSkillItem(it))
	}
	return out, nil
}

func (u *UserSkill) AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (UserSkillItem, error) {
	if userID == uuid.Nil {
		return UserSkillItem{}, ErrUnauthorized
	}
	if in.SkillID == uuid.Nil {
		return UserSkillItem{}, ErrInvalidInput
	}
	if in.ProficiencyLevel < 0 || in.ProficiencyLevel > 10 {
		return UserSkillItem{}, ErrInvalidInput
	}
	if in.YearsExperience < 0 {
		return UserSkillItem{}, ErrInvalidInput
	}

	exists, err := u.repo.SkillExistsByID(ctx, in.SkillID)
	if err != nil {
		return UserSkillItem{}, ErrInternal
	}
	if !exists {
		return UserSkillItem{}, ErrSkillNotFound
	}

	created, err := u.repo.Create(ctx, repository.UserSkill{
		ID:               uuid.New(),
		UserID:           userID,
		SkillID:          in.SkillID,
		ProficiencyLevel: in.ProficiencyLevel,
		YearsExperience:  in.YearsExperience,
	})
	if err != nil {
		return UserSkillItem{}, ErrInternal
	}

	u.invalidate(ctx, userID)
	return toUserSkillItem(created), nil
}

func (u *UserSkill) UpdateUserSkill(ctx context.Context, userID, userSkillID uuid.UUID, in UpdateUserSkillInput) (UserSkillItem, error) {
	if userID == uuid.Nil {
		return UserSkillItem{}, ErrUnauthorized
	}
	if userSkillID == uuid.Nil {
		return UserSkillItem{}, ErrInvalidInput
	}
	if in.ProficiencyLevel < 0 || in.ProficiencyLevel > 10 {
		return UserSkillItem{}, ErrInvalidInput
	}
	if in.YearsExperience < 0 {
		return UserSkillItem{}, ErrInvalidInput
	}

	updated, err := u.repo.Update(ctx, repository.UserSkill{
		ID:               userSkillID,
		UserID:           userID,
		ProficiencyLevel: in.ProficiencyLevel,
		YearsExperience:  in.YearsExperience,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserSkillNotFound):
			return UserSkillItem{}, ErrSkillNotFound
		case errors.Is(err, repository.ErrUserSkillForbidden):
			return UserSkillItem{}, ErrForbidden
		}
		return UserSkillItem{}, ErrInternal
	}

	u.invalidate(ctx, userID)
	return toUserSkillItem(updated), nil
}

func (u *UserSkill) DeleteUserSkill(ctx context.Context, userID, userSkillID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if userSkillID == uuid.Nil {
		return ErrInvalidInput
	}

	if err := u.repo.Delete(ctx, userSkillID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserSkillNotFound):
			return ErrSkillNotFound
		case errors.Is(err, repository.ErrUserSkillForbidden):
			return ErrForbidden
		}
		return ErrInternal
	}

	u.invalidate(ctx, userID)
	return nil
}

func (u *UserSkill) invalidate(ctx context.Context, userID uuid.UUID) {
	if u.cache != nil {
		_ = u.cache.InvalidateUserMatches(ctx, userID.String())
	}
}

func toUserSkillItem(us repository.UserSkill) UserSkillItem {
	return UserSkillItem{
		ID:               us.ID,
		SkillID:          us.SkillID,
		SkillName:        us.SkillName,
		ProficiencyLevel: us.ProficiencyLevel,
		Status:           us.Status,
		YearsExperience:  us.YearsExperience,
	}
}
