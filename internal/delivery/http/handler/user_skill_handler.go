package handler

import (
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/skills", h.List)
	r.Post("/skills", h.Add)
	r.Put("/skills/:id", h.Update)
	r.Delete("/skills/:id", h.Delete)
}

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListUserSkills(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

type addUserSkillRequest struct {
	SkillID          uuid.UUID `json:"skill_id"`
	ProficiencyLevel float64   `json:"proficiency_level"`
	YearsExperience  int       `json:"years_experience"`
}

func (h *UserSkillHandler) Add(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req addUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddUserSkill(c.Context(), userID, usecase.AddUserSkillInput{
		SkillID:          req.SkillID,
		ProficiencyLevel: req.ProficiencyLevel,
		YearsExperience:  req.YearsExperience,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "skill added", created)
}

type updateUserSkillRequest struct {
	ProficiencyLevel float64 `json:"proficiency_level"`
	YearsExperience  int     `json:"years_experience"`
}

func (h *UserSkillHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	var req updateUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateUserSkill(c.Context(), userID, id, usecase.UpdateUserSkillInput{
		ProficiencyLevel: req.ProficiencyLevel,
		YearsExperience:  req.YearsExperience,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "skill updated", updated)
}

func (h *UserSkillHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	if err := h.uc.DeleteUserSkill(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "skill removed", nil)
}
