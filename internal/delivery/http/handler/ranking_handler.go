package handler

import (
	"strconv"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RankingHandler struct {
	uc usecase.RankingUsecase
}

func NewRankingHandler(uc usecase.RankingUsecase) *RankingHandler {
	return &RankingHandler{uc: uc}
}

// RegisterUserRoutes mounts the candidate-facing direction.
func (h *RankingHandler) RegisterUserRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/recommendations", h.GetRecommendations)
}

// RegisterJobRoutes mounts the recruiter-facing direction.
func (h *RankingHandler) RegisterJobRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:job_id/candidates", h.GetCandidates)
}

func (h *RankingHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := queryInt(c, "limit", 10)
	statusFilter := c.Query("status")

	ranked, err := h.uc.RankJobsForUser(c.Context(), userID, limit, statusFilter)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationsResponse(ranked))
}

func (h *RankingHandler) GetCandidates(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	limit := queryInt(c, "limit", 10)

	ranked, err := h.uc.RankCandidatesForJob(c.Context(), jobID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateRankingResponse(ranked))
}

func queryInt(c fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
