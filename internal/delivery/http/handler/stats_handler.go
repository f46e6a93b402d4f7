package handler

import (
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StatsHandler struct {
	uc usecase.StatsUsecase
}

func NewStatsHandler(uc usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/stats", h.Overview)
}

func (h *StatsHandler) Overview(c fiber.Ctx) error {
	status, err := h.uc.Overview(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStatsResponse(status))
}
