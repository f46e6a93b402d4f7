package handler

import (
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type TrainingHandler struct {
	uc usecase.TrainingUsecase
}

func NewTrainingHandler(uc usecase.TrainingUsecase) *TrainingHandler {
	return &TrainingHandler{uc: uc}
}

func (h *TrainingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/train", h.Trigger)
	r.Get("/train/status", h.Status)
	r.Get("/train/history", h.History)
	r.Get("/train/report", h.Report)
}

func (h *TrainingHandler) Trigger(c fiber.Ctx) error {
	runID, err := h.uc.Trigger(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusAccepted, "training started",
		dto.TrainingTriggerResponse{RunID: runID.String()})
}

func (h *TrainingHandler) Status(c fiber.Ctx) error {
	run, err := h.uc.Status(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTrainingRunResponse(run))
}

func (h *TrainingHandler) History(c fiber.Ctx) error {
	limit := queryInt(c, "limit", 20)
	runs, err := h.uc.History(c.Context(), limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTrainingHistoryResponse(runs))
}

// Report serves the raw training report. Its JSON shape (metrics object,
// 2x2 confusion matrix, ordered feature_importance) is consumed by
// reporting tooling and passed through untouched.
func (h *TrainingHandler) Report(c fiber.Ctx) error {
	rep, err := h.uc.Report(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rep)
}
