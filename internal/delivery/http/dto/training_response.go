package dto

import (
	"time"

	"talent-match/internal/repository"
)

type TrainingTriggerResponse struct {
	RunID string `json:"run_id"`
}

type TrainingRunResponse struct {
	RunID        string     `json:"run_id"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	SampleCount  int        `json:"sample_count"`
	RealSamples  int        `json:"real_samples"`
	F1           float64    `json:"f1"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

func NewTrainingRunResponse(run repository.TrainingRun) TrainingRunResponse {
	return TrainingRunResponse{
		RunID:        run.ID.String(),
		Status:       run.Status,
		StartedAt:    run.StartedAt,
		FinishedAt:   run.FinishedAt,
		SampleCount:  run.SampleCount,
		RealSamples:  run.RealSamples,
		F1:           run.F1,
		ErrorMessage: run.ErrorMessage,
	}
}

type TrainingHistoryResponse struct {
	Runs []TrainingRunResponse `json:"runs"`
}

func NewTrainingHistoryResponse(runs []repository.TrainingRun) TrainingHistoryResponse {
	out := TrainingHistoryResponse{Runs: make([]TrainingRunResponse, 0, len(runs))}
	for _, r := range runs {
		out.Runs = append(out.Runs, NewTrainingRunResponse(r))
	}
	return out
}
