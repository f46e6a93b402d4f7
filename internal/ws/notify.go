package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TrainingEvent is the wire shape of one training lifecycle update.
type TrainingEvent struct {
	Type      string `json:"type"`
	RunID     string `json:"run_id"`
	Stage     string `json:"stage"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// TrainingBroadcaster adapts the hub to the training usecase's notifier
// contract.
type TrainingBroadcaster struct {
	hub *Hub
}

func NewTrainingBroadcaster(hub *Hub) *TrainingBroadcaster {
	return &TrainingBroadcaster{hub: hub}
}

func (b *TrainingBroadcaster) NotifyTraining(runID uuid.UUID, stage, status string) {
	if b == nil || b.hub == nil {
		return
	}

	evt := TrainingEvent{
		Type:      "training_update",
		RunID:     runID.String(),
		Stage:     stage,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		return
	}
	b.hub.Broadcast(msg)
}
