package dto

import (
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

// MatchResponse is the wire form of one (user, job) verdict. The embedded
// result's field names and status strings are the contract; legacy_match
// tags verdicts produced by the free-text fallback.
type MatchResponse struct {
	JobID string `json:"job_id"`
	matching.Result
	LegacyMatch bool `json:"legacy_match"`
}

func NewMatchResponse(jobID uuid.UUID, out matching.Outcome) MatchResponse {
	return MatchResponse{
		JobID:       jobID.String(),
		Result:      out.Match(),
		LegacyMatch: out.IsLegacy(),
	}
}
