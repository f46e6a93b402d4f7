package dto

import (
	"talent-match/internal/usecase"
)

type RecommendedJob struct {
	JobID             string  `json:"job_id"`
	Title             string  `json:"title"`
	Company           string  `json:"company"`
	OverallScore      float64 `json:"overall_score"`
	EligibilityStatus string  `json:"eligibility_status"`
	Indicator         string  `json:"indicator"`
	CanApply          bool    `json:"can_apply"`
	LegacyMatch       bool    `json:"legacy_match"`
}

type RecommendationsResponse struct {
	Jobs []RecommendedJob `json:"jobs"`
}

func NewRecommendationsResponse(ranked []usecase.RankedJob) RecommendationsResponse {
	out := RecommendationsResponse{Jobs: make([]RecommendedJob, 0, len(ranked))}
	for _, r := range ranked {
		res := r.Outcome.Match()
		out.Jobs = append(out.Jobs, RecommendedJob{
			JobID:             r.JobID.String(),
			Title:             r.Title,
			Company:           r.Company,
			OverallScore:      res.OverallScore,
			EligibilityStatus: string(res.EligibilityStatus),
			Indicator:         res.Indicator,
			CanApply:          res.CanApply,
			LegacyMatch:       r.Outcome.IsLegacy(),
		})
	}
	return out
}

type RankedCandidate struct {
	UserID            string  `json:"user_id"`
	FullName          string  `json:"full_name"`
	OverallScore      float64 `json:"overall_score"`
	EligibilityStatus string  `json:"eligibility_status"`
	Indicator         string  `json:"indicator"`
	MandatoryMet      int     `json:"mandatory_met"`
	MandatoryTotal    int     `json:"mandatory_total"`
	LegacyMatch       bool    `json:"legacy_match"`
}

type CandidateRankingResponse struct {
	Candidates []RankedCandidate `json:"candidates"`
}

func NewCandidateRankingResponse(ranked []usecase.RankedCandidate) CandidateRankingResponse {
	out := CandidateRankingResponse{Candidates: make([]RankedCandidate, 0, len(ranked))}
	for _, r := range ranked {
		res := r.Outcome.Match()
		out.Candidates = append(out.Candidates, RankedCandidate{
			UserID:            r.UserID.String(),
			FullName:          r.FullName,
			OverallScore:      res.OverallScore,
			EligibilityStatus: string(res.EligibilityStatus),
			Indicator:         res.Indicator,
			MandatoryMet:      res.MandatoryMet,
			MandatoryTotal:    res.MandatoryTotal,
			LegacyMatch:       r.Outcome.IsLegacy(),
		})
	}
	return out
}
