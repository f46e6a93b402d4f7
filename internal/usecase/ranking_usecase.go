package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"talent-match/internal/domain/matching"
	"talent-match/internal/metrics"
	"talent-match/internal/pipeline"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

// RankedJob is one row of the jobs-for-user direction.
type RankedJob struct {
	JobID   uuid.UUID
	Title   string
	Company string
	Outcome matching.Outcome
}

// RankedCandidate is one row of the candidates-for-job direction.
type RankedCandidate struct {
	UserID   uuid.UUID
	FullName string
	Outcome  matching.Outcome
}

type RankingUsecase interface {
	RankJobsForUser(ctx context.Context, userID uuid.UUID, limit int, statusFilter string) ([]RankedJob, error)
	RankCandidatesForJob(ctx context.Context, jobID uuid.UUID, limit int) ([]RankedCandidate, error)
}

type Ranking struct {
	jobs       repository.JobRepository
	jobQueries repository.JobQueryRepository
	reqs       repository.RequirementRepository
	profs      repository.ProficiencyRepository
	candidates repository.CandidateRepository
	cfg        matching.Config
	scanLimit  int
	workers    int
}

func NewRankingUsecase(
	jobs repository.JobRepository,
	jobQueries repository.JobQueryRepository,
	reqs repository.RequirementRepository,
	profs repository.ProficiencyRepository,
	candidates repository.CandidateRepository,
	cfg matching.Config,
	scanLimit, workers int,
) *Ranking {
	if scanLimit <= 0 {
		scanLimit = 50
	}
	if workers <= 0 {
		workers = 10
	}
	return &Ranking{
		jobs:       jobs,
		jobQueries: jobQueries,
		reqs:       reqs,
		profs:      profs,
		candidates: candidates,
		cfg:        cfg,
		scanLimit:  scanLimit,
		workers:    workers,
	}
}

// RankJobsForUser scores every open job the user has not applied to and
// returns them best first. statusFilter, when non-empty, keeps only rows
// whose eligibility status matches it exactly.
func (u *Ranking) RankJobsForUser(ctx context.Context, userID uuid.UUID, limit int, statusFilter string) ([]RankedJob, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 {
		limit = 10
	}

	jobIDs, err := u.jobQueries.ListOpenJobIDsNotApplied(ctx, userID, u.scanLimit)
	if err != nil {
		return nil, ErrInternal
	}
	if len(jobIDs) == 0 {
		return []RankedJob{}, nil
	}

	// Arena load: one round trip for all requirements, one for the profile.
	reqsByJob, err := u.reqs.FindByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, ErrInternal
	}
	profMap, err := u.profs.MapByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	var userText string
	if profile, err := u.candidates.FindProfile(ctx, userID); err == nil {
		userText = profile.SkillsText
	} else if !errors.Is(err, repository.ErrCandidateNotFound) {
		return nil, ErrInternal
	}

	out := make([]RankedJob, 0, len(jobIDs))
	var mu sync.Mutex

	pool := pipeline.NewWorkerPool(u.workers, len(jobIDs))
	for _, jobID := range jobIDs {
		jobID := jobID
		pool.Submit(ctx, func(taskCtx context.Context) pipeline.Result {
			job, err := u.jobs.FindByID(taskCtx, jobID)
			if err != nil {
				return pipeline.Result{Err: err}
			}
			outcome := scorePair(reqsByJob[jobID], profMap, userText, job.SkillsText, u.cfg)
			mu.Lock()
			out = append(out, RankedJob{JobID: jobID, Title: job.Title, Company: job.Company, Outcome: outcome})
			mu.Unlock()
			return pipeline.Result{}
		})
	}
	pool.Close()
	for range pool.Run(ctx) {
	}
	metrics.RankingPairsScored.Add(float64(len(jobIDs)))

	if statusFilter != "" {
		filtered := out[:0]
		for _, r := range out {
			if string(r.Outcome.Match().EligibilityStatus) == statusFilter {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}

	// Total order: score descending, then job UUID ascending.
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].Outcome.Match().OverallScore, out[j].Outcome.Match().OverallScore
		if si != sj {
			return si > sj
		}
		return strings.Compare(out[i].JobID.String(), out[j].JobID.String()) < 0
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RankCandidatesForJob scores the job's candidate arena (applicants plus
// recently active profiles, capped) and returns them best first.
func (u *Ranking) RankCandidatesForJob(ctx context.Context, jobID uuid.UUID, limit int) ([]RankedCandidate, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}
	if limit <= 0 {
		limit = 10
	}

	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}

	userIDs, err := u.candidates.ListCandidateIDsForJob(ctx, jobID, u.scanLimit)
	if err != nil {
		return nil, ErrInternal
	}
	if len(userIDs) == 0 {
		return []RankedCandidate{}, nil
	}

	reqs, err := u.reqs.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]RankedCandidate, 0, len(userIDs))
	var mu sync.Mutex

	pool := pipeline.NewWorkerPool(u.workers, len(userIDs))
	for _, userID := range userIDs {
		userID := userID
		pool.Submit(ctx, func(taskCtx context.Context) pipeline.Result {
			profMap, err := u.profs.MapByUserID(taskCtx, userID)
			if err != nil {
				return pipeline.Result{Err: err}
			}
			var name, userText string
			if profile, err := u.candidates.FindProfile(taskCtx, userID); err == nil {
				name = profile.FullName
				userText = profile.SkillsText
			}
			outcome := scorePair(reqs, profMap, userText, job.SkillsText, u.cfg)
			mu.Lock()
			out = append(out, RankedCandidate{UserID: userID, FullName: name, Outcome: outcome})
			mu.Unlock()
			return pipeline.Result{}
		})
	}
	pool.Close()
	for range pool.Run(ctx) {
	}
	metrics.RankingPairsScored.Add(float64(len(userIDs)))

	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].Outcome.Match().OverallScore, out[j].Outcome.Match().OverallScore
		if si != sj {
			return si > sj
		}
		return strings.Compare(out[i].UserID.String(), out[j].UserID.String()) < 0
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// scorePair picks the scoring path for one pair: weighted when structured
// requirements exist, legacy free-text overlap otherwise.
func scorePair(reqs []matching.Requirement, profs map[uuid.UUID]matching.Proficiency, userText, jobText string, cfg matching.Config) matching.Outcome {
	if len(reqs) == 0 {
		return matching.LegacyOutcome{Result: matching.LegacyMatch(userText, jobText, cfg)}
	}
	return matching.WeightedOutcome{Result: matching.Evaluate(reqs, profs, cfg)}
}
