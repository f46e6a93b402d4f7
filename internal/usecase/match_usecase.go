package usecase

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/domain/matching"
	"talent-match/internal/metrics"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

// MatchUsecase scores a single (user, job) pair on demand. The verdict is a
// pure function of the two skill stores; redis only shortcuts recomputation.
type MatchUsecase interface {
	MatchUserToJob(ctx context.Context, userID, jobID uuid.UUID) (matching.Outcome, error)
}

type Match struct {
	jobs       repository.JobRepository
	reqs       repository.RequirementRepository
	profs      repository.ProficiencyRepository
	candidates repository.CandidateRepository
	cache      MatchCache
	cfg        matching.Config
	cacheTTL   time.Duration
}

func NewMatchUsecase(
	jobs repository.JobRepository,
	reqs repository.RequirementRepository,
	profs repository.ProficiencyRepository,
	candidates repository.CandidateRepository,
	cache MatchCache,
	cfg matching.Config,
	cacheTTL time.Duration,
) *Match {
	return &Match{
		jobs:       jobs,
		reqs:       reqs,
		profs:      profs,
		candidates: candidates,
		cache:      cache,
		cfg:        cfg,
		cacheTTL:   cacheTTL,
	}
}

// cachedMatch is the redis envelope; Outcome is an interface and cannot
// round-trip through JSON on its own.
type cachedMatch struct {
	Result matching.Result `json:"result"`
	Legacy bool            `json:"legacy_match"`
}

func (c cachedMatch) outcome() matching.Outcome {
	if c.Legacy {
		return matching.LegacyOutcome{Result: c.Result}
	}
	return matching.WeightedOutcome{Result: c.Result}
}

func (u *Match) MatchUserToJob(ctx context.Context, userID, jobID uuid.UUID) (matching.Outcome, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}

	key := matchCacheKey(userID, jobID)
	if u.cache != nil {
		var cached cachedMatch
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return cached.outcome(), nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}

	reqs, err := u.reqs.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}

	started := time.Now()
	var out matching.Outcome
	if len(reqs) == 0 {
		// No structured requirements: the coarse free-text fallback is the
		// only defined scoring path for this job.
		profile, err := u.candidates.FindProfile(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrCandidateNotFound) {
			return nil, ErrInternal
		}
		res := matching.LegacyMatch(profile.SkillsText, job.SkillsText, u.cfg)
		out = matching.LegacyOutcome{Result: res}
		metrics.MatchComputations.WithLabelValues("legacy").Inc()
		metrics.MatchDuration.WithLabelValues("legacy").Observe(time.Since(started).Seconds())
	} else {
		profMap, err := u.profs.MapByUserID(ctx, userID)
		if err != nil {
			return nil, ErrInternal
		}
		res := matching.Evaluate(reqs, profMap, u.cfg)
		out = matching.WeightedOutcome{Result: res}
		metrics.MatchComputations.WithLabelValues("weighted").Inc()
		metrics.MatchDuration.WithLabelValues("weighted").Observe(time.Since(started).Seconds())
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, cachedMatch{Result: out.Match(), Legacy: out.IsLegacy()}, u.cacheTTL)
	}
	return out, nil
}
