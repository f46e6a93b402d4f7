package usecase

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/domain/fit"
	"talent-match/internal/domain/matching"
	"talent-match/internal/metrics"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

// FitPrediction is the served fit probability plus enough provenance to
// interpret it.
type FitPrediction struct {
	Probability  float64   `json:"fit_probability"`
	ModelVersion int       `json:"model_version"`
	TrainedAt    time.Time `json:"trained_at"`
}

type FitUsecase interface {
	PredictFit(ctx context.Context, userID, jobID uuid.UUID) (FitPrediction, error)
}

type Fit struct {
	jobs       repository.JobRepository
	reqs       repository.RequirementRepository
	profs      repository.ProficiencyRepository
	candidates repository.CandidateRepository
	store      *fit.Store
	cache      MatchCache
	cfg        matching.Config
	cacheTTL   time.Duration
}

func NewFitUsecase(
	jobs repository.JobRepository,
	reqs repository.RequirementRepository,
	profs repository.ProficiencyRepository,
	candidates repository.CandidateRepository,
	store *fit.Store,
	cache MatchCache,
	cfg matching.Config,
	cacheTTL time.Duration,
) *Fit {
	return &Fit{
		jobs:       jobs,
		reqs:       reqs,
		profs:      profs,
		candidates: candidates,
		store:      store,
		cache:      cache,
		cfg:        cfg,
		cacheTTL:   cacheTTL,
	}
}

func (u *Fit) PredictFit(ctx context.Context, userID, jobID uuid.UUID) (FitPrediction, error) {
	if userID == uuid.Nil {
		return FitPrediction{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return FitPrediction{}, ErrJobNotFound
	}

	art := u.store.Current()
	if art == nil {
		return FitPrediction{}, ErrModelNotReady
	}

	key := fitCacheKey(userID, jobID)
	if u.cache != nil {
		var cached FitPrediction
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit && cached.ModelVersion == art.Version {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return FitPrediction{}, ErrJobNotFound
		}
		return FitPrediction{}, ErrInternal
	}
	reqs, err := u.reqs.FindByJobID(ctx, jobID)
	if err != nil {
		return FitPrediction{}, ErrInternal
	}

	profile, err := u.candidates.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return FitPrediction{}, ErrUserNotFound
		}
		return FitPrediction{}, ErrInternal
	}
	profs, err := u.profs.FindByUserID(ctx, userID)
	if err != nil {
		return FitPrediction{}, ErrInternal
	}
	assessments, err := u.candidates.ListAssessments(ctx, userID)
	if err != nil {
		return FitPrediction{}, ErrInternal
	}

	vec := fit.Features(
		fit.CandidateProfile{
			UserID:              userID,
			ExperienceYears:     profile.ExperienceYears,
			EducationLevel:      profile.EducationLevel,
			ProfileCompleteness: profile.ProfileCompleteness,
			Objective:           profile.Objective,
			SkillsText:          profile.SkillsText,
			Proficiencies:       profs,
			Assessments:         assessments,
		},
		fit.JobPosting{
			JobID:                   jobID,
			Description:             job.Description,
			SkillsText:              job.SkillsText,
			RequiredExperienceYears: job.RequiredExperienceYears,
			MinEducationLevel:       job.MinEducationLevel,
			Requirements:            reqs,
		},
		u.cfg,
	)

	prob, err := u.store.Predict(vec)
	if err != nil {
		if errors.Is(err, fit.ErrModelNotLoaded) {
			return FitPrediction{}, ErrModelNotReady
		}
		return FitPrediction{}, ErrInternal
	}
	metrics.FitPredictions.Inc()

	pred := FitPrediction{Probability: prob, ModelVersion: art.Version, TrainedAt: art.TrainedAt}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, pred, u.cacheTTL)
	}
	return pred, nil
}
