package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"talent-match/internal/domain/fit"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StageCallback receives coarse progress events ("collect", "augment",
// "train", "publish") so callers can stream them to watching clients.
type StageCallback func(stage, status string)

type TrainingPipeline struct {
	apps       repository.ApplicationRepository
	candidates repository.CandidateRepository
	profs      repository.ProficiencyRepository
	jobs       repository.JobRepository
	reqs       repository.RequirementRepository

	store *fit.Store
	cfg   matching.Config
	log   *zap.Logger
}

type TrainingParams struct {
	Workers     int
	BatchSize   int
	RateLimit   int
	MinSamples  int
	ArtifactDir string
	Forest      fit.Params
	Seed        int64
	OnStage     StageCallback
}

func NewTrainingPipeline(
	apps repository.ApplicationRepository,
	candidates repository.CandidateRepository,
	profs repository.ProficiencyRepository,
	jobs repository.JobRepository,
	reqs repository.RequirementRepository,
	store *fit.Store,
	cfg matching.Config,
	log *zap.Logger,
) *TrainingPipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &TrainingPipeline{
		apps:       apps,
		candidates: candidates,
		profs:      profs,
		jobs:       jobs,
		reqs:       reqs,
		store:      store,
		cfg:        cfg,
		log:        log,
	}
}

// Run mines labeled outcomes from the application history, engineers a
// feature vector per pair, tops the set up with synthetic samples when the
// history is thin, trains a fresh forest and publishes it.
func (p *TrainingPipeline) Run(ctx context.Context, params TrainingParams) (*fit.Report, error) {
	start := time.Now()
	stage := func(name, status string) {
		if params.OnStage != nil {
			params.OnStage(name, status)
		}
	}

	p.log.Info("training started")
	defer func() {
		p.log.Info("training finished", zap.Duration("duration", time.Since(start)))
	}()

	stage("collect", "started")
	real, err := p.collectSamples(ctx, params)
	if err != nil {
		stage("collect", "failed")
		return nil, fmt.Errorf("collect samples: %w", err)
	}
	stage("collect", "finished")
	p.log.Info("outcome samples collected", zap.Int("samples", len(real)))

	if len(real) == 0 {
		return nil, fmt.Errorf("no labeled application outcomes: %w", fit.ErrInsufficientData)
	}

	minSamples := params.MinSamples
	if minSamples <= 0 {
		minSamples = fit.DefaultMinSamples
	}

	stage("augment", "started")
	rng := rand.New(rand.NewSource(params.Seed))
	samples := fit.Augment(real, minSamples, rng)
	stage("augment", "finished")
	p.log.Info("training set assembled",
		zap.Int("real", len(real)),
		zap.Int("total", len(samples)))

	stage("train", "started")
	forest, report, err := fit.Train(samples, fit.TrainOptions{
		Params:     params.Forest,
		MinSamples: minSamples,
		Seed:       params.Seed,
	})
	if err != nil {
		stage("train", "failed")
		return nil, err
	}
	stage("train", "finished")
	p.log.Info("forest trained",
		zap.Float64("f1", report.Metrics.F1),
		zap.Float64("roc_auc", report.Metrics.ROCAUC),
		zap.Float64("cv_f1_mean", report.Metrics.CVF1Mean))

	stage("publish", "started")
	art := &fit.Artifact{
		Version:      1,
		TrainedAt:    report.TrainedAt,
		FeatureNames: fit.FeatureNames,
		Forest:       forest,
	}
	if params.ArtifactDir != "" {
		if err := fit.SaveArtifact(params.ArtifactDir, art, report); err != nil {
			stage("publish", "failed")
			return nil, err
		}
	}
	if p.store != nil {
		p.store.Publish(art)
	}
	stage("publish", "finished")

	return report, nil
}

func (p *TrainingPipeline) collectSamples(ctx context.Context, params TrainingParams) ([]fit.Sample, error) {
	batch := params.BatchSize
	if batch <= 0 {
		batch = 500
	}

	outcomes := make([]repository.TrainingOutcome, 0)
	for off := 0; ; {
		page, err := p.apps.ListOutcomes(ctx, batch, off)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		outcomes = append(outcomes, page...)
		off += len(page)
	}
	if len(outcomes) == 0 {
		return nil, nil
	}

	jobIDs := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]struct{})
	for _, o := range outcomes {
		if _, ok := seen[o.JobID]; ok {
			continue
		}
		seen[o.JobID] = struct{}{}
		jobIDs = append(jobIDs, o.JobID)
	}

	reqsByJob, err := p.reqs.FindByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}
	jobsByID := make(map[uuid.UUID]repository.Job, len(jobIDs))
	for _, id := range jobIDs {
		j, err := p.jobs.FindByID(ctx, id)
		if err != nil {
			p.log.Warn("skipping outcome job", zap.String("job_id", id.String()), zap.Error(err))
			continue
		}
		jobsByID[id] = j
	}

	workers := params.Workers
	if workers <= 0 {
		workers = 5
	}
	pool := NewWorkerPool(workers, workers*2)
	if params.RateLimit > 0 {
		pool.SetRateLimit(params.RateLimit)
	}
	results := pool.Run(ctx)

	var mu sync.Mutex
	samples := make([]fit.Sample, 0, len(outcomes))

	// The outcome count is unbounded, so results must be drained while
	// submitting or the pool's buffers fill and the submit loop stalls.
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for range results {
		}
	}()

	for _, o := range outcomes {
		o := o
		j, ok := jobsByID[o.JobID]
		if !ok {
			continue
		}
		accepted := pool.Submit(ctx, func(ctx context.Context) Result {
			user, err := p.loadCandidate(ctx, o.UserID)
			if err != nil {
				p.log.Warn("skipping outcome candidate",
					zap.String("user_id", o.UserID.String()), zap.Error(err))
				return Result{Err: err}
			}
			posting := fit.JobPosting{
				JobID:                   j.ID,
				Description:             j.Description,
				SkillsText:              j.SkillsText,
				RequiredExperienceYears: j.RequiredExperienceYears,
				MinEducationLevel:       j.MinEducationLevel,
				Requirements:            reqsByJob[j.ID],
			}
			vec := fit.Features(user, posting, p.cfg)

			mu.Lock()
			samples = append(samples, fit.Sample{Features: vec, Label: o.Label})
			mu.Unlock()
			return Result{}
		})
		if !accepted {
			break
		}
	}

	pool.Close()
	<-drained

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

func (p *TrainingPipeline) loadCandidate(ctx context.Context, userID uuid.UUID) (fit.CandidateProfile, error) {
	c, err := p.candidates.FindProfile(ctx, userID)
	if err != nil {
		return fit.CandidateProfile{}, err
	}
	profs, err := p.profs.FindByUserID(ctx, userID)
	if err != nil {
		return fit.CandidateProfile{}, err
	}
	assessments, err := p.candidates.ListAssessments(ctx, userID)
	if err != nil {
		return fit.CandidateProfile{}, err
	}
	return fit.CandidateProfile{
		UserID:              c.ID,
		ExperienceYears:     c.ExperienceYears,
		EducationLevel:      c.EducationLevel,
		ProfileCompleteness: c.ProfileCompleteness,
		Objective:           c.Objective,
		SkillsText:          c.SkillsText,
		Proficiencies:       profs,
		Assessments:         assessments,
	}, nil
}
