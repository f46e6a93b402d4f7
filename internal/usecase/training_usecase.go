package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"talent-match/internal/domain/fit"
	"talent-match/internal/metrics"
	"talent-match/internal/pipeline"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const trainingLockKey = "training:lock"

// TrainingNotifier receives training lifecycle events, e.g. a websocket hub
// pushing them to connected admin dashboards.
type TrainingNotifier interface {
	NotifyTraining(runID uuid.UUID, stage, status string)
}

type TrainingUsecase interface {
	Trigger(ctx context.Context) (uuid.UUID, error)
	Status(ctx context.Context) (repository.TrainingRun, error)
	History(ctx context.Context, limit int) ([]repository.TrainingRun, error)
	Report(ctx context.Context) (*fit.Report, error)
}

type Training struct {
	runs     repository.TrainingRunRepository
	pipe     *pipeline.TrainingPipeline
	cache    MatchCache
	notifier TrainingNotifier
	params   pipeline.TrainingParams
	lockTTL  time.Duration
	log      *zap.Logger

	mu         sync.Mutex
	lastReport *fit.Report
}

func NewTrainingUsecase(
	runs repository.TrainingRunRepository,
	pipe *pipeline.TrainingPipeline,
	cache MatchCache,
	notifier TrainingNotifier,
	params pipeline.TrainingParams,
	lockTTL time.Duration,
	log *zap.Logger,
) *Training {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Training{
		runs:     runs,
		pipe:     pipe,
		cache:    cache,
		notifier: notifier,
		params:   params,
		lockTTL:  lockTTL,
		log:      log,
	}
}

// Trigger starts a training run in the background and returns its id. A
// redis SetNX lock keeps concurrent triggers (including from other server
// instances) down to one run at a time.
func (u *Training) Trigger(ctx context.Context) (uuid.UUID, error) {
	runID := uuid.New()

	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, trainingLockKey, runID.String(), u.lockTTL)
		if err == nil && !ok {
			metrics.TrainingRuns.WithLabelValues("skipped").Inc()
			return uuid.Nil, ErrTrainingInProgress
		}
	}

	if err := u.runs.Start(ctx, runID); err != nil {
		u.releaseLock(ctx)
		return uuid.Nil, ErrInternal
	}

	go u.run(runID)
	return runID, nil
}

// run executes the pipeline detached from the request context; an admin
// closing the browser tab must not abort training.
func (u *Training) run(runID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), u.lockTTL)
	defer cancel()
	defer u.releaseLock(ctx)

	params := u.params
	params.OnStage = func(stage, status string) {
		if u.notifier != nil {
			u.notifier.NotifyTraining(runID, stage, status)
		}
	}

	started := time.Now()
	report, err := u.pipe.Run(ctx, params)
	elapsed := time.Since(started)

	run := repository.TrainingRun{ID: runID}
	if err != nil {
		run.Status = repository.TrainingRunFailed
		run.ErrorMessage = err.Error()
		metrics.TrainingRuns.WithLabelValues("failed").Inc()
		u.log.Error("training run failed",
			zap.String("run_id", runID.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	} else {
		run.Status = repository.TrainingRunSucceeded
		run.SampleCount = report.SampleCount
		run.RealSamples = report.RealSamples
		run.F1 = report.Metrics.F1
		u.mu.Lock()
		u.lastReport = report
		u.mu.Unlock()
		metrics.TrainingRuns.WithLabelValues("succeeded").Inc()
		metrics.TrainingDuration.Observe(elapsed.Seconds())
		metrics.ModelF1.Set(report.Metrics.F1)
		u.log.Info("training run succeeded",
			zap.String("run_id", runID.String()),
			zap.Int("samples", report.SampleCount),
			zap.Float64("f1", report.Metrics.F1),
			zap.Duration("elapsed", elapsed))
	}

	if err := u.runs.Finish(ctx, runID, run); err != nil {
		u.log.Error("record training run", zap.String("run_id", runID.String()), zap.Error(err))
	}
}

func (u *Training) releaseLock(ctx context.Context) {
	if u.cache != nil {
		_ = u.cache.Delete(ctx, trainingLockKey)
	}
}

func (u *Training) Status(ctx context.Context) (repository.TrainingRun, error) {
	run, err := u.runs.Latest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrTrainingRunNotFound) {
			return repository.TrainingRun{}, ErrModelNotReady
		}
		return repository.TrainingRun{}, ErrInternal
	}
	return run, nil
}

func (u *Training) History(ctx context.Context, limit int) ([]repository.TrainingRun, error) {
	if limit <= 0 {
		limit = 20
	}
	runs, err := u.runs.List(ctx, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return runs, nil
}

// Report returns the most recent training report, falling back to the one
// saved alongside the artifact when the server restarted since training.
func (u *Training) Report(ctx context.Context) (*fit.Report, error) {
	u.mu.Lock()
	rep := u.lastReport
	u.mu.Unlock()
	if rep != nil {
		return rep, nil
	}

	if u.params.ArtifactDir != "" {
		loaded, err := fit.LoadReport(u.params.ArtifactDir)
		if err == nil {
			u.mu.Lock()
			u.lastReport = loaded
			u.mu.Unlock()
			return loaded, nil
		}
	}
	return nil, ErrModelNotReady
}
