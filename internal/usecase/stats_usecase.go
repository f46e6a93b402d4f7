package usecase

import (
	"context"
	"time"

	"talent-match/internal/repository"
)

// PlatformStatus is the admin overview: matching totals plus dependency
// health.
type PlatformStatus struct {
	Stats           repository.MatchStats
	TotalJobs       int
	JobsWithReqs    int
	LabeledOutcomes int64
	DatabaseHealthy bool
	CacheHealthy    bool
	LatestTraining  *repository.TrainingRun
	GeneratedAt     time.Time
}

type StatsUsecase interface {
	Overview(ctx context.Context) (PlatformStatus, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type Stats struct {
	stats      repository.MatchStatsRepository
	jobQueries repository.JobQueryRepository
	apps       repository.ApplicationRepository
	runs       repository.TrainingRunRepository
	db         pinger
	redis      pinger
	now        func() time.Time
}

func NewStatsUsecase(
	stats repository.MatchStatsRepository,
	jobQueries repository.JobQueryRepository,
	apps repository.ApplicationRepository,
	runs repository.TrainingRunRepository,
	db pinger,
	redis pinger,
) *Stats {
	return &Stats{
		stats:      stats,
		jobQueries: jobQueries,
		apps:       apps,
		runs:       runs,
		db:         db,
		redis:      redis,
		now:        time.Now,
	}
}

func (u *Stats) Overview(ctx context.Context) (PlatformStatus, error) {
	summary, err := u.stats.Summary(ctx)
	if err != nil {
		return PlatformStatus{}, ErrInternal
	}
	totalJobs, err := u.jobQueries.CountJobs(ctx)
	if err != nil {
		return PlatformStatus{}, ErrInternal
	}
	withReqs, err := u.jobQueries.CountRequirements(ctx)
	if err != nil {
		return PlatformStatus{}, ErrInternal
	}
	outcomes, err := u.apps.CountOutcomes(ctx)
	if err != nil {
		return PlatformStatus{}, ErrInternal
	}

	status := PlatformStatus{
		Stats:           summary,
		TotalJobs:       totalJobs,
		JobsWithReqs:    withReqs,
		LabeledOutcomes: outcomes,
		GeneratedAt:     u.now().UTC(),
	}

	if run, err := u.runs.Latest(ctx); err == nil {
		status.LatestTraining = &run
	}

	status.DatabaseHealthy = u.ping(ctx, u.db)
	status.CacheHealthy = u.ping(ctx, u.redis)
	return status, nil
}

func (u *Stats) ping(ctx context.Context, p pinger) bool {
	if p == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.Ping(pingCtx) == nil
}
