package pipeline

import (
	"context"
	"time"

	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchRefreshPipeline recomputes the persisted match score for every
// (candidate, job) pair in batch, so recommendation reads can be served
// from job_matches without scoring on the hot path.
type MatchRefreshPipeline struct {
	users   repository.UserQueryRepository
	jobsQry repository.JobQueryRepository
	profs   repository.ProficiencyRepository
	reqs    repository.RequirementRepository
	matches repository.JobMatchRepository

	cfg matching.Config
	log *zap.Logger
}

type MatchRefreshParams struct {
	Workers   int
	RateLimit int
}

func NewMatchRefreshPipeline(
	users repository.UserQueryRepository,
	jobsQry repository.JobQueryRepository,
	profs repository.ProficiencyRepository,
	reqs repository.RequirementRepository,
	matches repository.JobMatchRepository,
	cfg matching.Config,
	log *zap.Logger,
) *MatchRefreshPipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &MatchRefreshPipeline{
		users:   users,
		jobsQry: jobsQry,
		profs:   profs,
		reqs:    reqs,
		matches: matches,
		cfg:     cfg,
		log:     log,
	}
}

func (p *MatchRefreshPipeline) Run(ctx context.Context, params MatchRefreshParams) error {
	if p == nil || p.users == nil || p.jobsQry == nil || p.matches == nil {
		return nil
	}
	start := time.Now()

	p.log.Info("match refresh started")
	defer func() {
		p.log.Info("match refresh finished", zap.Duration("duration", time.Since(start)))
	}()

	workers := params.Workers
	if workers <= 0 {
		workers = 10
	}

	userIDs, err := p.listAllUserIDs(ctx)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	jobIDs, err := p.listAllJobIDs(ctx)
	if err != nil {
		return err
	}
	if len(jobIDs) == 0 {
		return nil
	}

	reqsByJob, err := p.reqs.FindByJobIDs(ctx, jobIDs)
	if err != nil {
		return err
	}

	total := len(userIDs) * len(jobIDs)
	p.log.Info("match refresh arena",
		zap.Int("users", len(userIDs)),
		zap.Int("jobs", len(jobIDs)),
		zap.Int("total_pairs", total),
		zap.Int("workers", workers))

	pool := NewWorkerPool(workers, workers*2)
	if params.RateLimit > 0 {
		pool.SetRateLimit(params.RateLimit)
	}
	results := pool.Run(ctx)

	// Pair count is users x jobs, well past the pool's buffers on any real
	// dataset; drain while submitting so the submit loop never stalls.
	var failed int
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for r := range results {
			if r.Err != nil {
				failed++
			}
		}
	}()

	var submitted int
submitLoop:
	for _, uid := range userIDs {
		uid := uid
		profMap, err := p.profs.MapByUserID(ctx, uid)
		if err != nil {
			p.log.Warn("skipping user", zap.String("user_id", uid.String()), zap.Error(err))
			continue
		}
		for _, jid := range jobIDs {
			jid := jid
			reqs := reqsByJob[jid]
			if len(reqs) == 0 {
				continue
			}
			accepted := pool.Submit(ctx, func(ctx context.Context) Result {
				res := matching.Evaluate(reqs, profMap, p.cfg)
				err := p.matches.Upsert(ctx, repository.JobMatchUpsert{
					UserID:    uid,
					JobID:     jid,
					Score:     res.OverallScore,
					Status:    string(res.EligibilityStatus),
					Indicator: res.Indicator,
					MatchedAt: time.Now().UTC(),
				})
				if err != nil {
					p.log.Warn("match upsert failed",
						zap.String("user_id", uid.String()),
						zap.String("job_id", jid.String()),
						zap.Error(err))
				}
				return Result{Err: err}
			})
			if !accepted {
				break submitLoop
			}
			submitted++
		}
	}

	pool.Close()
	<-drained

	p.log.Info("match refresh summary",
		zap.Int("submitted", submitted),
		zap.Int("failed", failed))
	return nil
}

func (p *MatchRefreshPipeline) listAllUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0)
	for off := 0; ; {
		ids, err := p.users.ListUserIDs(ctx, 500, off)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return out, nil
		}
		out = append(out, ids...)
		off += len(ids)
	}
}

func (p *MatchRefreshPipeline) listAllJobIDs(ctx context.Context) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0)
	for off := 0; ; {
		ids, err := p.jobsQry.ListJobIDsWithRequirements(ctx, 1000, off)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return out, nil
		}
		out = append(out, ids...)
		off += len(ids)
	}
}
