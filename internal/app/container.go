package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/database/seeder"
	"talent-match/internal/domain/fit"
	"talent-match/internal/domain/matching"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/logger"
	"talent-match/internal/metrics"
	"talent-match/internal/pipeline"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency: the connection pool, the
// cache client, the published model, pipelines and usecases. Handlers
// are built from it by Bootstrap.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Models *fit.Store
	Hub    *ws.Hub

	Jobs         repository.JobRepository
	JobQueries   repository.JobQueryRepository
	Requirements repository.RequirementRepository
	ReqWriter    repository.RequirementWriteRepository
	Profs        repository.ProficiencyRepository
	Candidates   repository.CandidateRepository
	Applications repository.ApplicationRepository
	Skills       repository.SkillRepository
	UserSkills   repository.UserSkillRepository
	Users        repository.UserQueryRepository
	Matches      repository.JobMatchRepository
	MatchStats   repository.MatchStatsRepository
	TrainingRuns repository.TrainingRunRepository

	TrainingPipe *pipeline.TrainingPipeline
	RefreshPipe  *pipeline.MatchRefreshPipeline
	BackfillPipe *pipeline.SkillBackfillPipeline

	MatchUC     *usecase.Match
	RankingUC   *usecase.Ranking
	FitUC       *usecase.Fit
	TrainingUC  *usecase.Training
	SkillUC     *usecase.Skill
	UserSkillUC *usecase.UserSkill
	StatsUC     *usecase.Stats
}

func NewContainer(cfg config.Config) (*Container, error) {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed database: %w", err)
	}

	redis := cache.NewRedis(cfg.Redis, log)
	store := fit.NewStore()
	preloadModel(store, cfg.Training.ArtifactDir, log)

	c := &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Cache:  redis,
		Models: store,
		Hub:    ws.NewHub(log),

		Jobs:         repository.NewPostgresJobRepository(db),
		JobQueries:   repository.NewPostgresJobQueryRepository(db),
		Requirements: repository.NewPostgresRequirementRepository(db),
		ReqWriter:    repository.NewPostgresRequirementWriteRepository(db),
		Profs:        repository.NewPostgresProficiencyRepository(db),
		Candidates:   repository.NewPostgresCandidateRepository(db),
		Applications: repository.NewPostgresApplicationRepository(db),
		Skills:       repository.NewPostgresSkillRepository(db),
		UserSkills:   repository.NewPostgresUserSkillRepository(db),
		Users:        repository.NewPostgresUserQueryRepository(db),
		Matches:      repository.NewPostgresJobMatchRepository(db),
		MatchStats:   repository.NewPostgresMatchStatsRepository(db),
		TrainingRuns: repository.NewPostgresTrainingRunRepository(db),
	}

	scoring := scoringConfig(cfg.Matching)
	cacheTTL := cfg.Redis.CacheTTL()

	c.TrainingPipe = pipeline.NewTrainingPipeline(
		c.Applications, c.Candidates, c.Profs, c.Jobs, c.Requirements,
		store, scoring, log,
	)
	c.RefreshPipe = pipeline.NewMatchRefreshPipeline(
		c.Users, c.JobQueries, c.Profs, c.Requirements, c.Matches,
		scoring, log,
	)
	c.BackfillPipe = pipeline.NewSkillBackfillPipeline(c.Jobs, c.Skills, c.ReqWriter, log)

	c.MatchUC = usecase.NewMatchUsecase(
		c.Jobs, c.Requirements, c.Profs, c.Candidates, redis, scoring, cacheTTL,
	)
	c.RankingUC = usecase.NewRankingUsecase(
		c.Jobs, c.JobQueries, c.Requirements, c.Profs, c.Candidates,
		scoring, cfg.Ranking.CandidateScanLimit, cfg.Ranking.Workers,
	)
	c.FitUC = usecase.NewFitUsecase(
		c.Jobs, c.Requirements, c.Profs, c.Candidates, store, redis, scoring, cacheTTL,
	)
	c.TrainingUC = usecase.NewTrainingUsecase(
		c.TrainingRuns, c.TrainingPipe, redis, ws.NewTrainingBroadcaster(c.Hub),
		trainingParams(cfg.Training), cfg.Training.LockDuration(), log,
	)
	c.SkillUC = usecase.NewSkillUsecase(c.Skills)
	c.UserSkillUC = usecase.NewUserSkillUsecase(c.UserSkills, redis)
	c.StatsUC = usecase.NewStatsUsecase(
		c.MatchStats, c.JobQueries, c.Applications, c.TrainingRuns, db, redis,
	)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}

func migrate(ctx context.Context, db database.DB) error {
	return migration.Runner{Dir: "migrations"}.Run(ctx, db.SQLDB())
}

// preloadModel republishes the last saved artifact so fit predictions
// survive a restart without retraining.
func preloadModel(store *fit.Store, dir string, log *zap.Logger) {
	art, err := fit.LoadArtifact(dir)
	if err != nil {
		log.Info("no fit model artifact to preload", zap.String("dir", dir), zap.Error(err))
		return
	}
	store.Publish(art)
	log.Info("fit model preloaded",
		zap.Int("version", art.Version),
		zap.Time("trained_at", art.TrainedAt),
	)
	if rep, err := fit.LoadReport(dir); err == nil {
		metrics.ModelF1.Set(rep.Metrics.F1)
	}
}

// scoringConfig overlays the configured thresholds on the calibrated
// defaults. Gap-indicator bounds are not configurable.
func scoringConfig(mc config.MatchingConfig) matching.Config {
	cfg := matching.DefaultConfig()
	if mc.EligibleThreshold > 0 {
		cfg.EligibleThreshold = mc.EligibleThreshold
	}
	if mc.AlmostEligibleThreshold > 0 {
		cfg.AlmostEligibleThreshold = mc.AlmostEligibleThreshold
	}
	if mc.PartialCreditDamping > 0 {
		cfg.PartialCreditDamping = mc.PartialCreditDamping
	}
	if mc.LegacyEligibleThreshold > 0 {
		cfg.LegacyEligibleThreshold = mc.LegacyEligibleThreshold
	}
	if mc.LegacyAlmostThreshold > 0 {
		cfg.LegacyAlmostThreshold = mc.LegacyAlmostThreshold
	}
	return cfg
}

func trainingParams(tc config.TrainingConfig) pipeline.TrainingParams {
	return pipeline.TrainingParams{
		Workers:     tc.Workers,
		RateLimit:   tc.RateLimit,
		MinSamples:  tc.MinSamples,
		ArtifactDir: tc.ArtifactDir,
		Forest: fit.Params{
			Trees:    tc.Trees,
			MaxDepth: tc.MaxDepth,
		},
	}
}
