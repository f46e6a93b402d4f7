package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"talent-match/internal/domain/fit"
	"talent-match/internal/domain/matching"
	"talent-match/internal/pipeline"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type memoryRunRepo struct {
	mu   sync.Mutex
	runs map[uuid.UUID]repository.TrainingRun
	seq  []uuid.UUID
}

func newMemoryRunRepo() *memoryRunRepo {
	return &memoryRunRepo{runs: make(map[uuid.UUID]repository.TrainingRun)}
}

func (m *memoryRunRepo) Start(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[id] = repository.TrainingRun{ID: id, Status: repository.TrainingRunRunning, StartedAt: time.Now()}
	m.seq = append(m.seq, id)
	return nil
}

func (m *memoryRunRepo) Finish(_ context.Context, id uuid.UUID, run repository.TrainingRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing := m.runs[id]
	existing.Status = run.Status
	existing.SampleCount = run.SampleCount
	existing.RealSamples = run.RealSamples
	existing.F1 = run.F1
	existing.ErrorMessage = run.ErrorMessage
	now := time.Now()
	existing.FinishedAt = &now
	m.runs[id] = existing
	return nil
}

func (m *memoryRunRepo) Latest(_ context.Context) (repository.TrainingRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.seq) == 0 {
		return repository.TrainingRun{}, repository.ErrTrainingRunNotFound
	}
	return m.runs[m.seq[len(m.seq)-1]], nil
}

func (m *memoryRunRepo) List(_ context.Context, limit int) ([]repository.TrainingRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.TrainingRun, 0, len(m.seq))
	for i := len(m.seq) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[m.seq[i]])
	}
	return out, nil
}

func (m *memoryRunRepo) get(id uuid.UUID) repository.TrainingRun {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs[id]
}

type stubApplicationRepo struct {
	outcomes []repository.TrainingOutcome
}

func (s *stubApplicationRepo) ListOutcomes(_ context.Context, limit, offset int) ([]repository.TrainingOutcome, error) {
	if offset >= len(s.outcomes) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.outcomes) {
		end = len(s.outcomes)
	}
	return s.outcomes[offset:end], nil
}

func (s *stubApplicationRepo) CountOutcomes(context.Context) (int64, error) {
	return int64(len(s.outcomes)), nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) NotifyTraining(_ uuid.UUID, stage, status string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, stage+":"+status)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func newTrainingFixture(t *testing.T, outcomes []repository.TrainingOutcome) (*Training, *memoryRunRepo, *recordingNotifier, *fit.Store) {
	t.Helper()

	skillID := uuid.New()
	apps := &stubApplicationRepo{outcomes: outcomes}

	jobs := &stubJobRepo{jobs: map[uuid.UUID]repository.Job{}}
	reqsByJob := map[uuid.UUID][]matching.Requirement{}
	profsByUser := map[uuid.UUID][]matching.Proficiency{}
	profiles := map[uuid.UUID]repository.Candidate{}

	for i, o := range outcomes {
		jobs.jobs[o.JobID] = repository.Job{ID: o.JobID, Title: "Job", SkillsText: "go"}
		reqsByJob[o.JobID] = []matching.Requirement{
			{SkillID: skillID, SkillName: "Go", RequiredLevel: 6, Weight: 1},
		}
		level := 2.0
		if o.Label == 1 {
			level = 8.0
		}
		profsByUser[o.UserID] = []matching.Proficiency{
			{SkillID: skillID, SkillName: "Go", Level: level, Status: matching.StatusVerified},
		}
		profiles[o.UserID] = repository.Candidate{
			ID:              o.UserID,
			ExperienceYears: float64(i % 7),
			SkillsText:      "go",
		}
	}

	store := fit.NewStore()
	pipe := pipeline.NewTrainingPipeline(
		apps,
		&stubCandidateRepo{profiles: profiles},
		&stubProficiencyRepo{byUser: profsByUser},
		jobs,
		&stubRequirementRepo{byJob: reqsByJob},
		store,
		matching.DefaultConfig(),
		nil,
	)

	notifier := &recordingNotifier{}
	runs := newMemoryRunRepo()
	params := pipeline.TrainingParams{
		Workers:    2,
		MinSamples: 100,
		Forest:     fit.Params{Trees: 10, MaxDepth: 6, Seed: 7},
		Seed:       7,
	}
	u := NewTrainingUsecase(runs, pipe, newMemoryCache(), notifier, params, time.Minute, nil)
	return u, runs, notifier, store
}

func trainingOutcomes(n int) []repository.TrainingOutcome {
	out := make([]repository.TrainingOutcome, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, repository.TrainingOutcome{
			UserID: uuid.New(),
			JobID:  uuid.New(),
			Label:  i % 2,
		})
	}
	return out
}

func waitForRun(t *testing.T, runs *memoryRunRepo, id uuid.UUID) repository.TrainingRun {
	t.Helper()
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		run := runs.get(id)
		if run.Status != "" && run.Status != repository.TrainingRunRunning {
			return run
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("training run %s did not finish", id)
	return repository.TrainingRun{}
}

func TestTrainingTrigger_RunsToCompletion(t *testing.T) {
	u, runs, notifier, store := newTrainingFixture(t, trainingOutcomes(30))

	runID, err := u.Trigger(context.Background())
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	run := waitForRun(t, runs, runID)
	if run.Status != repository.TrainingRunSucceeded {
		t.Fatalf("status = %q (%s), want succeeded", run.Status, run.ErrorMessage)
	}
	if run.RealSamples != 30 {
		t.Fatalf("real samples = %d, want 30", run.RealSamples)
	}
	if run.SampleCount < 100 {
		t.Fatalf("sample count = %d, want >= 100 after synthetic top-up", run.SampleCount)
	}
	if store.Current() == nil {
		t.Fatalf("no model published after successful run")
	}
	if notifier.count() == 0 {
		t.Fatalf("no training events broadcast")
	}

	rep, err := u.Report(context.Background())
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.SampleCount != run.SampleCount {
		t.Fatalf("report samples = %d, run samples = %d", rep.SampleCount, run.SampleCount)
	}
}

func TestTrainingTrigger_LockRejectsConcurrentRun(t *testing.T) {
	u, runs, _, _ := newTrainingFixture(t, trainingOutcomes(30))

	// Hold the lock by hand; the trigger must refuse.
	if _, err := u.cache.SetIfNotExists(context.Background(), trainingLockKey, "held", time.Minute); err != nil {
		t.Fatalf("seed lock: %v", err)
	}

	if _, err := u.Trigger(context.Background()); err != ErrTrainingInProgress {
		t.Fatalf("err = %v, want ErrTrainingInProgress", err)
	}
	if len(runs.seq) != 0 {
		t.Fatalf("run recorded despite held lock")
	}
}

func TestTrainingTrigger_InsufficientDataFailsRun(t *testing.T) {
	// No labeled outcomes at all: training must fail, never publish a model
	// built from pure synthetics.
	u, runs, _, _ := newTrainingFixture(t, nil)

	runID, err := u.Trigger(context.Background())
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	run := waitForRun(t, runs, runID)
	if run.Status != repository.TrainingRunFailed {
		t.Fatalf("status = %q, want failed", run.Status)
	}
	if run.ErrorMessage == "" {
		t.Fatalf("failed run carries no error message")
	}
}

func TestTrainingStatus_NoRuns(t *testing.T) {
	u, _, _, _ := newTrainingFixture(t, nil)

	if _, err := u.Status(context.Background()); err != ErrModelNotReady {
		t.Fatalf("err = %v, want ErrModelNotReady", err)
	}
}

func TestTrainingTrigger_LockReleasedAfterRun(t *testing.T) {
	u, runs, _, _ := newTrainingFixture(t, trainingOutcomes(30))

	runID, err := u.Trigger(context.Background())
	if err != nil {
		t.Fatalf("first trigger: %v", err)
	}
	waitForRun(t, runs, runID)

	// Lock release is the last step of the background run; give it a beat.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := u.Trigger(context.Background()); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("lock never released after run finished")
}
