package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"talent-match/internal/domain/fit"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type stubJobRepo struct {
	jobs map[uuid.UUID]repository.Job
}

func (s *stubJobRepo) FindByID(_ context.Context, jobID uuid.UUID) (repository.Job, error) {
	j, ok := s.jobs[jobID]
	if !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (s *stubJobRepo) ListActive(context.Context, int, int) ([]repository.Job, error) {
	out := make([]repository.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (s *stubJobRepo) CountActive(context.Context) (int64, error) {
	return int64(len(s.jobs)), nil
}

type stubRequirementRepo struct {
	byJob map[uuid.UUID][]matching.Requirement
}

func (s *stubRequirementRepo) FindByJobID(_ context.Context, jobID uuid.UUID) ([]matching.Requirement, error) {
	return s.byJob[jobID], nil
}

func (s *stubRequirementRepo) FindByJobIDs(_ context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]matching.Requirement, error) {
	out := make(map[uuid.UUID][]matching.Requirement)
	for _, id := range jobIDs {
		if reqs, ok := s.byJob[id]; ok {
			out[id] = reqs
		}
	}
	return out, nil
}

type stubProficiencyRepo struct {
	byUser map[uuid.UUID][]matching.Proficiency
}

func (s *stubProficiencyRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]matching.Proficiency, error) {
	return s.byUser[userID], nil
}

func (s *stubProficiencyRepo) MapByUserID(_ context.Context, userID uuid.UUID) (map[uuid.UUID]matching.Proficiency, error) {
	out := make(map[uuid.UUID]matching.Proficiency)
	for _, p := range s.byUser[userID] {
		out[p.SkillID] = p
	}
	return out, nil
}

type stubCandidateRepo struct {
	profiles map[uuid.UUID]repository.Candidate
}

func (s *stubCandidateRepo) FindProfile(_ context.Context, userID uuid.UUID) (repository.Candidate, error) {
	c, ok := s.profiles[userID]
	if !ok {
		return repository.Candidate{}, repository.ErrCandidateNotFound
	}
	return c, nil
}

func (s *stubCandidateRepo) ListAssessments(context.Context, uuid.UUID) ([]fit.AssessmentScore, error) {
	return nil, nil
}

func (s *stubCandidateRepo) ListCandidateIDsForJob(_ context.Context, _ uuid.UUID, limit int) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(s.profiles))
	for id := range s.profiles {
		out = append(out, id)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *memoryCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}

func (c *memoryCache) InvalidateUserMatches(context.Context, string) error {
	c.data = make(map[string][]byte)
	return nil
}

func (c *memoryCache) InvalidateJobMatches(context.Context, string) error {
	c.data = make(map[string][]byte)
	return nil
}

func newMatchFixture() (*Match, uuid.UUID, uuid.UUID, uuid.UUID) {
	userID := uuid.New()
	jobID := uuid.New()
	skillID := uuid.New()

	jobs := &stubJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobID: {ID: jobID, Title: "Backend Engineer", SkillsText: "go, postgresql", IsActive: true},
	}}
	reqs := &stubRequirementRepo{byJob: map[uuid.UUID][]matching.Requirement{
		jobID: {
			{SkillID: skillID, SkillName: "Go", RequiredLevel: 6, Criticality: 0.8, IsMandatory: true, Weight: 2},
		},
	}}
	profs := &stubProficiencyRepo{byUser: map[uuid.UUID][]matching.Proficiency{
		userID: {
			{SkillID: skillID, SkillName: "Go", Level: 8, Status: matching.StatusVerified},
		},
	}}
	candidates := &stubCandidateRepo{profiles: map[uuid.UUID]repository.Candidate{
		userID: {ID: userID, FullName: "Test User", SkillsText: "go, docker"},
	}}

	u := NewMatchUsecase(jobs, reqs, profs, candidates, newMemoryCache(), matching.DefaultConfig(), time.Minute)
	return u, userID, jobID, skillID
}

func TestMatchUserToJob_WeightedPath(t *testing.T) {
	u, userID, jobID, _ := newMatchFixture()

	out, err := u.MatchUserToJob(context.Background(), userID, jobID)
	if err != nil {
		t.Fatalf("MatchUserToJob: %v", err)
	}
	if out.IsLegacy() {
		t.Fatalf("expected weighted outcome for a job with requirements")
	}

	res := out.Match()
	if res.EligibilityStatus != matching.Eligible {
		t.Fatalf("status = %q, want %q", res.EligibilityStatus, matching.Eligible)
	}
	if res.OverallScore != 100 {
		t.Fatalf("score = %v, want 100", res.OverallScore)
	}
	if !res.CanApply {
		t.Fatalf("CanApply should be true for an eligible match")
	}
}

func TestMatchUserToJob_LegacyPathWhenNoRequirements(t *testing.T) {
	u, userID, jobID, _ := newMatchFixture()
	u.reqs = &stubRequirementRepo{byJob: map[uuid.UUID][]matching.Requirement{}}

	out, err := u.MatchUserToJob(context.Background(), userID, jobID)
	if err != nil {
		t.Fatalf("MatchUserToJob: %v", err)
	}
	if !out.IsLegacy() {
		t.Fatalf("expected legacy outcome for a job without requirements")
	}
	if s := out.Match().OverallScore; s <= 0 || s > 100 {
		t.Fatalf("legacy score out of range: %v", s)
	}
}

func TestMatchUserToJob_JobNotFound(t *testing.T) {
	u, userID, _, _ := newMatchFixture()

	_, err := u.MatchUserToJob(context.Background(), userID, uuid.New())
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("err = %v, want ErrJobNotFound", err)
	}
}

func TestMatchUserToJob_EmptyProfileStillScores(t *testing.T) {
	u, _, jobID, _ := newMatchFixture()
	strangerID := uuid.New()

	out, err := u.MatchUserToJob(context.Background(), strangerID, jobID)
	if err != nil {
		t.Fatalf("MatchUserToJob: %v", err)
	}
	res := out.Match()
	if res.EligibilityStatus != matching.NotEligible {
		t.Fatalf("status = %q, want %q", res.EligibilityStatus, matching.NotEligible)
	}
	if len(res.MissingSkills) != 1 {
		t.Fatalf("missing = %d, want 1", len(res.MissingSkills))
	}
}

func TestMatchUserToJob_CacheHitSkipsRecompute(t *testing.T) {
	u, userID, jobID, _ := newMatchFixture()

	first, err := u.MatchUserToJob(context.Background(), userID, jobID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	// Break the job repo; a cache hit must not touch it.
	u.jobs = &stubJobRepo{jobs: map[uuid.UUID]repository.Job{}}

	second, err := u.MatchUserToJob(context.Background(), userID, jobID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.Match().OverallScore != first.Match().OverallScore {
		t.Fatalf("cached score %v differs from computed %v",
			second.Match().OverallScore, first.Match().OverallScore)
	}
	if second.IsLegacy() != first.IsLegacy() {
		t.Fatalf("cached legacy flag differs")
	}
}
