package usecase

import (
	"context"
	"testing"

	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type stubJobQueryRepo struct {
	openJobs []uuid.UUID
}

func (s *stubJobQueryRepo) CountJobs(context.Context) (int, error)         { return len(s.openJobs), nil }
func (s *stubJobQueryRepo) CountRequirements(context.Context) (int, error) { return 0, nil }

func (s *stubJobQueryRepo) ListJobIDsWithRequirements(_ context.Context, limit, offset int) ([]uuid.UUID, error) {
	if offset >= len(s.openJobs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.openJobs) {
		end = len(s.openJobs)
	}
	return s.openJobs[offset:end], nil
}

func (s *stubJobQueryRepo) ListOpenJobIDsNotApplied(_ context.Context, _ uuid.UUID, limit int) ([]uuid.UUID, error) {
	if len(s.openJobs) > limit {
		return s.openJobs[:limit], nil
	}
	return s.openJobs, nil
}

func newRankingFixture(t *testing.T) (*Ranking, uuid.UUID, []uuid.UUID, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	skillID := uuid.New()
	jobA := uuid.New() // fully covered -> high score
	jobB := uuid.New() // requirement above level -> lower score
	jobC := uuid.New() // no requirements -> legacy path

	jobs := &stubJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobA: {ID: jobA, Title: "Platform Engineer", Company: "Acme", SkillsText: "go"},
		jobB: {ID: jobB, Title: "Staff Engineer", Company: "Acme", SkillsText: "go"},
		jobC: {ID: jobC, Title: "Generalist", Company: "Acme", SkillsText: "go, kubernetes, terraform"},
	}}
	reqs := &stubRequirementRepo{byJob: map[uuid.UUID][]matching.Requirement{
		jobA: {{SkillID: skillID, SkillName: "Go", RequiredLevel: 5, Weight: 1}},
		jobB: {{SkillID: skillID, SkillName: "Go", RequiredLevel: 10, Weight: 1}},
	}}
	profs := &stubProficiencyRepo{byUser: map[uuid.UUID][]matching.Proficiency{
		userID: {{SkillID: skillID, SkillName: "Go", Level: 7, Status: matching.StatusVerified}},
	}}
	candidates := &stubCandidateRepo{profiles: map[uuid.UUID]repository.Candidate{
		userID: {ID: userID, FullName: "Test User", SkillsText: "go, docker"},
	}}
	jobQueries := &stubJobQueryRepo{openJobs: []uuid.UUID{jobA, jobB, jobC}}

	u := NewRankingUsecase(jobs, jobQueries, reqs, profs, candidates, matching.DefaultConfig(), 50, 4)
	return u, userID, []uuid.UUID{jobA, jobB, jobC}, skillID
}

func TestRankJobsForUser_OrdersByScoreDescending(t *testing.T) {
	u, userID, jobIDs, _ := newRankingFixture(t)

	ranked, err := u.RankJobsForUser(context.Background(), userID, 10, "")
	if err != nil {
		t.Fatalf("RankJobsForUser: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("got %d rows, want 3", len(ranked))
	}

	for i := 1; i < len(ranked); i++ {
		prev := ranked[i-1].Outcome.Match().OverallScore
		cur := ranked[i].Outcome.Match().OverallScore
		if cur > prev {
			t.Fatalf("rows out of order: %v before %v", prev, cur)
		}
	}

	if ranked[0].JobID != jobIDs[0] {
		t.Fatalf("best job = %s, want fully covered job %s", ranked[0].JobID, jobIDs[0])
	}
	if ranked[0].Title == "" || ranked[0].Company == "" {
		t.Fatalf("ranked row missing job metadata")
	}
}

func TestRankJobsForUser_LegacyOnlyForJobsWithoutRequirements(t *testing.T) {
	u, userID, jobIDs, _ := newRankingFixture(t)

	ranked, err := u.RankJobsForUser(context.Background(), userID, 10, "")
	if err != nil {
		t.Fatalf("RankJobsForUser: %v", err)
	}

	legacyJob := jobIDs[2]
	for _, r := range ranked {
		if r.JobID == legacyJob && !r.Outcome.IsLegacy() {
			t.Fatalf("job without requirements must take the legacy path")
		}
		if r.JobID != legacyJob && r.Outcome.IsLegacy() {
			t.Fatalf("job %s with requirements took the legacy path", r.JobID)
		}
	}
}

func TestRankJobsForUser_StatusFilter(t *testing.T) {
	u, userID, _, _ := newRankingFixture(t)

	ranked, err := u.RankJobsForUser(context.Background(), userID, 10, string(matching.Eligible))
	if err != nil {
		t.Fatalf("RankJobsForUser: %v", err)
	}
	for _, r := range ranked {
		if r.Outcome.Match().EligibilityStatus != matching.Eligible {
			t.Fatalf("filter leaked status %q", r.Outcome.Match().EligibilityStatus)
		}
	}
}

func TestRankJobsForUser_LimitApplies(t *testing.T) {
	u, userID, _, _ := newRankingFixture(t)

	ranked, err := u.RankJobsForUser(context.Background(), userID, 1, "")
	if err != nil {
		t.Fatalf("RankJobsForUser: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("got %d rows, want 1", len(ranked))
	}
}

func TestRankJobsForUser_TieBreakIsUUIDAscending(t *testing.T) {
	userID := uuid.New()

	// Two requirement-free jobs with identical skill text tie exactly; the
	// lower UUID string must come first.
	jobX := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	jobY := uuid.MustParse("00000000-0000-0000-0000-00000000000b")

	jobs := &stubJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobX: {ID: jobX, Title: "A", SkillsText: "go"},
		jobY: {ID: jobY, Title: "B", SkillsText: "go"},
	}}
	reqs := &stubRequirementRepo{byJob: map[uuid.UUID][]matching.Requirement{}}
	profs := &stubProficiencyRepo{byUser: map[uuid.UUID][]matching.Proficiency{}}
	candidates := &stubCandidateRepo{profiles: map[uuid.UUID]repository.Candidate{
		userID: {ID: userID, SkillsText: "go"},
	}}
	jobQueries := &stubJobQueryRepo{openJobs: []uuid.UUID{jobY, jobX}}

	u := NewRankingUsecase(jobs, jobQueries, reqs, profs, candidates, matching.DefaultConfig(), 50, 2)

	ranked, err := u.RankJobsForUser(context.Background(), userID, 10, "")
	if err != nil {
		t.Fatalf("RankJobsForUser: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d rows, want 2", len(ranked))
	}
	if ranked[0].JobID != jobX {
		t.Fatalf("tie-break order wrong: got %s first, want %s", ranked[0].JobID, jobX)
	}
}

func TestRankCandidatesForJob(t *testing.T) {
	userStrong := uuid.New()
	userWeak := uuid.New()
	jobID := uuid.New()
	skillID := uuid.New()

	jobs := &stubJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobID: {ID: jobID, Title: "Backend Engineer", SkillsText: "go"},
	}}
	reqs := &stubRequirementRepo{byJob: map[uuid.UUID][]matching.Requirement{
		jobID: {{SkillID: skillID, SkillName: "Go", RequiredLevel: 6, Weight: 1}},
	}}
	profs := &stubProficiencyRepo{byUser: map[uuid.UUID][]matching.Proficiency{
		userStrong: {{SkillID: skillID, SkillName: "Go", Level: 9, Status: matching.StatusVerified}},
		userWeak:   {{SkillID: skillID, SkillName: "Go", Level: 2, Status: matching.StatusClaimed}},
	}}
	candidates := &stubCandidateRepo{profiles: map[uuid.UUID]repository.Candidate{
		userStrong: {ID: userStrong, FullName: "Strong"},
		userWeak:   {ID: userWeak, FullName: "Weak"},
	}}
	jobQueries := &stubJobQueryRepo{}

	u := NewRankingUsecase(jobs, jobQueries, reqs, profs, candidates, matching.DefaultConfig(), 50, 4)

	ranked, err := u.RankCandidatesForJob(context.Background(), jobID, 10)
	if err != nil {
		t.Fatalf("RankCandidatesForJob: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d rows, want 2", len(ranked))
	}
	if ranked[0].UserID != userStrong {
		t.Fatalf("best candidate = %s, want %s", ranked[0].UserID, userStrong)
	}
	if ranked[0].FullName != "Strong" {
		t.Fatalf("candidate name not populated")
	}
	if ranked[0].Outcome.Match().OverallScore <= ranked[1].Outcome.Match().OverallScore {
		t.Fatalf("candidate order not descending by score")
	}
}

func TestRankCandidatesForJob_UnknownJob(t *testing.T) {
	u, _, _, _ := newRankingFixture(t)

	if _, err := u.RankCandidatesForJob(context.Background(), uuid.New(), 10); err != ErrJobNotFound {
		t.Fatalf("err = %v, want ErrJobNotFound", err)
	}
}
