package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestDeriveRequirements(t *testing.T) {
	goID, sqlID := uuid.New(), uuid.New()
	catalog := map[string]uuid.UUID{"go": goID, "sql": sqlID}

	job := repository.Job{
		ID:          uuid.New(),
		Title:       "Backend Engineer",
		SkillsText:  "go",
		Description: "We build services in go. Must have go experience. Deep go knowledge expected. " + strings.Repeat("The team ships backend features weekly. ", 3) + "Familiarity with sql is a plus.",
	}

	reqs := deriveRequirements(job, catalog)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}

	byID := map[uuid.UUID]repository.RequirementUpsert{}
	for _, r := range reqs {
		byID[r.SkillID] = r
	}

	goReq := byID[goID]
	if !goReq.IsMandatory {
		t.Fatalf("go mentioned four times should be mandatory: %+v", goReq)
	}
	if goReq.RequiredLevel != 8 {
		t.Fatalf("expected go required level 8, got %v", goReq.RequiredLevel)
	}
	if goReq.Weight != 2 {
		t.Fatalf("mandatory skill should carry weight 2, got %v", goReq.Weight)
	}

	sqlReq := byID[sqlID]
	if sqlReq.IsMandatory {
		t.Fatalf("sql mentioned once far from markers should not be mandatory: %+v", sqlReq)
	}
	if sqlReq.RequiredLevel != 5 {
		t.Fatalf("expected sql required level 5, got %v", sqlReq.RequiredLevel)
	}
	if sqlReq.Criticality != 0.25 {
		t.Fatalf("expected sql criticality floor 0.25, got %v", sqlReq.Criticality)
	}
}

func TestDeriveRequirements_EmptyText(t *testing.T) {
	if reqs := deriveRequirements(repository.Job{}, map[string]uuid.UUID{"go": uuid.New()}); reqs != nil {
		t.Fatalf("expected nil for empty job text, got %v", reqs)
	}
}

func TestCountSkillMention_WordBoundaries(t *testing.T) {
	// "go" inside "django" or "going" must not count; "golang" counts as a
	// known alias of "go".
	if c := countSkillMention("django go going go.", "go"); c != 2 {
		t.Fatalf("expected 2 standalone mentions, got %d", c)
	}
	if c := countSkillMention("golang services, plain go too", "go"); c != 2 {
		t.Fatalf("expected alias mention to count, got %d", c)
	}
}

type mockRequirementWriter struct {
	mu       sync.Mutex
	pending  []uuid.UUID
	upserted map[uuid.UUID][]repository.RequirementUpsert
}

func (m *mockRequirementWriter) ListJobIDsWithoutRequirements(ctx context.Context, limit, offset int) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.pending) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.pending) {
		end = len(m.pending)
	}
	return m.pending[offset:end], nil
}

func (m *mockRequirementWriter) UpsertForJob(ctx context.Context, jobID uuid.UUID, reqs []repository.RequirementUpsert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upserted == nil {
		m.upserted = make(map[uuid.UUID][]repository.RequirementUpsert)
	}
	m.upserted[jobID] = reqs
	return nil
}

type mockSkillRepo struct {
	byName map[string]uuid.UUID
}

func (m *mockSkillRepo) GetAllSkills(ctx context.Context) ([]repository.Skill, error) {
	out := make([]repository.Skill, 0, len(m.byName))
	for name, id := range m.byName {
		out = append(out, repository.Skill{ID: id, Name: name})
	}
	return out, nil
}

func (m *mockSkillRepo) LoadSkillsByName(ctx context.Context) (map[string]uuid.UUID, error) {
	return m.byName, nil
}

func (m *mockSkillRepo) CreateSkill(ctx context.Context, name, skillType string) (repository.Skill, error) {
	return repository.Skill{ID: uuid.New(), Name: name, SkillType: skillType}, nil
}

func TestSkillBackfillPipeline_Run(t *testing.T) {
	goID := uuid.New()
	jobID := uuid.New()

	jobs := &mockJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobID: {ID: jobID, Title: "Go Developer", SkillsText: "go", Description: "go services, must have go, lots of go"},
	}}
	skills := &mockSkillRepo{byName: map[string]uuid.UUID{"go": goID}}
	writer := &mockRequirementWriter{pending: []uuid.UUID{jobID}}

	p := NewSkillBackfillPipeline(jobs, skills, writer, zap.NewNop())
	if err := p.Run(context.Background(), SkillBackfillParams{Workers: 2, Limit: 10}); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := writer.upserted[jobID]
	if len(got) != 1 || got[0].SkillID != goID {
		t.Fatalf("expected one go requirement, got %+v", got)
	}
	if !got[0].IsMandatory {
		t.Fatalf("expected mandatory go requirement, got %+v", got[0])
	}
}
