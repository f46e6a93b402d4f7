package pipeline

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"talent-match/internal/repository"
	"talent-match/internal/skilltext"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SkillBackfillPipeline structures legacy jobs. Jobs created before the
// weighted engine only carry a free-text skills blob; this pipeline matches
// that text against the skill catalog and writes job_skills rows so the
// weighted path can take over from the legacy matcher.
type SkillBackfillPipeline struct {
	jobs   repository.JobRepository
	skills repository.SkillRepository
	writer repository.RequirementWriteRepository
	log    *zap.Logger

	batch int
}

type SkillBackfillParams struct {
	Workers int
	Limit   int
}

func NewSkillBackfillPipeline(
	jobs repository.JobRepository,
	skills repository.SkillRepository,
	writer repository.RequirementWriteRepository,
	log *zap.Logger,
) *SkillBackfillPipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &SkillBackfillPipeline{jobs: jobs, skills: skills, writer: writer, log: log, batch: 100}
}

func (p *SkillBackfillPipeline) Run(ctx context.Context, params SkillBackfillParams) error {
	if p == nil || p.jobs == nil || p.skills == nil || p.writer == nil {
		return nil
	}
	workers := params.Workers
	if workers <= 0 {
		workers = 5
	}
	limit := params.Limit
	if limit <= 0 {
		limit = p.batch
	}

	skillsByName, err := p.skills.LoadSkillsByName(ctx)
	if err != nil {
		return err
	}

	offset := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		ids, err := p.writer.ListJobIDsWithoutRequirements(ctx, limit, offset)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		pool := NewWorkerPool(workers, workers*2)
		results := pool.Run(ctx)

		drained := make(chan struct{})
		go func() {
			defer close(drained)
			for range results {
			}
		}()

		for _, id := range ids {
			id := id
			accepted := pool.Submit(ctx, func(ctx context.Context) Result {
				start := time.Now()

				job, err := p.jobs.FindByID(ctx, id)
				if err != nil {
					p.log.Warn("backfill job load failed", zap.String("job_id", id.String()), zap.Error(err))
					return Result{Err: err}
				}

				reqs := deriveRequirements(job, skillsByName)
				if err := p.writer.UpsertForJob(ctx, id, reqs); err != nil {
					p.log.Warn("backfill upsert failed",
						zap.String("job_id", id.String()),
						zap.Int("skills", len(reqs)),
						zap.Error(err))
					return Result{Err: err}
				}

				p.log.Info("job requirements backfilled",
					zap.String("job_id", id.String()),
					zap.Int("skills", len(reqs)),
					zap.Duration("duration", time.Since(start)))
				return Result{}
			})
			if !accepted {
				break
			}
		}

		pool.Close()
		<-drained

		offset += len(ids)
	}
}

// deriveRequirements mines the job text for catalog skills. Mention count
// drives the required level, and "must"/"required" style context within 80
// runes makes a skill mandatory.
func deriveRequirements(j repository.Job, skillsByName map[string]uuid.UUID) []repository.RequirementUpsert {
	text := strings.TrimSpace(j.SkillsText + " " + j.Description)
	if strings.TrimSpace(text) == "" {
		text = strings.TrimSpace(j.Title)
	}
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	type hit struct {
		name  string
		id    uuid.UUID
		count int
	}

	hits := make([]hit, 0)
	for name, id := range skillsByName {
		if name == "" || id == uuid.Nil {
			continue
		}
		c := countSkillMention(lower, name)
		if c <= 0 {
			continue
		}
		hits = append(hits, hit{name: name, id: id, count: c})
	}
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].count == hits[j].count {
			return hits[i].name < hits[j].name
		}
		return hits[i].count > hits[j].count
	})

	out := make([]repository.RequirementUpsert, 0, len(hits))
	seen := map[uuid.UUID]struct{}{}
	for _, h := range hits {
		if _, ok := seen[h.id]; ok {
			continue
		}
		seen[h.id] = struct{}{}

		level := levelFromCount(h.count)
		mandatory := isMandatoryByContext(lower, h.name, h.count)

		weight := 1.0
		if mandatory {
			weight = 2.0
		}

		out = append(out, repository.RequirementUpsert{
			SkillID:       h.id,
			RequiredLevel: level,
			Criticality:   criticalityFromCount(h.count),
			Weight:        weight,
			IsMandatory:   mandatory,
		})
	}
	return out
}

// countSkillMention counts word-boundary hits for the skill name and every
// alias it is posted under, so "golang" text still credits the "go" skill.
func countSkillMention(textLower, skillName string) int {
	total := 0
	for _, variant := range skilltext.Variants(skillName) {
		pat := `(^|[^a-z0-9])` + regexp.QuoteMeta(variant) + `([^a-z0-9]|$)`
		re := regexp.MustCompile(pat)
		total += len(re.FindAllStringIndex(textLower, -1))
	}
	return total
}

func levelFromCount(count int) float64 {
	switch {
	case count >= 4:
		return 8
	case count == 3:
		return 7
	case count == 2:
		return 6
	default:
		return 5
	}
}

func criticalityFromCount(count int) float64 {
	c := float64(count) / 4
	if c > 1 {
		c = 1
	}
	if c < 0.25 {
		c = 0.25
	}
	return c
}

func isMandatoryByContext(textLower, skillName string, count int) bool {
	if count >= 4 {
		return true
	}
	idx := -1
	matched := ""
	for _, variant := range skilltext.Variants(skillName) {
		if i := strings.Index(textLower, variant); i >= 0 && (idx < 0 || i < idx) {
			idx, matched = i, variant
		}
	}
	if idx < 0 {
		return false
	}

	start := idx - 80
	if start < 0 {
		start = 0
	}
	end := idx + len(matched) + 80
	if end > len(textLower) {
		end = len(textLower)
	}
	window := textLower[start:end]

	markers := []string{"must", "required", "require", "mandatory", "need to", "needs", "minimum", "min."}
	for _, m := range markers {
		if strings.Contains(window, m) {
			return true
		}
	}
	return false
}
