package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "skill_type", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name      string
		SkillType string
	}{
		{Name: "Go", SkillType: "technical"},
		{Name: "Python", SkillType: "technical"},
		{Name: "JavaScript", SkillType: "technical"},
		{Name: "TypeScript", SkillType: "technical"},
		{Name: "SQL", SkillType: "technical"},
		{Name: "PostgreSQL", SkillType: "technical"},
		{Name: "Redis", SkillType: "technical"},
		{Name: "Docker", SkillType: "technical"},
		{Name: "Kubernetes", SkillType: "technical"},
		{Name: "AWS", SkillType: "technical"},
		{Name: "Communication", SkillType: "soft"},
		{Name: "Leadership", SkillType: "soft"},
		{Name: "Problem Solving", SkillType: "soft"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, skill_type) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.SkillType,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
