package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"
)

// defaultSkills is the starter catalog; the job service grows the table
// from there. Names are the conflict key.
var defaultSkills = []struct {
	name     string
	category string
}{
	{"Go", "language"},
	{"Java", "language"},
	{"Python", "language"},
	{"JavaScript", "language"},
	{"TypeScript", "language"},
	{"PostgreSQL", "database"},
	{"MySQL", "database"},
	{"Redis", "database"},
	{"Docker", "infrastructure"},
	{"Kubernetes", "infrastructure"},
	{"AWS", "cloud"},
	{"GCP", "cloud"},
	{"React", "frontend"},
	{"Vue", "frontend"},
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, s := range defaultSkills {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (name, category) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			s.name,
			s.category,
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
