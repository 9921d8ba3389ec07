// Package seeder populates the reference tables the scoring facts
// depend on: provinces with their region codes, and the skill catalog.
// Seeders are idempotent; startup runs them after migrations.
package seeder

import (
	"context"

	"talent-match/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
