package seeder

import (
	"context"
	"errors"
	"fmt"

	"talent-match/internal/database"
)

// Runner executes seeders in order and stops at the first failure, so
// a broken reference table aborts startup instead of serving partial
// lookup data.
type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("seeder: nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
