package scoring

import (
	"fmt"
	"math"
)

// Weights is one immutable criterion weight profile. A profile is only
// valid when its weights are non-negative and sum to exactly 1.00.
type Weights struct {
	Skill      float64
	Experience float64
	Education  float64
	Location   float64
	Salary     float64
	Semantic   float64
}

var (
	BasicProfile = Weights{
		Skill:      0.35,
		Experience: 0.25,
		Education:  0.15,
		Location:   0.10,
		Salary:     0.15,
	}

	SemanticProfile = Weights{
		Skill:      0.25,
		Experience: 0.20,
		Education:  0.10,
		Location:   0.10,
		Salary:     0.10,
		Semantic:   0.25,
	}
)

func (w Weights) Sum() float64 {
	return w.Skill + w.Experience + w.Education + w.Location + w.Salary + w.Semantic
}

func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"skill":      w.Skill,
		"experience": w.Experience,
		"education":  w.Education,
		"location":   w.Location,
		"salary":     w.Salary,
		"semantic":   w.Semantic,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative: %v", name, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("weights sum to %v, want 1.00", w.Sum())
	}
	return nil
}

// ValidateProfiles is called at bootstrap; a misconfigured profile is a
// startup failure, never a silent mis-weighting.
func ValidateProfiles() error {
	if err := BasicProfile.Validate(); err != nil {
		return fmt.Errorf("basic profile: %w", err)
	}
	if err := SemanticProfile.Validate(); err != nil {
		return fmt.Errorf("semantic profile: %w", err)
	}
	return nil
}

func (w Weights) toMap(semantic bool) map[string]any {
	m := map[string]any{
		"skill":      w.Skill,
		"experience": w.Experience,
		"education":  w.Education,
		"location":   w.Location,
		"salary":     w.Salary,
	}
	if semantic {
		m["semantic"] = w.Semantic
	}
	return m
}
