package usecase

import (
	"context"
	"errors"
	"testing"

	"talent-match/internal/repository"
)

func TestGetMatch_NotFound(t *testing.T) {
	uc := NewMatchQueryUsecase(newMockScoreRepo(), nil, nil)
	if _, err := uc.GetMatch(context.Background(), 1, 2); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	if _, err := uc.GetMatch(context.Background(), 0, 2); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTopMatches_Defaults(t *testing.T) {
	scores := newMockScoreRepo()
	scores.listResult = []repository.MatchScore{{ID: 1, JobID: 1, CandidateID: 2, OverallScore: 90}}
	uc := NewMatchQueryUsecase(scores, nil, nil)

	got, err := uc.TopMatches(context.Background(), TopMatchesParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if scores.lastListFilter.MinScore != 50 {
		t.Fatalf("unset min_score must default to 50, got %v", scores.lastListFilter.MinScore)
	}
}

func TestTopMatches_ZeroMinScoreHonored(t *testing.T) {
	scores := newMockScoreRepo()
	uc := NewMatchQueryUsecase(scores, nil, nil)

	if _, err := uc.TopMatches(context.Background(), TopMatchesParams{MinScore: floatPtr(0)}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if scores.lastListFilter.MinScore != 0 {
		t.Fatalf("explicit min_score=0 must reach the store, got %v", scores.lastListFilter.MinScore)
	}
}

func TestTopMatches_InvalidMinScore(t *testing.T) {
	uc := NewMatchQueryUsecase(newMockScoreRepo(), nil, nil)
	if _, err := uc.TopMatches(context.Background(), TopMatchesParams{MinScore: floatPtr(120)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.TopMatches(context.Background(), TopMatchesParams{MinScore: floatPtr(-1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCacheKeys_Stable(t *testing.T) {
	a := TopMatchesCacheKey(TopMatchesParams{JobID: int64Ptr(1), MinScore: floatPtr(50), Limit: 10})
	b := TopMatchesCacheKey(TopMatchesParams{JobID: int64Ptr(1), MinScore: floatPtr(50), Limit: 10})
	if a != b {
		t.Fatalf("same params must hash to the same key")
	}
	c := TopMatchesCacheKey(TopMatchesParams{JobID: int64Ptr(2), MinScore: floatPtr(50), Limit: 10})
	if a == c {
		t.Fatalf("different params must hash differently")
	}

	ins := InsightsCacheKey(InsightsParams{CompanyID: int64Ptr(3)})
	if ins == a {
		t.Fatalf("insights and top keys must not collide")
	}
}
