package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"talent-match/internal/domain/facts"
	"talent-match/internal/repository"
)

func intPtr(v int) *int           { return &v }
func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }

type mockJobFactsRepo struct {
	jobs map[int64]facts.JobFacts
	err  error
}

func (m mockJobFactsRepo) GetJobFacts(_ context.Context, jobID int64) (facts.JobFacts, error) {
	if m.err != nil {
		return facts.JobFacts{}, m.err
	}
	j, ok := m.jobs[jobID]
	if !ok {
		return facts.JobFacts{}, repository.ErrJobNotFound
	}
	return j, nil
}

type mockCandidateFactsRepo struct {
	candidates map[int64]facts.CandidateFacts
	err        error
}

func (m mockCandidateFactsRepo) GetCandidateFacts(_ context.Context, candidateID int64) (facts.CandidateFacts, error) {
	if m.err != nil {
		return facts.CandidateFacts{}, m.err
	}
	c, ok := m.candidates[candidateID]
	if !ok {
		return facts.CandidateFacts{}, repository.ErrCandidateNotFound
	}
	return c, nil
}

type mockScoreRepo struct {
	mu             sync.Mutex
	stored         map[[2]int64]repository.MatchScore
	pairs          []repository.MatchScorePair
	invalid        [][2]int64
	upsertErr      error
	nextID         int64
	insights       repository.MatchInsights
	listResult     []repository.MatchScore
	lastListFilter repository.MatchScoreListFilter
}

func newMockScoreRepo() *mockScoreRepo {
	return &mockScoreRepo{stored: make(map[[2]int64]repository.MatchScore)}
}

func (m *mockScoreRepo) Upsert(_ context.Context, u repository.MatchScoreUpsert) (repository.MatchScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return repository.MatchScore{}, m.upsertErr
	}
	key := [2]int64{u.JobID, u.CandidateID}
	ms, ok := m.stored[key]
	if !ok {
		m.nextID++
		ms = repository.MatchScore{ID: m.nextID}
	}
	ms.JobID = u.JobID
	ms.CandidateID = u.CandidateID
	ms.OverallScore = u.OverallScore
	ms.SkillScore = u.SkillScore
	ms.ExperienceScore = u.ExperienceScore
	ms.EducationScore = u.EducationScore
	ms.LocationScore = u.LocationScore
	ms.SalaryScore = u.SalaryScore
	ms.SemanticScore = u.SemanticScore
	ms.Details = u.Details
	ms.IsValid = true
	m.stored[key] = ms
	return ms, nil
}

func (m *mockScoreRepo) Get(_ context.Context, jobID, candidateID int64) (repository.MatchScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, ok := m.stored[[2]int64{jobID, candidateID}]
	if !ok {
		return repository.MatchScore{}, repository.ErrMatchScoreNotFound
	}
	return ms, nil
}

func (m *mockScoreRepo) List(_ context.Context, f repository.MatchScoreListFilter) ([]repository.MatchScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastListFilter = f
	return m.listResult, nil
}

func (m *mockScoreRepo) PairsForJob(context.Context, int64) ([]repository.MatchScorePair, error) {
	return m.pairs, nil
}

func (m *mockScoreRepo) PairsForCandidate(context.Context, int64) ([]repository.MatchScorePair, error) {
	return m.pairs, nil
}

func (m *mockScoreRepo) Insights(context.Context, repository.MatchInsightsFilter) (repository.MatchInsights, error) {
	return m.insights, nil
}

func (m *mockScoreRepo) InvalidateByJob(context.Context, int64) (int64, error)       { return 3, nil }
func (m *mockScoreRepo) InvalidateByCandidate(context.Context, int64) (int64, error) { return 2, nil }
func (m *mockScoreRepo) InvalidateBySkill(context.Context, int64) (int64, error)     { return 5, nil }

func (m *mockScoreRepo) MarkInvalid(_ context.Context, jobID, candidateID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalid = append(m.invalid, [2]int64{jobID, candidateID})
	return nil
}

type mockCache struct {
	mu          sync.Mutex
	invalidated int
}

func (m *mockCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (m *mockCache) SetJSON(context.Context, string, any, time.Duration) error {
	return nil
}
func (m *mockCache) InvalidateMatchQueries(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated++
	return nil
}

func testJob() facts.JobFacts {
	return facts.JobFacts{
		ID:                 1,
		Title:              "Backend Developer",
		Level:              facts.LevelJunior,
		ExperienceYearsMin: 2,
		ExperienceYearsMax: intPtr(5),
		ProvinceID:         int64Ptr(7),
		ProvinceCode:       "ho_chi_minh",
		SalaryMin:          floatPtr(10_000_000),
		SalaryMax:          floatPtr(20_000_000),
		Skills: []facts.JobSkill{
			{SkillID: 1, SkillName: "Python", Proficiency: facts.ProficiencyIntermediate, IsRequired: true},
		},
	}
}

func testCandidate(id int64) facts.CandidateFacts {
	return facts.CandidateFacts{
		ID:                id,
		YearsOfExperience: 3,
		HighestEducation:  facts.EducationBachelor,
		ProvinceID:        int64Ptr(7),
		ProvinceCode:      "ho_chi_minh",
		DesiredSalaryMin:  floatPtr(12_000_000),
		DesiredSalaryMax:  floatPtr(18_000_000),
		Skills: []facts.CandidateSkill{
			{SkillID: 1, SkillName: "Python", Proficiency: facts.ProficiencyAdvanced},
		},
	}
}

func newCalcUsecase(scores *mockScoreRepo, cache *mockCache, candidates map[int64]facts.CandidateFacts) *MatchCalculation {
	return NewMatchCalculationUsecase(
		mockJobFactsRepo{jobs: map[int64]facts.JobFacts{1: testJob()}},
		mockCandidateFactsRepo{candidates: candidates},
		scores,
		nil,
		cache,
		nil,
		4,
	)
}

func TestCalculateSingle_Success(t *testing.T) {
	scores := newMockScoreRepo()
	cache := &mockCache{}
	uc := newCalcUsecase(scores, cache, map[int64]facts.CandidateFacts{2: testCandidate(2)})

	ms, err := uc.CalculateSingle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ms.OverallScore != 100 {
		t.Fatalf("expected overall 100, got %v", ms.OverallScore)
	}
	if ms.SemanticScore != nil {
		t.Fatalf("no provider, semantic score must be nil")
	}
	if !ms.IsValid {
		t.Fatalf("fresh score must be valid")
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected one cache invalidation, got %d", cache.invalidated)
	}
}

type countingProvider struct {
	mu    sync.Mutex
	calls int
}

func (p *countingProvider) Embed(context.Context, string) ([]float32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return []float32{1, 0, 0}, nil
}

func newCalcUsecaseWithProvider(scores *mockScoreRepo, provider *countingProvider, candidates map[int64]facts.CandidateFacts) *MatchCalculation {
	return NewMatchCalculationUsecase(
		mockJobFactsRepo{jobs: map[int64]facts.JobFacts{1: testJob()}},
		mockCandidateFactsRepo{candidates: candidates},
		scores,
		provider,
		&mockCache{},
		nil,
		4,
	)
}

func TestCalculateSingle_ConfiguredProviderScoresSemantic(t *testing.T) {
	scores := newMockScoreRepo()
	provider := &countingProvider{}
	uc := newCalcUsecaseWithProvider(scores, provider, map[int64]facts.CandidateFacts{2: testCandidate(2)})

	ms, err := uc.CalculateSingle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if provider.calls != 2 {
		t.Fatalf("provider must be consulted for both texts, got %d calls", provider.calls)
	}
	if ms.SemanticScore == nil {
		t.Fatalf("configured provider must yield a semantic score")
	}
	if *ms.SemanticScore != 100 {
		t.Fatalf("identical embeddings must score 100, got %v", *ms.SemanticScore)
	}
}

func TestRefresh_AddsSemanticOnceProviderConfigured(t *testing.T) {
	scores := newMockScoreRepo()
	scores.pairs = []repository.MatchScorePair{{JobID: 1, CandidateID: 2}}
	// Row computed before any provider existed carries no semantic score.
	scores.stored[[2]int64{1, 2}] = repository.MatchScore{ID: 1, JobID: 1, CandidateID: 2, IsValid: true}

	uc := newCalcUsecaseWithProvider(scores, &countingProvider{}, map[int64]facts.CandidateFacts{2: testCandidate(2)})

	res, err := uc.Refresh(context.Background(), RefreshSelector{JobID: int64Ptr(1)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Refreshed != 1 {
		t.Fatalf("expected 1 refreshed, got %d", res.Refreshed)
	}
	if scores.stored[[2]int64{1, 2}].SemanticScore == nil {
		t.Fatalf("refresh with a configured provider must fill the semantic score")
	}
}

func TestCalculateSingle_Idempotent(t *testing.T) {
	scores := newMockScoreRepo()
	uc := newCalcUsecase(scores, &mockCache{}, map[int64]facts.CandidateFacts{2: testCandidate(2)})

	first, err := uc.CalculateSingle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := uc.CalculateSingle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("recalculation must update the same row, got ids %d and %d", first.ID, second.ID)
	}
	if len(scores.stored) != 1 {
		t.Fatalf("expected one stored row, got %d", len(scores.stored))
	}
}

func TestCalculateSingle_NotFound(t *testing.T) {
	uc := newCalcUsecase(newMockScoreRepo(), &mockCache{}, map[int64]facts.CandidateFacts{})

	if _, err := uc.CalculateSingle(context.Background(), 99, 2); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := uc.CalculateSingle(context.Background(), 1, 2); !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
	if _, err := uc.CalculateSingle(context.Background(), 0, 2); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBatchCalculate_SizeBounds(t *testing.T) {
	uc := newCalcUsecase(newMockScoreRepo(), &mockCache{}, nil)

	if _, err := uc.BatchCalculate(context.Background(), 1, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty batch: expected ErrInvalidInput, got %v", err)
	}

	tooMany := make([]int64, 101)
	for i := range tooMany {
		tooMany[i] = int64(i + 1)
	}
	if _, err := uc.BatchCalculate(context.Background(), 1, tooMany); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("oversized batch: expected ErrInvalidInput, got %v", err)
	}
}

func TestBatchCalculate_DedupeAndSkip(t *testing.T) {
	scores := newMockScoreRepo()
	candidates := map[int64]facts.CandidateFacts{
		2: testCandidate(2),
		3: testCandidate(3),
	}
	uc := newCalcUsecase(scores, &mockCache{}, candidates)

	res, err := uc.BatchCalculate(context.Background(), 1, []int64{2, 3, 2, 404})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(res.Scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(res.Scores))
	}
	// Request order survives the fan-out.
	if res.Scores[0].CandidateID != 2 || res.Scores[1].CandidateID != 3 {
		t.Fatalf("unexpected order: %d, %d", res.Scores[0].CandidateID, res.Scores[1].CandidateID)
	}
	if len(res.SkippedCandidateIDs) != 1 || res.SkippedCandidateIDs[0] != 404 {
		t.Fatalf("expected candidate 404 skipped, got %v", res.SkippedCandidateIDs)
	}
	if len(scores.stored) != 2 {
		t.Fatalf("duplicate id must produce one upsert per pair, stored %d", len(scores.stored))
	}
}

func TestRefresh_SelectorValidation(t *testing.T) {
	uc := newCalcUsecase(newMockScoreRepo(), &mockCache{}, nil)

	if _, err := uc.Refresh(context.Background(), RefreshSelector{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("neither set: expected ErrInvalidInput, got %v", err)
	}
	both := RefreshSelector{JobID: int64Ptr(1), CandidateID: int64Ptr(2)}
	if _, err := uc.Refresh(context.Background(), both); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("both set: expected ErrInvalidInput, got %v", err)
	}
}

func TestRefresh_MarksVanishedEntitiesInvalid(t *testing.T) {
	scores := newMockScoreRepo()
	scores.pairs = []repository.MatchScorePair{
		{JobID: 1, CandidateID: 2},
		{JobID: 1, CandidateID: 404},
	}
	scores.stored[[2]int64{1, 2}] = repository.MatchScore{ID: 1, JobID: 1, CandidateID: 2, IsValid: true}
	scores.stored[[2]int64{1, 404}] = repository.MatchScore{ID: 2, JobID: 1, CandidateID: 404, IsValid: true}

	uc := newCalcUsecase(scores, &mockCache{}, map[int64]facts.CandidateFacts{2: testCandidate(2)})

	res, err := uc.Refresh(context.Background(), RefreshSelector{JobID: int64Ptr(1)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Refreshed != 1 {
		t.Fatalf("expected 1 refreshed, got %d", res.Refreshed)
	}
	if res.Invalidated != 1 {
		t.Fatalf("expected 1 invalidated, got %d", res.Invalidated)
	}
	if len(scores.invalid) != 1 || scores.invalid[0] != [2]int64{1, 404} {
		t.Fatalf("expected pair (1,404) marked invalid, got %v", scores.invalid)
	}
}

func TestInvalidate_ScopeValidation(t *testing.T) {
	uc := newCalcUsecase(newMockScoreRepo(), &mockCache{}, nil)

	if _, err := uc.Invalidate(context.Background(), InvalidateScope{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty scope: expected ErrInvalidInput, got %v", err)
	}
	two := InvalidateScope{JobID: int64Ptr(1), SkillID: int64Ptr(3)}
	if _, err := uc.Invalidate(context.Background(), two); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("two fields: expected ErrInvalidInput, got %v", err)
	}

	n, err := uc.Invalidate(context.Background(), InvalidateScope{SkillID: int64Ptr(3)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 affected, got %d", n)
	}
}
