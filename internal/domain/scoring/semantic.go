package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"talent-match/internal/domain/facts"
)

// Provider is the embedding capability. A nil Provider means the semantic
// calculator is disabled and the combiner stays on the basic profile.
// Implementations must be safe for concurrent use.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

const maxEmbedChars = 30000

// SemanticScore embeds the job and candidate free-text blobs and scores
// their cosine similarity. Any failure degrades to a neutral result with
// IsSemantic=false so the caller falls back to the basic profile.
func SemanticScore(ctx context.Context, provider Provider, job facts.JobFacts, cand facts.CandidateFacts) SemanticResult {
	if provider == nil {
		return SemanticResult{
			CriterionResult: CriterionResult{
				Score:  0,
				Status: "disabled",
				Details: map[string]any{
					"message": "embedding provider not configured",
				},
			},
		}
	}

	jobText := buildJobText(job)
	candText := buildCandidateText(cand)
	if jobText == "" || candText == "" {
		return semanticFallback("insufficient_data", "not enough text for semantic analysis")
	}

	jobVec, err := provider.Embed(ctx, jobText)
	if err != nil {
		return semanticFallback("embedding_failed", fmt.Sprintf("job embedding: %v", err))
	}
	candVec, err := provider.Embed(ctx, candText)
	if err != nil {
		return semanticFallback("embedding_failed", fmt.Sprintf("candidate embedding: %v", err))
	}

	similarity, ok := cosineSimilarity(jobVec, candVec)
	if !ok {
		return semanticFallback("zero_vector", "embedding produced a degenerate vector")
	}

	return SemanticResult{
		CriterionResult: CriterionResult{
			Score:  round2(clampScore(similarity * 100)),
			Status: "success",
			Details: map[string]any{
				"raw_similarity":        similarity,
				"job_text_length":       len(jobText),
				"candidate_text_length": len(candText),
			},
		},
		IsSemantic: true,
	}
}

func semanticFallback(status, message string) SemanticResult {
	return SemanticResult{
		CriterionResult: CriterionResult{
			Score:  50,
			Status: status,
			Details: map[string]any{
				"message": message,
			},
		},
	}
}

// cosineSimilarity reports false on length mismatch or a zero-norm vector.
func cosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}

func buildJobText(job facts.JobFacts) string {
	var parts []string
	appendPart := func(label, v string) {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, label+": "+v)
		}
	}
	appendPart("Job Title", job.Title)
	appendPart("Description", job.Description)
	appendPart("Requirements", job.Requirements)
	appendPart("Benefits", job.Benefits)
	if len(job.Skills) > 0 {
		names := make([]string, 0, len(job.Skills))
		for _, s := range job.Skills {
			names = append(names, s.SkillName)
		}
		parts = append(parts, "Required Skills: "+strings.Join(names, ", "))
	}
	appendPart("Level", string(job.Level))
	appendPart("Type", job.JobType)
	return truncate(strings.Join(parts, "\n"), maxEmbedChars)
}

func buildCandidateText(cand facts.CandidateFacts) string {
	var parts []string
	appendPart := func(label, v string) {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, label+": "+v)
		}
	}
	appendPart("Current Position", cand.CurrentPosition)
	appendPart("Bio", cand.Bio)
	if len(cand.Skills) > 0 {
		items := make([]string, 0, len(cand.Skills))
		for _, s := range cand.Skills {
			items = append(items, fmt.Sprintf("%s (%s)", s.SkillName, s.Proficiency))
		}
		parts = append(parts, "Skills: "+strings.Join(items, ", "))
	}
	appendPart("Education", cand.EducationSummary)
	appendPart("Work Experience", cand.ExperienceSummary)
	return truncate(strings.Join(parts, "\n"), maxEmbedChars)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
