package handler

import (
	"errors"
	"strconv"
	"strings"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	calc  usecase.MatchCalculationUsecase
	query usecase.MatchQueryUsecase
}

func NewMatchHandler(calc usecase.MatchCalculationUsecase, query usecase.MatchQueryUsecase) *MatchHandler {
	return &MatchHandler{calc: calc, query: query}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches")
	grp.Post("/calculate", h.Calculate)
	grp.Post("/batch", h.BatchCalculate)
	grp.Post("/refresh", h.Refresh)
	grp.Post("/invalidate", h.Invalidate)
	grp.Get("/top", h.TopMatches)
	grp.Get("/insights", h.Insights)
	grp.Get("/:job_id/:candidate_id", h.GetMatch)
}

func (h *MatchHandler) Calculate(c fiber.Ctx) error {
	var req dto.CalculateMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.calc.CalculateSingle(c.Context(), req.JobID, req.CandidateID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchScoreResponse(res))
}

func (h *MatchHandler) BatchCalculate(c fiber.Ctx) error {
	var req dto.BatchMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.calc.BatchCalculate(c.Context(), req.JobID, req.CandidateIDs)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := dto.BatchMatchResponse{
		Scores:              dto.NewMatchScoreResponses(res.Scores),
		SkippedCandidateIDs: emptyIfNil(res.SkippedCandidateIDs),
		FailedCandidateIDs:  emptyIfNil(res.FailedCandidateIDs),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.calc.Refresh(c.Context(), usecase.RefreshSelector{
		JobID:       req.JobID,
		CandidateID: req.CandidateID,
	})
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := dto.RefreshMatchResponse{Refreshed: res.Refreshed, Invalidated: res.Invalidated}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) Invalidate(c fiber.Ctx) error {
	var req dto.InvalidateMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	affected, err := h.calc.Invalidate(c.Context(), usecase.InvalidateScope{
		JobID:       req.JobID,
		CandidateID: req.CandidateID,
		SkillID:     req.SkillID,
	})
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.InvalidateMatchResponse{Invalidated: affected})
}

func (h *MatchHandler) TopMatches(c fiber.Ctx) error {
	params := usecase.TopMatchesParams{}

	var err error
	if params.JobID, err = optionalIDQuery(c, "job_id"); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if params.CandidateID, err = optionalIDQuery(c, "candidate_id"); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if raw := strings.TrimSpace(c.Query("min_score")); raw != "" {
		minScore, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		params.MinScore = &minScore
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		params.Limit, err = strconv.Atoi(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	list, err := h.query.TopMatches(c.Context(), params)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchScoreResponses(list))
}

func (h *MatchHandler) Insights(c fiber.Ctx) error {
	params := usecase.InsightsParams{}

	var err error
	if params.JobID, err = optionalIDQuery(c, "job_id"); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if params.CompanyID, err = optionalIDQuery(c, "company_id"); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	insights, err := h.query.Insights(c.Context(), params)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchInsightsResponse(insights, params))
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	candidateID, err := parseIDParam(c, "candidate_id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.query.GetMatch(c.Context(), jobID, candidateID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchScoreResponse(m))
}

func parseIDParam(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

func optionalIDQuery(c fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func emptyIfNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match score not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
