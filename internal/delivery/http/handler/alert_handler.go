package handler

import (
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AlertHandler struct {
	uc usecase.AlertMatchingUsecase
}

func NewAlertHandler(uc usecase.AlertMatchingUsecase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

func (h *AlertHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Post("/:job_id/match-alerts", h.MatchAlerts)
}

func (h *AlertHandler) MatchAlerts(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	matches, err := h.uc.MatchJobToAlerts(c.Context(), jobID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAlertMatchListResponse(jobID, matches))
}
