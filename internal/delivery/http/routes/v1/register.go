package v1

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers bundles everything the v1 API surface exposes. All routes sit
// behind service auth; matching is an internal backend concern.
type Handlers struct {
	Auth    *middleware.AuthMiddleware
	Matches *handler.MatchHandler
	Alerts  *handler.AlertHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	grp := r
	if h.Auth != nil {
		grp = r.Group("", h.Auth.Middleware())
	}

	if h.Matches != nil {
		h.Matches.RegisterRoutes(grp)
	}
	if h.Alerts != nil {
		h.Alerts.RegisterRoutes(grp)
	}
}
