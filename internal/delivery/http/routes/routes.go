package routes

import (
	"talent-match/internal/delivery/http/handler"
	v1 "talent-match/internal/delivery/http/routes/v1"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, v1Handlers v1.Handlers) *Registry {
	return &Registry{health: health, ws: wsHandler, v1: v1Handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	if r.ws != nil {
		app.Get("/ws/matches", r.ws.HandleMatchesWS)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1)
}
