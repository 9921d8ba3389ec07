package app

import (
	"fmt"
	"log"
	"os"
	"strings"

	"talent-match/internal/config"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	"talent-match/internal/domain/scoring"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap wires the full application. Weight profiles are validated
// before anything touches the network; a bad profile must never score a
// single pair.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	if err := scoring.ValidateProfiles(); err != nil {
		return nil, nil, fmt.Errorf("weight profiles: %w", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{})
	registerGlobalMiddleware(f, logger)

	registry := routes.NewRegistry(container.Health, container.WSHandler, container.V1Handlers)
	registry.Register(f)

	cleanup := func() error {
		return container.Close()
	}
	return &App{Fiber: f, Container: container}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessLog.Middleware())

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
