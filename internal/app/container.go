package app

import (
	"context"
	"log"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/database/seeder"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	v1 "talent-match/internal/delivery/http/routes/v1"
	"talent-match/internal/domain/scoring"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/infrastructure/embedding"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Health     *handler.HealthHandler
	WSHandler  *ws.Handler
	V1Handlers v1.Handlers
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Matching.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}
	seed := seeder.Runner{Seeders: seeder.Defaults()}
	if err := seed.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	embedder, err := embedding.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbedModel, cfg.Gemini.EmbedTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	var provider scoring.Provider
	if embedder != nil {
		provider = embedder
	} else if logger != nil {
		logger.Printf("[App] Embedding provider not configured, semantic scoring disabled")
	}

	scoreRepo := repository.NewPostgresMatchScoreRepository(db)
	jobRepo := repository.NewPostgresJobFactsRepository(db)
	candidateRepo := repository.NewPostgresCandidateFactsRepository(db)
	alertRepo := repository.NewPostgresJobAlertRepository(db)

	calcUC := usecase.NewMatchCalculationUsecase(
		jobRepo, candidateRepo, scoreRepo,
		provider, redisCache, logger, cfg.Matching.BatchConcurrency,
	)
	queryUC := usecase.NewMatchQueryUsecase(scoreRepo, redisCache, logger)

	sink := NewWSAlertSink(ws.NewNotifier(hub), logger)
	alertUC := usecase.NewAlertMatchingUsecase(jobRepo, alertRepo, scoreRepo, sink, logger)

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	authMw := middleware.NewAuthMiddleware(jwtSvc, "matching")

	return &Container{
		Config:    cfg,
		DB:        db,
		Cache:     redisCache,
		Hub:       hub,
		Health:    handler.NewHealthHandler(db, redisCache),
		WSHandler: ws.NewHandler(hub, logger),
		V1Handlers: v1.Handlers{
			Auth:    authMw,
			Matches: handler.NewMatchHandler(calcUC, queryUC),
			Alerts:  handler.NewAlertHandler(alertUC),
		},
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
