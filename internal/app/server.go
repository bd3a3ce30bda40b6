package app

import (
	"context"
	"fmt"
	"log"

	"agencyhub-service/internal/billing"
	"agencyhub-service/internal/config"
	"agencyhub-service/internal/db"
	activityHandler "agencyhub-service/internal/handlers/activity"
	agencyHandler "agencyhub-service/internal/handlers/agency"
	wsHandler "agencyhub-service/internal/handlers/websocket"
	"agencyhub-service/internal/middleware"
	"agencyhub-service/internal/pkg/jwt"
	"agencyhub-service/internal/pkg/ratelimit"
	"agencyhub-service/internal/repository/postgres"
	activityUsecase "agencyhub-service/internal/service/activity"
	agencyUsecase "agencyhub-service/internal/service/agency"
	onboardingUsecase "agencyhub-service/internal/service/onboarding"
	"agencyhub-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB()
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- JWT Verifier -----
	verifier, err := jwt.LoadVerifier(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT verifier: %w", err)
	}

	// ----- Rate Limiter -----
	limiter := ratelimit.NewLimiter(redisClient)

	// ----- Billing client -----
	billingClient := billing.NewClient(
		s.cfg.BillingAPIURL,
		s.cfg.BillingAPIKey,
		s.cfg.BillingTimeout,
		logger,
	)

	// ----- Repositories -----
	agencyRepo := postgres.NewAgencyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	subAccountRepo := postgres.NewSubAccountRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(verifier, logger)
	go hub.Run(context.Background())

	// ----- Services (Usecases) -----
	activityService := activityUsecase.NewService(activityRepo, hub, logger)
	onboardingService := onboardingUsecase.NewService(
		billingClient,
		userRepo,
		agencyRepo,
		activityService,
		logger,
	)
	agencyService := agencyUsecase.NewService(
		agencyRepo,
		subAccountRepo,
		activityService,
		logger,
	)

	// ----- Handlers -----
	agencyHandlerInst := agencyHandler.NewAgencyHandler(onboardingService, agencyService, logger)
	activityHandlerInst := activityHandler.NewActivityHandler(activityService)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AgencyHandler:   agencyHandlerInst,
		ActivityHandler: activityHandlerInst,
		WSHandler:       wsHandlerInst,
		AuthMiddleware:  authMiddleware,
		Limiter:         limiter,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
