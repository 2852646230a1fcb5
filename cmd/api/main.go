package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerai-backend/config"
	_ "careerai-backend/docs" // Important for Swagger
	v1 "careerai-backend/internal/delivery/http/v1"
	"careerai-backend/internal/repository/postgres"
	"careerai-backend/internal/usecase"
	"careerai-backend/pkg/auth"
	"careerai-backend/pkg/database"
	"careerai-backend/pkg/logger"
	"careerai-backend/pkg/redis"
	"careerai-backend/pkg/security"
	"careerai-backend/pkg/storage"
	"careerai-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           CareerAI Backend API
// @version         1.0
// @description     Job portal API: accounts, job postings, applications, resumes and interview results.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting careerai backend", "port", cfg.Port, "storage", cfg.StorageDriver)

	ctx := context.Background()
	environment := "development"
	if cfg.IsProduction() {
		environment = "production"
	}
	secLog := security.NewSecurityLogger(cfg.SecurityServiceName, environment)
	defer func() { _ = secLog.Sync() }()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	redisClient, err := redis.New(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	if err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
	} else {
		defer redisClient.Close()
	}

	// 5. Setup Resume Storage
	files, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to initialise resume storage", "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)
	analysisRepo := postgres.NewResumeAnalysisRepository(dbPool)

	// 7. Setup Credentials
	hasher, err := auth.NewHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Invalid bcrypt cost: %v", err)
	}
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		Algorithm:  cfg.JWTAlgorithm,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	if err != nil {
		log.Fatalf("Invalid token configuration: %v", err)
	}

	var guard usecase.LoginGuard
	var uploadLimiter *security.UploadLimiter
	if redisClient != nil {
		trackerCfg := security.DefaultLoginTrackerConfig()
		trackerCfg.MaxAttempts = cfg.FailedLoginMaxAttempts
		trackerCfg.BlockDuration = time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute
		guard = security.NewLoginTracker(redisClient, trackerCfg, secLog)
		uploadLimiter = security.NewUploadLimiter(redisClient, 0, 0)
	}

	// 8. Setup UseCases
	validate := validation.New()
	authUC := usecase.NewAuthUsecase(userRepo, hasher, tokens, guard, secLog, validate)
	scorer := usecase.NewSkillScorer()
	userUC := usecase.NewUserUsecase(userRepo, resumeRepo, files, validate, secLog)
	jobUC := usecase.NewJobUsecase(jobRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, resumeRepo, scorer, validate)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, files, cfg.MaxUploadBytes)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, applicationRepo, jobRepo, validate)
	adminUC := usecase.NewAdminUsecase(adminRepo, userRepo, jobRepo, applicationRepo, resumeRepo, files, secLog)
	analysisUC := usecase.NewAnalysisUsecase(analysisRepo, resumeRepo, jobRepo, scorer)

	probes := []usecase.HealthProbe{
		{Name: "database", Critical: true, Ping: dbPool.Ping},
	}
	if redisClient != nil {
		probes = append(probes, usecase.HealthProbe{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) },
		})
	}
	if pinger, ok := files.(interface{ Ping(context.Context) error }); ok {
		probes = append(probes, usecase.HealthProbe{Name: "storage", Ping: pinger.Ping})
	}
	healthUC := usecase.NewHealthUsecase(probes...)

	// 9. Seed Admin
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authUC.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Log.Error("Failed to seed admin account", "error", err)
		}
	}

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		ResumeUC:      resumeUC,
		InterviewUC:   interviewUC,
		AnalysisUC:    analysisUC,
		AdminUC:       adminUC,
		HealthUC:      healthUC,
		Redis:         redisClient,
		SecurityLog:   secLog,
		UploadLimiter: uploadLimiter,
		Config:        cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
