package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/dispora-dev/sportdev-api/api/swagger"
	"github.com/dispora-dev/sportdev-api/internal/handler"
	"github.com/dispora-dev/sportdev-api/internal/middleware"
	"github.com/dispora-dev/sportdev-api/internal/models"
	"github.com/dispora-dev/sportdev-api/internal/repository"
	"github.com/dispora-dev/sportdev-api/internal/service"
	"github.com/dispora-dev/sportdev-api/pkg/cache"
	"github.com/dispora-dev/sportdev-api/pkg/config"
	"github.com/dispora-dev/sportdev-api/pkg/database"
	"github.com/dispora-dev/sportdev-api/pkg/export"
	"github.com/dispora-dev/sportdev-api/pkg/logger"
	corsmiddleware "github.com/dispora-dev/sportdev-api/pkg/middleware/cors"
	reqidmiddleware "github.com/dispora-dev/sportdev-api/pkg/middleware/requestid"
)

// @title SportDev Assessment API
// @version 1.0.0
// @description Special examination scoring and ranking service for athlete development programs
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsService := service.NewMetricsService()

	var cacheService *service.CacheService
	if cfg.Assessment.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Assessment.RankingCacheTTL, logr, true)
		}
	}

	examRepo := repository.NewExamRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	setupRepo := repository.NewSetupRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	resultRepo := repository.NewResultRepository(db)

	examService := service.NewExamService(examRepo, cacheService, nil, logr)
	templateService := service.NewTemplateService(templateRepo, examRepo, setupRepo, nil, logr)
	setupService := service.NewSetupService(setupRepo, examRepo, participantRepo, resultRepo, cacheService, nil, logr)
	resultService := service.NewResultService(examRepo, setupRepo, participantRepo, resultRepo, cacheService, nil, logr)
	rankingService := service.NewRankingService(examRepo, resultRepo, cacheService, metricsService, logr, cfg.Assessment.RollingWindow)
	comparisonService := service.NewComparisonService(examRepo, resultRepo, cacheService, logr)

	examHandler := handler.NewExamHandler(examService)
	templateHandler := handler.NewTemplateHandler(templateService)
	setupHandler := handler.NewSetupHandler(setupService)
	resultHandler := handler.NewResultHandler(resultService)
	rankingHandler := handler.NewRankingHandler(rankingService, export.NewCSVExporter(), export.NewPDFExporter())
	comparisonHandler := handler.NewComparisonHandler(comparisonService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	verifier := middleware.NewHMACVerifier(cfg.JWT.Secret)
	staff := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleExaminer)
	admins := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(verifier))

	assessment := api.Group("/assessment")
	{
		assessment.POST("/exams", admins, examHandler.Create)
		assessment.GET("/exams/:id", examHandler.Get)
		assessment.DELETE("/exams/:id", admins, examHandler.Delete)
		assessment.GET("/sports/:sportId/exams", examHandler.List)

		assessment.GET("/templates/:sportId", templateHandler.Get)
		assessment.PUT("/templates/:sportId", admins, templateHandler.Save)
		assessment.POST("/templates/clone", staff, templateHandler.Clone)

		assessment.GET("/exams/:id/setup", setupHandler.Get)
		assessment.PUT("/exams/:id/setup", staff, setupHandler.Save)
		assessment.GET("/exams/:id/participants/:participantId/form", setupHandler.ParticipantForm)

		assessment.POST("/exams/:id/results", staff, resultHandler.Save)
		assessment.GET("/exams/:id/results", resultHandler.ByExam)

		assessment.GET("/exams/:id/ranking", rankingHandler.Single)
		assessment.GET("/exams/:id/ranking/export", rankingHandler.Export)
		assessment.GET("/sports/:sportId/ranking", rankingHandler.Rolling)
		assessment.GET("/sports/:sportId/ranking/export", rankingHandler.ExportRolling)

		assessment.GET("/comparison", comparisonHandler.Compare)
	}

	api.GET("/system/metrics", admins, metricsHandler.Snapshot)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
