package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campushq/fyp-coordination-api/api/swagger"
	"github.com/campushq/fyp-coordination-api/internal/handler"
	"github.com/campushq/fyp-coordination-api/internal/middleware"
	"github.com/campushq/fyp-coordination-api/internal/models"
	"github.com/campushq/fyp-coordination-api/internal/repository"
	"github.com/campushq/fyp-coordination-api/internal/service"
	"github.com/campushq/fyp-coordination-api/pkg/cache"
	"github.com/campushq/fyp-coordination-api/pkg/config"
	"github.com/campushq/fyp-coordination-api/pkg/database"
	"github.com/campushq/fyp-coordination-api/pkg/export"
	"github.com/campushq/fyp-coordination-api/pkg/jobs"
	"github.com/campushq/fyp-coordination-api/pkg/logger"
	corsmiddleware "github.com/campushq/fyp-coordination-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushq/fyp-coordination-api/pkg/middleware/requestid"
)

// @title FYP Coordination API
// @version 1.0.0
// @description Meeting scheduling and evaluation workflows for final-year projects
// @BasePath /api/v1
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logr.Sugar().Fatalw("failed to run migrations", "error", err)
		}
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, directory caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, metricsSvc, logr)

	authSvc := service.NewAuthService(userRepo, studentRepo, validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
	})

	notifySvc := service.NewNotificationService(notificationRepo, studentRepo, teacherRepo, logr, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
	})
	notifySvc.Start(ctx)
	defer notifySvc.Stop()

	meetingSvc := service.NewMeetingService(meetingRepo, proposalRepo, studentRepo, teacherRepo, notifySvc, cacheRepo, cfg.Meetings.Venues, cfg.Directory.CacheTTL, validate, logr)
	evaluationSvc := service.NewEvaluationService(evaluationRepo, proposalRepo, studentRepo, teacherRepo, export.NewPDFExporter(), validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	meetingHandler := handler.NewMeetingHandler(meetingSvc, metricsSvc)
	evaluationHandler := handler.NewEvaluationHandler(evaluationSvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.JWT(authSvc))

	meetings := authed.Group("/meetings")
	{
		meetings.GET("", meetingHandler.List)
		meetings.GET("/venues", meetingHandler.Venues)
		meetings.POST("/schedule", middleware.RequireRoles(models.RoleFYPTeam, models.RoleTeacher), meetingHandler.Schedule)
		meetings.POST("/check-availability", middleware.RequireRoles(models.RoleFYPTeam, models.RoleTeacher), meetingHandler.CheckAvailability)
		meetings.GET("/eligible-groups", middleware.RequireRoles(models.RoleFYPTeam), meetingHandler.EligibleGroups)
		meetings.GET("/supervisor-groups", middleware.RequireRoles(models.RoleTeacher), meetingHandler.SupervisorGroups)
	}

	evaluations := authed.Group("/evaluations")
	{
		evaluations.POST("", middleware.RequireRoles(models.RoleFYPTeam), evaluationHandler.SaveFYPTeam)
		evaluations.GET("", middleware.RequireRoles(models.RoleFYPTeam), evaluationHandler.GroupSummaries)
		evaluations.POST("/supervisor", middleware.RequireRoles(models.RoleTeacher), evaluationHandler.SaveSupervisor)
		evaluations.GET("/combined-marks", middleware.RequireRoles(models.RoleStudent), evaluationHandler.CombinedMarks)
		evaluations.GET("/group/:groupId", middleware.RequireRoles(models.RoleFYPTeam, models.RoleTeacher), evaluationHandler.GroupEvaluations)
		evaluations.GET("/group/:groupId/export", middleware.RequireRoles(models.RoleFYPTeam), evaluationHandler.ExportGroupSheet)
		evaluations.GET("/student/:rollNumber", middleware.RequireRoles(models.RoleFYPTeam, models.RoleTeacher), evaluationHandler.StudentEvaluations)
		evaluations.GET("/supervisor-records/:groupId", middleware.RequireRoles(models.RoleFYPTeam, models.RoleTeacher), evaluationHandler.SupervisorRecords)
		evaluations.GET("/supervisor-groups", middleware.RequireRoles(models.RoleTeacher), evaluationHandler.SupervisorGroupStatuses)
		evaluations.GET("/my-evaluations", middleware.RequireRoles(models.RoleTeacher), evaluationHandler.MyEvaluations)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
