package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/campus-ops-api/api/swagger"
	"github.com/noah-isme/campus-ops-api/internal/handler"
	"github.com/noah-isme/campus-ops-api/internal/middleware"
	"github.com/noah-isme/campus-ops-api/internal/models"
	"github.com/noah-isme/campus-ops-api/internal/repository"
	"github.com/noah-isme/campus-ops-api/internal/service"
	"github.com/noah-isme/campus-ops-api/pkg/cache"
	"github.com/noah-isme/campus-ops-api/pkg/config"
	"github.com/noah-isme/campus-ops-api/pkg/database"
	"github.com/noah-isme/campus-ops-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-ops-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-ops-api/pkg/middleware/requestid"
)

// @title Campus Ops API
// @version 0.1.0
// @description Campus operations backend: leave-request lifecycle, visitor log, clubs, lost & found
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	leaveRepo := repository.NewLeaveRepository(db)
	userRepo := repository.NewUserRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	clubRepo := repository.NewClubRepository(db)
	lostFoundRepo := repository.NewLostFoundRepository(db)

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.Enabled)
	}

	authSvc := service.NewAuthService(cfg.JWT, logr)
	leaveSvc := service.NewLeaveService(service.LeaveServiceParams{
		Store:     leaveRepo,
		Directory: userRepo,
		Metrics:   metricsSvc,
		Logger:    logr,
	})
	reconcileSvc := service.NewReconcileService(service.ReconcileServiceParams{
		ApproverRecords: leaveRepo,
		ClassRecords:    leaveRepo,
		Logger:          logr,
		Config:          service.ReconcileServiceConfig{DemoFallback: cfg.Leave.DemoFallback},
	})
	attendanceSvc := service.NewAttendanceService()
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Queue:    reconcileSvc,
		Roster:   userRepo,
		Presence: attendanceSvc,
		Cache:    cacheSvc,
		Logger:   logr,
		CacheTTL: cfg.Dashboard.CacheTTL,
	})
	exportSvc := service.NewExportService(reconcileSvc, logr)
	visitorSvc := service.NewVisitorService(visitorRepo, validate, logr)
	clubSvc := service.NewClubService(clubRepo, validate, logr)
	lostFoundSvc := service.NewLostFoundService(lostFoundRepo, validate, logr)

	leaveHandler := handler.NewLeaveHandler(handler.LeaveHandlerParams{
		Service:  leaveSvc,
		Queue:    reconcileSvc,
		Source:   leaveRepo,
		LeaveCfg: cfg.Leave,
		Metrics:  metricsSvc,
		Logger:   logr,
	})
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	visitorHandler := handler.NewVisitorHandler(visitorSvc)
	clubHandler := handler.NewClubHandler(clubSvc)
	lostFoundHandler := handler.NewLostFoundHandler(lostFoundSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

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
	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	leaves := authed.Group("/leaves")
	{
		leaves.POST("", leaveHandler.Submit)
		leaves.GET("/my", leaveHandler.MyRequests)
		leaves.GET("/my/stream", leaveHandler.Stream)
		leaves.POST("/:id/reapply", leaveHandler.Reapply)
		leaves.POST("/:id/decision",
			middleware.RequireRoles(models.RoleTeacher, models.RoleHOD),
			leaveHandler.Decide)
		leaves.GET("/queue",
			middleware.RequireRoles(models.RoleTeacher, models.RoleHOD),
			leaveHandler.Queue)
	}

	if cfg.Dashboard.Enabled {
		authed.GET("/dashboard/leaves",
			middleware.RequireRoles(models.RoleTeacher, models.RoleHOD),
			dashboardHandler.Approver)
	}

	if cfg.Export.Enabled {
		authed.GET("/export/leaves",
			middleware.RequireRoles(models.RoleTeacher, models.RoleHOD, models.RoleAdmin),
			exportHandler.Queue)
	}

	if cfg.Visitors.Enabled {
		visitors := authed.Group("/visitors")
		visitors.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleNonTeaching, models.RoleHOD))
		{
			visitors.GET("", visitorHandler.List)
			visitors.POST("", visitorHandler.CheckIn)
			visitors.POST("/:id/checkout", visitorHandler.CheckOut)
		}
	}

	clubs := authed.Group("/clubs")
	{
		clubs.GET("", clubHandler.List)
		clubs.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleHOD), clubHandler.Create)
		clubs.POST("/:id/join", clubHandler.Join)
		clubs.GET("/:id/members", clubHandler.Members)
	}

	lostFound := authed.Group("/lost-found")
	{
		lostFound.GET("", lostFoundHandler.List)
		lostFound.POST("", lostFoundHandler.Report)
		lostFound.POST("/:id/claim", lostFoundHandler.Claim)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
