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

	_ "github.com/liu-tentor/exam-archive-api/api/swagger"
	"github.com/liu-tentor/exam-archive-api/internal/catalog"
	"github.com/liu-tentor/exam-archive-api/internal/examapi"
	"github.com/liu-tentor/exam-archive-api/internal/handler"
	"github.com/liu-tentor/exam-archive-api/internal/middleware"
	"github.com/liu-tentor/exam-archive-api/internal/repository"
	"github.com/liu-tentor/exam-archive-api/internal/service"
	"github.com/liu-tentor/exam-archive-api/pkg/cache"
	"github.com/liu-tentor/exam-archive-api/pkg/config"
	"github.com/liu-tentor/exam-archive-api/pkg/database"
	"github.com/liu-tentor/exam-archive-api/pkg/export"
	"github.com/liu-tentor/exam-archive-api/pkg/jobs"
	"github.com/liu-tentor/exam-archive-api/pkg/logger"
	corsmiddleware "github.com/liu-tentor/exam-archive-api/pkg/middleware/cors"
	reqidmiddleware "github.com/liu-tentor/exam-archive-api/pkg/middleware/requestid"
	"github.com/liu-tentor/exam-archive-api/pkg/storage"
)

// @title LiU Tentor Exam Archive API
// @version 1.0.0
// @description Course search, exam archive proxy and community upload review
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
	sugar := logr.Sugar()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		sugar.Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	uploadStorage, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		sugar.Fatalw("failed to init upload storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Review.SignedURLSecret, cfg.Review.SignedURLTTL)

	validate := validator.New()

	// Repositories.
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	historyRepo := repository.NewHistoryRepository(redisClient)
	prefsRepo := repository.NewPrefsRepository(redisClient)
	uploadRepo := repository.NewUploadRepository(db)

	// Services.
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.ExamTTL, logr, cfg.Cache.Enabled)

	examClient := examapi.NewClient(cfg.ExamAPI.BaseURL, &http.Client{Timeout: cfg.ExamAPI.Timeout}, logr)
	examSvc := service.NewExamService(examClient, cacheSvc, metricsSvc, logr, cfg.Cache.ExamTTL)

	catalogLoader := catalog.NewLoader(cfg.Catalog, logr)
	historySvc := service.NewHistoryService(historyRepo, cfg.History.SchemaVersion, logr)
	searchSvc := service.NewSearchService(catalogLoader, historySvc, logr, cfg.Search.MaxSubstringResults, cfg.Search.MaxClosestResults)
	prefsSvc := service.NewPrefsService(prefsRepo, logr)
	viewerSvc := service.NewViewerService(cfg.Viewer.SessionTTL)
	statsSvc := service.NewStatsService(examSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr, cfg.Stats.ExportEnabled)

	uploadSvc := service.NewUploadService(uploadRepo, uploadStorage, logr, service.UploadServiceConfig{
		PublicBaseURL: cfg.Uploads.PublicBaseURL,
		MaxFileSize:   cfg.Uploads.MaxFileSizeBytes,
	})
	reviewSvc := service.NewReviewService(uploadRepo, uploadStorage, signer, logr, cfg.APIPrefix)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		AdminEmail:        cfg.Review.AdminEmail,
		AdminPasswordHash: cfg.Review.AdminPasswordHash,
		TokenSecret:       cfg.JWT.Secret,
		TokenExpiry:       cfg.JWT.Expiration,
	})

	// Handlers.
	searchHandler := handler.NewSearchHandler(searchSvc)
	examHandler := handler.NewExamHandler(examSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)
	historyHandler := handler.NewHistoryHandler(historySvc)
	prefsHandler := handler.NewPrefsHandler(prefsSvc)
	viewerHandler := handler.NewViewerHandler(viewerSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background maintenance.
	maintenance := jobs.NewQueue("maintenance", func(ctx context.Context, job jobs.Job) error {
		switch job.Type {
		case "catalog.refresh":
			return catalogLoader.Refresh(ctx)
		case "uploads.purge":
			cutoff := time.Now().Add(-cfg.Uploads.CleanupMaxAge)
			purged, err := reviewSvc.PurgeReviewed(ctx, cutoff)
			if err != nil {
				return err
			}
			if purged > 0 {
				sugar.Infow("purged reviewed uploads", "count", purged)
			}
			return nil
		default:
			return fmt.Errorf("unknown job type %q", job.Type)
		}
	}, jobs.Config{Workers: 1, Logger: logr})
	maintenance.Start(ctx)
	defer maintenance.Stop()

	go schedule(ctx, maintenance, "catalog.refresh", cfg.Catalog.RefreshInterval)
	go schedule(ctx, maintenance, "uploads.purge", cfg.Uploads.CleanupInterval)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.ClientID())
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": err.Error()})
			return
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/courses/suggest", searchHandler.Suggest)
		api.GET("/courses/closest", searchHandler.Closest)
		api.POST("/search/select", searchHandler.Select)

		api.GET("/courses/:courseCode/exams", examHandler.CourseExams)
		api.GET("/exams/:examId", examHandler.ExamDetail)

		api.GET("/courses/:courseCode/stats", statsHandler.CourseStats)
		api.GET("/courses/:courseCode/stats/export", statsHandler.Export)

		api.GET("/recent-activity", historyHandler.List)
		api.POST("/recent-activity", historyHandler.Add)
		api.DELETE("/recent-activity", historyHandler.Clear)

		api.GET("/preferences", prefsHandler.Get)
		api.PUT("/preferences", prefsHandler.Update)

		api.POST("/viewer/sessions", viewerHandler.CreateSession)
		api.GET("/viewer/sessions/:id", viewerHandler.GetSession)
		api.PATCH("/viewer/sessions/:id/:slot", viewerHandler.UpdateSlot)

		api.POST("/uploads", uploadHandler.Upload)

		api.POST("/auth/login", authHandler.Login)

		// Token-authed download sits outside the JWT group so a
		// reviewer can open the signed link directly in a browser.
		api.GET("/review/uploads/:id/download", reviewHandler.Download)

		review := api.Group("/review", middleware.JWT(authSvc))
		{
			review.GET("/uploads", reviewHandler.List)
			review.POST("/uploads/:id/approve", reviewHandler.Approve)
			review.POST("/uploads/:id/reject", reviewHandler.Reject)
			review.GET("/uploads/:id/download-url", reviewHandler.DownloadURL)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}

// schedule enqueues a maintenance job at a fixed interval until ctx ends.
func schedule(ctx context.Context, q *jobs.Queue, jobType string, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = q.Enqueue(jobs.Job{Type: jobType})
		}
	}
}
