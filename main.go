package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "vmxio.com/topic-quiz/docs"
)

// @title           Topic Quiz API
// @version         1.0
// @description     Timed multiple-choice exams over per-topic question sets.
// @host            localhost:8080
// @BasePath        /api/v1

func main() {
	cfg, err := LoadConfig(".", "configs")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	gin.SetMode(cfg.Server.Mode)

	// 1) DB
	db, err := OpenDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	if err := AutoMigrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// 2) Seed (if empty)
	if isEmpty, _ := IsQuestionTableEmpty(db); isEmpty {
		if _, err := os.Stat(cfg.Database.SeedDir); err == nil {
			n, err := SeedFromDir(db, cfg.Database.SeedDir)
			if err != nil {
				logger.Fatal("seed", zap.Error(err))
			}
			logger.Info("seeded question bank", zap.String("dir", cfg.Database.SeedDir), zap.Int("questions", n))
		} else {
			logger.Info("no seed directory; running with empty question bank", zap.String("dir", cfg.Database.SeedDir))
		}
	}

	// 3) Quiz services
	store, err := NewQuestionStore(cfg.Store, db)
	if err != nil {
		logger.Fatal("question store", zap.Error(err))
	}
	rnd, kind := NewRandSource(cfg.Exam.Random)
	if kind != cfg.Exam.Random {
		logger.Warn("random source unavailable, falling back", zap.String("wanted", cfg.Exam.Random), zap.String("using", kind))
	}
	hub := NewHub(logger)
	manager := NewSessionManager(store, NewPreparer(rnd), hub, cfg, logger)
	catalog := NewTopicCatalog(cfg.Topics)

	var shutdownTracer func(context.Context) error
	if cfg.Tracing.Enabled {
		tp, err := InitTracer(cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Warn("tracing disabled", zap.Error(err))
		} else {
			shutdownTracer = tp.Shutdown
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 4) Server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: NewRouter(ctx, cfg, manager, store, catalog, hub, logger),
	}
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Type),
			zap.String("random", kind),
			zap.Bool("secureCookies", cfg.Server.SecureCookies),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	stop()
	manager.Shutdown()
	if shutdownTracer != nil {
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}
}

// originAllowed accepts the configured origins and any http://localhost:PORT
// during development.
func originAllowed(allowed []string) func(string) bool {
	return func(origin string) bool {
		if slices.Contains(allowed, origin) {
			return true
		}
		return strings.HasPrefix(origin, "http://localhost:")
	}
}

func NewRouter(ctx context.Context, cfg *Config, m *SessionManager, store QuestionStore, catalog *TopicCatalog, hub *Hub, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	allowOrigin := originAllowed(cfg.Server.AllowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  allowOrigin,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", clientIDHeader},
		ExposeHeaders:    []string{clientIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(SecureHeaders())
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", PrometheusHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(
		TracingMiddleware(),
		RateLimiter(ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute),
		EnsureClient(cfg.Server.SecureCookies),
	)
	{
		// Topics
		api.GET("/topics", ListTopics(catalog, store, logger))
		api.GET("/topics/:slug", GetTopic(catalog))
		api.POST("/topics/:slug/sessions", StartSession(m, catalog, cfg.Exam.DefaultCount))

		// Exam session
		api.GET("/sessions/:id", GetSession(m))
		api.DELETE("/sessions/:id", DeleteSession(m))
		api.POST("/sessions/:id/answers", AnswerQuestion(m))
		api.POST("/sessions/:id/submit", RequestSubmit(m))
		api.POST("/sessions/:id/submit/confirm", ConfirmSubmit(m))
		api.POST("/sessions/:id/submit/cancel", CancelSubmit(m))
		api.POST("/sessions/:id/restart", RestartSession(m))
		api.GET("/sessions/:id/result", GetResult(m, catalog, cfg.Exam.PassThreshold))
		api.GET("/sessions/:id/ws", SessionStream(m, hub, allowOrigin, logger))
	}
	return r
}
