package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/interview-assistant/pkg/validator"

	_ "github.com/johnquangdev/interview-assistant/docs"
	"github.com/johnquangdev/interview-assistant/internal/adapter/handler"
	"github.com/johnquangdev/interview-assistant/internal/adapter/repository"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/cache"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/realtime"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/storage"
	"github.com/johnquangdev/interview-assistant/internal/usecase/faq"
	"github.com/johnquangdev/interview-assistant/internal/usecase/handoff"
	"github.com/johnquangdev/interview-assistant/internal/usecase/interview"
	"github.com/johnquangdev/interview-assistant/pkg/config"
	"github.com/johnquangdev/interview-assistant/pkg/nlp"
)

// @title           Interview Assistant API
// @version         1.0
// @description     Automated interview sessions with scoring, human handoff and realtime observers
// @BasePath        /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	log.Println("🔧 Initializing dependencies...")

	checks := map[string]handler.HealthCheck{}
	var (
		pending     handoff.PendingLister
		transcripts handler.TranscriptStore
	)
	recorders := handoff.MultiRecorder{handoff.NewLogRecorder(logger)}
	deps := interview.Dependencies{
		Store:     interview.NewStore(),
		Questions: interview.NewFileQuestionLoader(cfg.Interview.QuestionsDir, logger),
		Sentiment: nlp.NewLexiconAnalyzer(),
		Validator: pkgvalidator.New(),
		Config:    cfg.Interview,
		Logger:    logger,
	}

	// Database (optional)
	if cfg.Database.Enabled {
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		// Production deployments should manage schema via cmd/migrate.
		if cfg.Database.AutoMigrate {
			if cfg.Server.Environment == "production" {
				log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE and run cmd/migrate instead.")
			}
			if err := database.AutoMigrate(db); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}

		deps.Sessions = repository.NewSessionRepository(db)
		handoffs := repository.NewHandoffRepository(db)
		recorders = append(recorders, handoffs)
		pending = handoffs

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get database object: %v", err)
		}
		checks["database"] = sqlDB.PingContext
	} else {
		log.Println("⚠️  Database disabled; sessions live in memory only")
	}

	// Summary cache: Redis when enabled, in-memory otherwise
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		deps.Cache = cache.NewSummaryCache(cache.NewRedisStore(redisClient))
		queue := cache.NewHandoffQueue(redisClient, logger)
		recorders = append(recorders, queue)
		if pending == nil {
			pending = queue
		}
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		memStore := cache.NewMemoryStore(time.Minute)
		defer memStore.Close()
		deps.Cache = cache.NewSummaryCache(memStore)
	}

	// Transcript archive (optional)
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		archive, err := storage.NewTranscriptArchive(&cfg.Storage, logger)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		deps.Archive = archive
		transcripts = archive
		checks["storage"] = archive.Health
	}

	// Scoring
	if cfg.NLP.EmbeddingURL != "" {
		log.Printf("🤖 Scoring answers with embeddings from %s", cfg.NLP.EmbeddingURL)
		deps.Scorer = nlp.NewEmbeddingScorer(&cfg.NLP)
	} else {
		log.Println("🤖 Scoring answers with the lexical scorer")
		deps.Scorer = nlp.NewLexicalScorer()
	}
	deps.Recorder = recorders

	// Realtime hub
	registry := realtime.NewRegistry(cfg.Realtime.SendBuffer, logger)
	broadcaster := realtime.NewBroadcaster(registry, logger)
	deps.Broadcaster = broadcaster

	supervisor := interview.NewSupervisor(deps)
	if pending == nil {
		pending = supervisor
	}

	// FAQ
	entries, err := faq.LoadEntries(cfg.Interview.FAQFile)
	if err != nil {
		logger.Warn("faq.entries.load_failed", zap.String("path", cfg.Interview.FAQFile), zap.Error(err))
	}
	var fallback faq.Responder
	if cfg.NLP.ChatURL != "" {
		log.Printf("🤖 Answering unmatched FAQ questions with %s", cfg.NLP.ChatURL)
		fallback = nlp.NewChatResponder(&cfg.NLP)
	}
	assistant := faq.NewAssistant(entries, fallback, logger)

	background, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	go broadcaster.RunHeartbeat(background, cfg.Realtime.HeartbeatInterval)
	if interval := janitorInterval(cfg.Interview.Retention, persistRetention(cfg)); interval > 0 {
		go supervisor.RunJanitor(background, interval)
	}

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, handler.Handlers{
		Interview:   handler.NewInterviewHandler(supervisor, logger),
		Handoffs:    handler.NewHandoffsHandler(pending, logger),
		Transcripts: handler.NewTranscriptsHandler(transcripts, supervisor, cfg.Storage.URLExpiry, logger),
		FAQ:         handler.NewFAQHandler(assistant, logger),
		Realtime:    handler.NewRealtimeHandler(registry, cfg.Realtime, cfg.Server.AllowedOrigins, logger),
	},
		registry,
		deps.Store,
		checks,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	stopBackground()

	// hijacked websocket connections are not tracked by the HTTP server
	for _, conn := range registry.Connections() {
		registry.Deregister(conn.ID())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// persistRetention is zero when there is no database to purge
func persistRetention(cfg *config.Config) time.Duration {
	if !cfg.Database.Enabled {
		return 0
	}
	return cfg.Interview.PersistRetention
}

// janitorInterval sweeps at a quarter of the shortest enabled retention, at
// most once a minute. Zero means nothing to sweep.
func janitorInterval(retentions ...time.Duration) time.Duration {
	var shortest time.Duration
	for _, r := range retentions {
		if r > 0 && (shortest == 0 || r < shortest) {
			shortest = r
		}
	}
	if shortest == 0 {
		return 0
	}
	interval := shortest / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}
