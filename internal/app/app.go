package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studylog_backend/internal/config"
	"studylog_backend/internal/controller"
	"studylog_backend/internal/repository"
	"studylog_backend/internal/service"
	"studylog_backend/pkg/configwatcher"
	"studylog_backend/pkg/database"
	"studylog_backend/pkg/logger"
	"studylog_backend/pkg/monitoring"
	"studylog_backend/pkg/security"
	"studylog_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user         *repository.UserRepository
	record       *repository.StudyRecordRepository
	goal         *repository.GoalRepository
	comment      *repository.CommentRepository
	material     *repository.MaterialRepository
	profile      *repository.ProfileRepository
	targetSchool *repository.TargetSchoolRepository
	follow       *repository.FollowRepository
	achievement  *repository.AchievementRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	enrichment  *service.EnrichmentService
	feed        *service.FeedService
	stats       *service.StatsService
	record      *service.RecordService
	goal        *service.GoalService
	material    *service.MaterialService
	profile     *service.ProfileService
	follow      *service.FollowService
	achievement *service.AchievementService
	ai          *service.AIService
}

type controllers struct {
	auth        *controller.AuthController
	feed        *controller.FeedController
	record      *controller.RecordController
	goal        *controller.GoalController
	material    *controller.MaterialController
	profile     *controller.ProfileController
	follow      *controller.FollowController
	achievement *controller.AchievementController
	report      *controller.ReportController
	chat        *controller.ChatController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		record:       repository.NewStudyRecordRepository(db),
		goal:         repository.NewGoalRepository(db),
		comment:      repository.NewCommentRepository(db),
		material:     repository.NewMaterialRepository(db),
		profile:      repository.NewProfileRepository(db),
		targetSchool: repository.NewTargetSchoolRepository(db),
		follow:       repository.NewFollowRepository(db, rdb),
		achievement:  repository.NewAchievementRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.enrichment = service.NewEnrichmentService(repos.material, repos.profile)
	s.feed = service.NewFeedService(repos.record, repos.goal, repos.follow, s.enrichment, cfg.Feed)
	s.stats = service.NewStatsService(repos.record)
	s.record = service.NewRecordService(repos.record, repos.comment, s.enrichment)
	s.goal = service.NewGoalService(repos.goal)
	s.material = service.NewMaterialService(repos.material, s.storage)
	s.profile = service.NewProfileService(repos.profile, repos.targetSchool, repos.follow, repos.record, s.storage)
	s.follow = service.NewFollowService(repos.follow, repos.profile, repos.user)
	s.achievement = service.NewAchievementService(repos.achievement, repos.profile)
	s.ai = service.NewAIService(cfg.AI, repos.record)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		feed:        controller.NewFeedController(s.feed),
		record:      controller.NewRecordController(s.record),
		goal:        controller.NewGoalController(s.goal),
		material:    controller.NewMaterialController(s.material),
		profile:     controller.NewProfileController(s.profile),
		follow:      controller.NewFollowController(s.follow),
		achievement: controller.NewAchievementController(s.achievement),
		report:      controller.NewReportController(s.stats),
		chat:        controller.NewChatController(s.ai),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// the follow cache degrades to straight DB reads without redis
		logger.Log.Warn("Redis unavailable, follow cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("studylog", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		services.feed.UpdateLimits(newCfg.Feed)
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
