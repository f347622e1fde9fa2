package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"madrasa_backend/internal/config"
	"madrasa_backend/internal/controller"
	"madrasa_backend/internal/repository"
	"madrasa_backend/internal/service"
	"madrasa_backend/pkg/clock"
	"madrasa_backend/pkg/configwatcher"
	"madrasa_backend/pkg/database"
	"madrasa_backend/pkg/logger"
	"madrasa_backend/pkg/monitoring"
	"madrasa_backend/pkg/security"
	"madrasa_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	progress    *repository.ProgressRepository
	quiz        *repository.QuizRepository
	certificate *repository.CertificateRepository
	enrollment  *repository.EnrollmentRepository
	review      *repository.ReviewRepository
	studyGroup  *repository.StudyGroupRepository
	live        *repository.LiveRepository
}

type services struct {
	storage     *service.StorageService
	auth        *service.AuthService
	content     *service.ContentService
	curriculum  *service.CurriculumService
	quiz        *service.QuizService
	certificate *service.CertificateService
	playback    *service.PlaybackService
	community   *service.CommunityService
	live        *service.LiveService
}

type controllers struct {
	auth        *controller.AuthController
	course      *controller.CourseController
	learning    *controller.LearningController
	quiz        *controller.QuizController
	certificate *controller.CertificateController
	community   *controller.CommunityController
	live        *controller.LiveController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		progress:    repository.NewProgressRepository(repository.NewRedisProgressKV(rdb), db),
		quiz:        repository.NewQuizRepository(db),
		certificate: repository.NewCertificateRepository(db),
		enrollment:  repository.NewEnrollmentRepository(db),
		review:      repository.NewReviewRepository(db),
		studyGroup:  repository.NewStudyGroupRepository(db),
		live:        repository.NewLiveRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}
	clk := clock.New()

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(repos.course, repos.review, repos.enrollment, s.storage)
	s.curriculum = service.NewCurriculumService(repos.course, repos.progress, repos.enrollment)
	s.certificate = service.NewCertificateService(repos.certificate, repos.course, repos.user, s.storage)
	s.quiz = service.NewQuizService(repos.quiz, repos.course, s.curriculum, s.certificate)
	s.playback = service.NewPlaybackService(repos.course, repos.progress, s.curriculum, clk)
	s.community = service.NewCommunityService(repos.studyGroup, repos.course)
	s.live = service.NewLiveService(repos.live, repos.course, clk)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		course:      controller.NewCourseController(s.content),
		learning:    controller.NewLearningController(s.curriculum, s.playback),
		quiz:        controller.NewQuizController(s.quiz),
		certificate: controller.NewCertificateController(s.certificate),
		community:   controller.NewCommunityController(s.community),
		live:        controller.NewLiveController(s.live),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", a.Config)
		c.Next()
	})

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

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("madrasa-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		updated, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Configuration reloaded")
		for _, callback := range app.configCallbacks {
			callback(updated)
		}
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
