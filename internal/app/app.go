package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"english_edu_backend/internal/config"
	"english_edu_backend/internal/controller"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/service"
	"english_edu_backend/pkg/database"
	"english_edu_backend/pkg/logger"
	"english_edu_backend/pkg/monitoring"
	"english_edu_backend/pkg/security"
	"english_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	// cancels the sweeper and deadline checker goroutines on shutdown
	stopBackground context.CancelFunc
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	code        *repository.ActivationCodeRepository
	examResult  *repository.ExamResultRepository
	forum       *repository.ForumRepository
	certificate *repository.CertificateRepository
	setting     *repository.SettingRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	ai          *service.AIService
	notifier    *service.NotificationService
	course      *service.CourseService
	progress    *service.ProgressService
	user        *service.UserService
	entitlement *service.EntitlementService
	exam        *service.ExamService
	forum       *service.ForumService
	settings    *service.SettingsService
	sweeper     *service.SweeperService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	course     *controller.CourseController
	exam       *controller.ExamController
	activation *controller.ActivationController
	forum      *controller.ForumController
	settings   *controller.SettingsController
	chat       *controller.ChatController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		code:        repository.NewActivationCodeRepository(db),
		examResult:  repository.NewExamResultRepository(db),
		forum:       repository.NewForumRepository(db),
		certificate: repository.NewCertificateRepository(db),
		setting:     repository.NewSettingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(cfg.AI)
	s.notifier = service.NewNotificationService(rdb, repos.course)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.course = service.NewCourseService(repos.course, repos.user, rdb, s.storage, s.ai, s.notifier)
	s.progress = service.NewProgressService(repos.user, repos.course)
	s.user = service.NewUserService(repos.user, repos.certificate, s.ai)
	s.entitlement = service.NewEntitlementService(repos.code, repos.user, repos.course, db)
	s.exam = service.NewExamService(service.NewExamSessionManager(), repos.examResult, repos.course, repos.user)
	s.settings = service.NewSettingsService(repos.setting)
	s.forum = service.NewForumService(repos.forum, repos.user, s.settings, s.storage)
	s.sweeper = service.NewSweeperService(repos.course, rdb, s.notifier)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		user:       controller.NewUserController(s.user, s.progress),
		course:     controller.NewCourseController(s.course),
		exam:       controller.NewExamController(s.exam),
		activation: controller.NewActivationController(s.entitlement),
		forum:      controller.NewForumController(s.forum),
		settings:   controller.NewSettingsController(s.settings),
		chat:       controller.NewChatController(s.ai),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks launches the expired-course sweeper and the
// assignment deadline checker. Both stop when the app shuts down.
func (a *App) startBackgroundTasks(s *services) {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopBackground = cancel

	go s.sweeper.Run(ctx, a.Config.Sweep.CourseInterval())
	go s.notifier.RunDeadlineChecker(ctx, a.Config.Sweep.DeadlineInterval())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("english-edu-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

// OnConfigReload applies hot-reloadable sections of a freshly parsed config.
// Only the AI collaborator settings take effect without a restart.
func (a *App) OnConfigReload(cfg *config.Config) {
	if a.services != nil && a.services.ai != nil {
		a.services.ai.Reconfigure(cfg.AI)
	}
	logger.Log.Info("configuration reloaded")
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

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.stopBackground != nil {
		a.stopBackground()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
