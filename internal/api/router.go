package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/freelancebill/invoicing-system/docs"
	"github.com/freelancebill/invoicing-system/internal/api/handler"
	"github.com/freelancebill/invoicing-system/internal/api/middleware"
	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
	"github.com/freelancebill/invoicing-system/internal/core/service"
	"github.com/freelancebill/invoicing-system/internal/infrastructure/config"
	mongorepo "github.com/freelancebill/invoicing-system/internal/infrastructure/db/mongo"
	redisrepo "github.com/freelancebill/invoicing-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The dispatcher, mailer and importer are constructed by the caller because
// their lifecycles (worker startup, outbound credentials) belong to main.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	dispatcher ports.NotificationDispatcher,
	mailer ports.Mailer,
	importer ports.TaskImporter,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("invoicing"))

	// --- Repositories ---
	taskRepo := mongorepo.NewTaskRepository(db)
	timeLogRepo := mongorepo.NewTimeLogRepository(db)
	invoiceRepo := mongorepo.NewInvoiceRepository(db)
	profileRepo := mongorepo.NewProfileRepository(db)
	authRepo := mongorepo.NewAuthRepository(db)
	billedIndex := redisrepo.NewBilledIndex(rdb)
	timerStore := redisrepo.NewTimerStore(rdb)

	// --- Services ---
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	taskService := service.NewTaskService(taskRepo, timeLogRepo, log)
	timerService := service.NewTimerService(timerStore, taskService, log)
	invoiceService := service.NewInvoiceService(
		invoiceRepo, taskRepo, timeLogRepo, billedIndex,
		dispatcher, mailer, cfg.AppOrigin, log,
	)
	approvalService := service.NewApprovalService(
		invoiceRepo, taskRepo, profileRepo, invoiceService, log,
	)
	profileService := service.NewProfileService(profileRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	timeLogHandler := handler.NewTimeLogHandler(taskService)
	timerHandler := handler.NewTimerHandler(timerService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	profileHandler := handler.NewProfileHandler(profileService)
	clickupHandler := handler.NewClickUpHandler(importer)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Public approval session (link token is the credential) ---
	e.GET("/approve/:link_id", approvalHandler.Resolve)
	e.POST("/approve/:link_id/decision", approvalHandler.Decide)

	// --- Owner API ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret), middleware.RBAC(domain.RoleOwner))

	v1.GET("/tasks", taskHandler.List)
	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.PUT("/tasks/:id", taskHandler.Update)
	v1.DELETE("/tasks/:id", taskHandler.Delete)

	v1.GET("/time-logs", timeLogHandler.List)
	v1.POST("/time-logs", timeLogHandler.Create)
	v1.PUT("/time-logs/:id", timeLogHandler.Update)
	v1.DELETE("/time-logs/:id", timeLogHandler.Delete)

	v1.GET("/timer", timerHandler.Current)
	v1.POST("/timer/start", timerHandler.Start)
	v1.POST("/timer/pause", timerHandler.Pause)
	v1.POST("/timer/stop", timerHandler.Stop)

	v1.GET("/invoices", invoiceHandler.List)
	v1.POST("/invoices", invoiceHandler.Create)
	v1.POST("/invoices/preview", invoiceHandler.Preview)
	v1.GET("/invoices/:id", invoiceHandler.Get)
	v1.PUT("/invoices/:id", invoiceHandler.Update)
	v1.DELETE("/invoices/:id", invoiceHandler.Delete)
	v1.POST("/invoices/:id/send", invoiceHandler.Send)
	v1.POST("/invoices/:id/send-approval", invoiceHandler.SendForApproval)
	v1.POST("/invoices/:id/payment", invoiceHandler.SetupPayment)
	v1.POST("/invoices/:id/mark-paid", invoiceHandler.MarkPaid)
	v1.POST("/invoices/:id/email", invoiceHandler.Email)

	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Upsert)

	v1.POST("/clickup/oauth/token", clickupHandler.ExchangeToken)
	v1.GET("/clickup/workspaces", clickupHandler.Workspaces)
	v1.GET("/clickup/spaces/:id/lists", clickupHandler.Lists)
	v1.GET("/clickup/lists/:id/tasks", clickupHandler.Tasks)

	return e
}
