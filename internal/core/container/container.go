package container

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/auditlog"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/core/config"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/core/logger"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/integrations/googlesheets"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/integrations/jira"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/assets"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/borrowing"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/category"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/disposal"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/ledger"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/maintenance"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/reports"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/middleware"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/rate_limiter"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/staff"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/users"
	auditLogger "github.com/PrinceRuselBStaMaria/Rezo/pkg/auditlog"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/security"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Repository *repository.Repository
	Redis      *redis.Client
	AuditLog   *auditLogger.Auditlog
	JWT        *security.JWTManager

	UserRepository *users.UserRepository
	SeenThrottle   middleware.SeenThrottle
	HealthChecker  *middleware.HealthChecker

	Ledger          *ledger.Service
	CategoryService *category.CategoryService
	AssetService    *assets.AssetService
	AssetRepository *assets.AssetsRepository
	StaffService    *staff.StaffService

	LoginHandler       *security.LoginHandler
	UserHandler        *users.UsersHandler
	CategoryHandler    *category.CategoryHandler
	AssetHandler       *assets.AssetHandler
	BorrowingHandler   *borrowing.BorrowingHandler
	DisposalHandler    *disposal.DisposalHandler
	MaintenanceHandler *maintenance.MaintenanceHandler
	ReportsHandler     *reports.ReportsHandler
	StaffHandler       *staff.StaffHandler
	AuditLogHandler    *auditlog.AuditLogHandler

	closers []func() error
}

// NewAppContainer builds every service and handler on top of db. redisClient
// may be nil, in which case the login limiter and the last-seen throttle
// keep their state in memory.
func NewAppContainer(ctx context.Context, cfg *config.Config, db *sql.DB, redisClient *redis.Client, log *zap.Logger) (*Container, error) {
	repo := repository.NewRepository(db)

	auditLogRepo := auditlog.NewRepository(repo)
	auditLog := auditLogger.NewAuditLog(auditLogRepo, logger.Named(log, "auditlog"))

	c := &Container{
		Config:     cfg,
		Logger:     log,
		Repository: repo,
		Redis:      redisClient,
		AuditLog:   auditLog,
		JWT:        security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	}

	var limiter rate_limiter.Limiter
	if redisClient != nil {
		limiter = rate_limiter.NewRedisLimiter(redisClient, "login", cfg.Auth.LoginAttempts, cfg.Auth.LoginWindow)
		c.SeenThrottle = middleware.NewRedisSeenThrottle(redisClient, cfg.Auth.LastSeenInterval)
	} else {
		memoryLimiter := rate_limiter.NewRateLimiter(cfg.Auth.LoginAttempts, cfg.Auth.LoginWindow)
		c.closers = append(c.closers, func() error {
			memoryLimiter.Close()
			return nil
		})
		limiter = memoryLimiter
		c.SeenThrottle = middleware.NewMemorySeenThrottle(cfg.Auth.LastSeenInterval)
	}

	c.UserRepository = users.NewRepository(repo)
	c.HealthChecker = middleware.NewHealthChecker(db, Version)
	c.LoginHandler = security.NewLoginHandler(c.UserRepository, c.JWT, limiter, logger.Named(log, "login"))
	c.UserHandler = users.NewHandler(users.NewUserService(c.UserRepository), auditLog)

	c.Ledger = ledger.NewService(repo, ledger.NewRepository(), logger.Named(log, "ledger"))

	categoryRepo := category.NewRepository(repo)
	c.CategoryService = category.NewCategoryService(categoryRepo)
	c.CategoryHandler = category.NewCategoryHandler(c.CategoryService, auditLog)

	c.AssetRepository = assets.NewRepository(repo)
	c.AssetService = assets.NewAssetService(c.AssetRepository, categoryRepo, c.Ledger)
	c.AssetHandler = assets.NewAssetHandler(c.AssetService, auditLog)

	c.BorrowingHandler = borrowing.NewBorrowingHandler(
		borrowing.NewBorrowingService(c.Ledger, borrowing.NewRepository(repo)),
		auditLog,
	)
	c.DisposalHandler = disposal.NewDisposalHandler(c.Ledger, disposal.NewRepository(repo), auditLog)

	var ticketer maintenance.Ticketer
	if cfg.Jira.Enabled() {
		ticketer = jira.NewClient(cfg.Jira)
		log.Info("jira service desk integration enabled", zap.String("base_url", cfg.Jira.BaseURL))
	}
	c.MaintenanceHandler = maintenance.NewMaintenanceHandler(
		maintenance.NewMaintenanceService(c.Ledger, maintenance.NewRepository(repo), ticketer, logger.Named(log, "maintenance")),
		auditLog,
	)

	var exporter reports.Exporter
	if cfg.Sheets.Enabled() {
		stockExporter, err := googlesheets.NewStockExporter(ctx, cfg.Sheets, logger.Named(log, "sheets"))
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("google sheets exporter: %w", err)
		}
		exporter = stockExporter
		log.Info("google sheets export enabled", zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID))
	}
	c.ReportsHandler = reports.NewReportsHandler(
		reports.NewReportsService(reports.NewRepository(repo), c.AssetRepository, exporter),
		logger.Named(log, "reports"),
	)

	staffRepo := staff.NewRepository(repo)
	provisioner := staff.NewProvisioner(c.UserRepository, staffRepo, cfg.Auth.DefaultStaffPassword, logger.Named(log, "staff"))
	c.StaffService = staff.NewStaffService(staffRepo, provisioner)
	c.StaffHandler = staff.NewStaffHandler(c.StaffService, auditLog)

	c.AuditLogHandler = auditlog.NewHandler(auditLogRepo, logger.Named(log, "auditlog"))

	return c, nil
}

// Close releases background resources owned by the container. The database
// and Redis clients belong to the caller.
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.Logger.Warn("failed to close resource", zap.Error(err))
		}
	}
	c.closers = nil
}
