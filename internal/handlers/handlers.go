package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/betgenius/predictions-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// Database is the subset of *pgxpool.Pool the handlers use directly
type Database interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Cache is the subset of *redis.Client the handlers use directly
type Cache interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type Config struct {
	Postgres Database
	Redis    Cache
	Logger   *zap.Logger

	// ServiceRoleKey guards operational endpoints
	ServiceRoleKey string
	// SecureCookies marks the session cookie Secure (HTTPS only)
	SecureCookies bool
	MigrationsDir string

	// Services
	Rollover  logic.RolloverService
	Dashboard logic.DashboardService
	Auth      logic.AuthService
}

type Handler struct {
	pg             Database
	redis          Cache
	logger         *zap.SugaredLogger
	validator      *validator.Validate
	serviceKeyHash string
	secureCookies  bool
	migrationsDir  string
	rollover       logic.RolloverService
	dashboard      logic.DashboardService
	auth           logic.AuthService
}

func New(cfg Config) *Handler {
	migrationsDir := cfg.MigrationsDir
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	return &Handler{
		pg:             cfg.Postgres,
		redis:          cfg.Redis,
		logger:         cfg.Logger.Sugar(),
		validator:      validator.New(),
		serviceKeyHash: hashToken(cfg.ServiceRoleKey),
		secureCookies:  cfg.SecureCookies,
		migrationsDir:  migrationsDir,
		rollover:       cfg.Rollover,
		dashboard:      cfg.Dashboard,
		auth:           cfg.Auth,
	}
}
