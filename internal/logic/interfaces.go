package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/betgenius/predictions-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisClient defines the interface for Redis client
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RandSource is the single seedable randomness source used for generation
// and outcome draws. *math/rand/v2.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

// PredictionStore is the hosted relational store as seen by this service
type PredictionStore interface {
	// Insert writes the whole batch in one statement and returns the stored rows
	Insert(ctx context.Context, batch []models.Prediction) ([]models.Prediction, error)
	// SettleExpired flips every pending prediction dated before cutoff to status
	SettleExpired(ctx context.Context, cutoff time.Time, status models.Status, result string) (int64, error)
	Query(ctx context.Context, filter PredictionFilter) ([]models.Prediction, error)
}

type RolloverService interface {
	Run(ctx context.Context) (*models.RolloverResult, error)
}

type DashboardService interface {
	Load(ctx context.Context) (*models.Dashboard, error)
}

type AuthService interface {
	SignUp(ctx context.Context, creds models.Credentials) (*models.Session, error)
	SignIn(ctx context.Context, creds models.Credentials) (*models.Session, error)
	SignOut(ctx context.Context, token string) error
	CurrentSession(ctx context.Context, token string) (*models.Session, error)
}
