package handlers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/betgenius/predictions-api/internal/logic"
	"github.com/betgenius/predictions-api/internal/models"
)

// MockPredictionStore implements logic.PredictionStore and counts calls
type MockPredictionStore struct {
	InsertFunc        func(ctx context.Context, batch []models.Prediction) ([]models.Prediction, error)
	SettleExpiredFunc func(ctx context.Context, cutoff time.Time, status models.Status, result string) (int64, error)
	QueryFunc         func(ctx context.Context, filter logic.PredictionFilter) ([]models.Prediction, error)

	InsertCalls int
	SettleCalls int
	QueryCalls  int
}

func (m *MockPredictionStore) Insert(ctx context.Context, batch []models.Prediction) ([]models.Prediction, error) {
	m.InsertCalls++
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, batch)
	}
	return batch, nil
}

func (m *MockPredictionStore) SettleExpired(ctx context.Context, cutoff time.Time, status models.Status, result string) (int64, error) {
	m.SettleCalls++
	if m.SettleExpiredFunc != nil {
		return m.SettleExpiredFunc(ctx, cutoff, status, result)
	}
	return 0, nil
}

func (m *MockPredictionStore) Query(ctx context.Context, filter logic.PredictionFilter) ([]models.Prediction, error) {
	m.QueryCalls++
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, filter)
	}
	return []models.Prediction{}, nil
}

func (m *MockPredictionStore) Calls() int {
	return m.InsertCalls + m.SettleCalls + m.QueryCalls
}

// MockDashboardService implements logic.DashboardService
type MockDashboardService struct {
	LoadFunc func(ctx context.Context) (*models.Dashboard, error)
}

func (m *MockDashboardService) Load(ctx context.Context) (*models.Dashboard, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return models.EmptyDashboard(), nil
}

// MockAuthService implements logic.AuthService
type MockAuthService struct {
	SignUpFunc         func(ctx context.Context, creds models.Credentials) (*models.Session, error)
	SignInFunc         func(ctx context.Context, creds models.Credentials) (*models.Session, error)
	SignOutFunc        func(ctx context.Context, token string) error
	CurrentSessionFunc func(ctx context.Context, token string) (*models.Session, error)
}

func (m *MockAuthService) SignUp(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, creds)
	}
	return nil, logic.ErrEmailTaken
}

func (m *MockAuthService) SignIn(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, creds)
	}
	return nil, logic.ErrInvalidCredentials
}

func (m *MockAuthService) SignOut(ctx context.Context, token string) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthService) CurrentSession(ctx context.Context, token string) (*models.Session, error) {
	if m.CurrentSessionFunc != nil {
		return m.CurrentSessionFunc(ctx, token)
	}
	return nil, logic.ErrNoSession
}

// MockDatabase implements Database
type MockDatabase struct {
	PingErr  error
	ExecFunc func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *MockDatabase) Ping(ctx context.Context) error { return m.PingErr }

func (m *MockDatabase) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

// MockCache implements Cache
type MockCache struct {
	PingErr error
}

func (m *MockCache) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if m.PingErr != nil {
		cmd.SetErr(m.PingErr)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

// stubRand always draws the same values
type stubRand struct {
	n int
	f float64
}

func (s stubRand) IntN(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

func (s stubRand) Float64() float64 { return s.f }

const testServiceKey = "service-role-key"

// newTestHandler builds a Handler around a real rollover service and the
// given store; dashboard and auth fall back to mocks when nil.
func newTestHandler(store *MockPredictionStore, dash logic.DashboardService, auth logic.AuthService) *Handler {
	logger := zap.NewNop()
	if store == nil {
		store = &MockPredictionStore{}
	}
	if dash == nil {
		dash = &MockDashboardService{}
	}
	if auth == nil {
		auth = &MockAuthService{}
	}
	now := func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	return New(Config{
		Postgres:       &MockDatabase{},
		Redis:          &MockCache{},
		Logger:         logger,
		ServiceRoleKey: testServiceKey,
		Rollover:       logic.NewRolloverService(store, stubRand{}, now, logger),
		Dashboard:      dash,
		Auth:           auth,
	})
}

func testSession() *models.Session {
	return &models.Session{
		ID:        "sess-1",
		User:      models.User{Email: "punter@example.com"},
		Token:     "valid-token",
		ExpiresAt: time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC),
	}
}
