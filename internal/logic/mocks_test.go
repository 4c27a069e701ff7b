package logic

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/betgenius/predictions-api/internal/models"
)

// MockPgPool implements PgPool
type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockPgRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockRow{}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

type MockRow struct {
	ScanFunc func(dest ...any) error
}

func (m *MockRow) Scan(dest ...any) error {
	if m.ScanFunc != nil {
		return m.ScanFunc(dest...)
	}
	return nil
}

// MockPgRows replays Data row by row, assigning each value to the matching
// destination pointer.
type MockPgRows struct {
	Data  [][]any
	Error error
	curr  int
}

func (r *MockPgRows) Close()                                       {}
func (r *MockPgRows) Err() error                                   { return r.Error }
func (r *MockPgRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *MockPgRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *MockPgRows) Values() ([]any, error)                       { return nil, nil }
func (r *MockPgRows) RawValues() [][]byte                          { return nil }
func (r *MockPgRows) Conn() *pgx.Conn                              { return nil }

func (r *MockPgRows) Next() bool {
	r.curr++
	return r.curr <= len(r.Data)
}

func (r *MockPgRows) Scan(dest ...any) error {
	row := r.Data[r.curr-1]
	if len(row) != len(dest) {
		return fmt.Errorf("mock rows: %d values for %d destinations", len(row), len(dest))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

// predictionRow lays a prediction out in predictionColumns order
func predictionRow(p models.Prediction) []any {
	return []any{
		p.ID, string(p.Sport), p.EventDate, p.HomeTeam, p.AwayTeam, p.Prediction,
		p.ConfidenceScore, p.Odds, string(p.Status), p.LeagueID, p.Analysis,
		p.HomeStats, p.AwayStats, p.Result, p.CreatedAt,
	}
}

// MockRedisClient is a map-backed RedisClient
type MockRedisClient struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
	Fail error
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return redis.NewStringResult("", m.Fail)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return redis.NewStatusResult("", m.Fail)
	}
	m.data[key] = fmt.Sprint(value)
	m.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// memoryStore is an in-memory PredictionStore honouring the same filter
// semantics as the SQL implementation.
type memoryStore struct {
	mu          sync.Mutex
	rows        []models.Prediction
	now         func() time.Time
	insertErr   error
	settleErr   error
	queryErr    map[string]error // keyed by "today" / "past"
	insertCalls int
	settleCalls int
	queryCalls  int
	filters     []PredictionFilter
}

func newMemoryStore(now func() time.Time, rows ...models.Prediction) *memoryStore {
	return &memoryStore{rows: rows, now: now, queryErr: map[string]error{}}
}

func (m *memoryStore) Insert(ctx context.Context, batch []models.Prediction) ([]models.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls++
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	out := make([]models.Prediction, len(batch))
	for i, p := range batch {
		p.ID = uuid.New()
		p.CreatedAt = m.now()
		out[i] = p
	}
	m.rows = append(m.rows, out...)
	return out, nil
}

func (m *memoryStore) SettleExpired(ctx context.Context, cutoff time.Time, status models.Status, result string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settleCalls++
	if m.settleErr != nil {
		return 0, m.settleErr
	}
	var n int64
	for i := range m.rows {
		if m.rows[i].Status == models.StatusPending && m.rows[i].EventDate.Before(cutoff) {
			m.rows[i].Status = status
			r := result
			m.rows[i].Result = &r
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) Query(ctx context.Context, f PredictionFilter) ([]models.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCalls++
	m.filters = append(m.filters, f)

	key := "today"
	if !f.EventDateBefore.IsZero() {
		key = "past"
	}
	if err := m.queryErr[key]; err != nil {
		return nil, err
	}

	out := []models.Prediction{}
	for _, p := range m.rows {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if !f.EventDateFrom.IsZero() && p.EventDate.Before(f.EventDateFrom) {
			continue
		}
		if !f.EventDateTo.IsZero() && p.EventDate.After(f.EventDateTo) {
			continue
		}
		if !f.EventDateBefore.IsZero() && !p.EventDate.Before(f.EventDateBefore) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Descending {
			return out[i].EventDate.After(out[j].EventDate)
		}
		return out[i].EventDate.Before(out[j].EventDate)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memoryStore) byID(id uuid.UUID) models.Prediction {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.ID == id {
			return p
		}
	}
	return models.Prediction{}
}

// stubRand returns fixed draws: IntN yields min(Int, n-1), Float64 yields Float.
type stubRand struct {
	Int   int
	Float float64
}

func (s stubRand) IntN(n int) int {
	if s.Int >= n {
		return n - 1
	}
	return s.Int
}

func (s stubRand) Float64() float64 { return s.Float }
