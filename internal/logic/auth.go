package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/betgenius/predictions-api/internal/models"
)

const sessionKeyPrefix = "session:"

// SessionClaims are carried in the signed session token
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type authService struct {
	pg         PgPool
	redis      RedisClient
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
	logger     *zap.SugaredLogger
}

// AuthConfig configures the auth service
type AuthConfig struct {
	Postgres   PgPool
	Redis      RedisClient
	Secret     string
	SessionTTL time.Duration
	BcryptCost int
	Now        func() time.Time
	Logger     *zap.Logger
}

func NewAuthService(cfg AuthConfig) AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &authService{
		pg:         cfg.Postgres,
		redis:      cfg.Redis,
		secret:     []byte(cfg.Secret),
		ttl:        cfg.SessionTTL,
		bcryptCost: cfg.BcryptCost,
		now:        cfg.Now,
		logger:     cfg.Logger.Sugar(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	email := normalizeEmail(creds.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var userID uuid.UUID
	err = s.pg.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`, uuid.New(), email, string(hash)).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Infow("User registered", "user_id", userID)
	return s.createSession(ctx, models.User{ID: userID, Email: email})
}

func (s *authService) SignIn(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	email := normalizeEmail(creds.Email)

	var (
		userID uuid.UUID
		hash   string
	)
	err := s.pg.QueryRow(ctx,
		"SELECT id, password_hash FROM users WHERE email = $1",
		email).Scan(&userID, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, models.User{ID: userID, Email: email})
}

// SignOut ends the session behind token. Unknown or expired sessions are
// not an error.
func (s *authService) SignOut(ctx context.Context, token string) error {
	claims, err := s.parseToken(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	if err := s.redis.Del(ctx, sessionKeyPrefix+claims.ID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Infow("User signed out", "user_id", claims.Subject, "session_id", claims.ID)
	return nil
}

// CurrentSession resolves a token into a live session. The token must verify
// and its session must still exist in Redis.
func (s *authService) CurrentSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, ErrNoSession
	}

	userID, err := s.redis.Get(ctx, sessionKeyPrefix+claims.ID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if userID != claims.Subject {
		return nil, ErrNoSession
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrNoSession
	}

	return &models.Session{
		ID:        claims.ID,
		User:      models.User{ID: id, Email: claims.Email},
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *authService) createSession(ctx context.Context, user models.User) (*models.Session, error) {
	now := s.now()
	sessionID := uuid.New().String()
	expiresAt := now.Add(s.ttl)

	claims := SessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKeyPrefix+sessionID, user.ID.String(), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Infow("Session created", "user_id", user.ID, "session_id", sessionID, "expires_at", expiresAt)
	return &models.Session{
		ID:        sessionID,
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) parseToken(token string, opts ...jwt.ParserOption) (*SessionClaims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || claims.ID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
