package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"portfolio/internal/config"
	"portfolio/internal/ids"
	"portfolio/internal/metrics"
	"portfolio/internal/models"
	"portfolio/internal/repository"
	"portfolio/internal/security"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountExists        = errors.New("account already exists")
	ErrRegistrationDisabled = errors.New("registration disabled")
)

// UserStore is the account persistence the auth flow needs. Uniqueness of
// username and email must be enforced by the store itself.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user models.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type TokenIssuer interface {
	Issue(user models.User) (string, time.Time, error)
	Validate(token string) (*security.Claims, error)
}

type AuthService struct {
	users             UserStore
	tokens            TokenIssuer
	hasher            security.PasswordHasher
	allowRegistration bool
	metrics           metrics.Recorder
	log               zerolog.Logger
	now               func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(
	users UserStore,
	tokens TokenIssuer,
	cfg config.SecurityConfig,
	recorder metrics.Recorder,
	log zerolog.Logger,
) *AuthService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AuthService{
		users:             users,
		tokens:            tokens,
		hasher:            security.NewPasswordHasher(cfg.BcryptCost),
		allowRegistration: cfg.AllowRegistration,
		metrics:           recorder,
		log:               log,
		now:               time.Now,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.User
}

// Authenticate checks a username/password pair and stamps the last-login time.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// burn the same bcrypt work as a real check
			s.hasher.Verify(password, s.placeholderHash())
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}

	loginAt := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		return models.User{}, fmt.Errorf("update last login: %w", err)
	}
	user.LastLoginAt = &loginAt

	return user, nil
}

// Register creates an Admin account. It does not consult the registration
// switch; seeding relies on that.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return models.User{}, fmt.Errorf("check existing account: %w", err)
	}
	if exists {
		return models.User{}, ErrAccountExists
	}

	hash, err := s.hasher.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.User{}, fmt.Errorf("%w: password exceeds 72 bytes", ErrInvalidInput)
	}
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserConflict) {
			return models.User{}, ErrAccountExists
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("account registered")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	user, err := s.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		s.record("login", err)
		if !errors.Is(err, ErrInvalidCredentials) {
			s.log.Error().Err(err).Msg("login failed")
		}
		return AuthResult{}, err
	}

	result, err := s.issue(user)
	s.record("login", err)
	return result, err
}

func (s *AuthService) SignUp(ctx context.Context, input RegisterInput) (AuthResult, error) {
	if !s.allowRegistration {
		s.record("register", ErrRegistrationDisabled)
		return AuthResult{}, ErrRegistrationDisabled
	}

	user, err := s.Register(ctx, input.Username, input.Email, input.Password)
	if err != nil {
		s.record("register", err)
		if !errors.Is(err, ErrAccountExists) && !errors.Is(err, ErrInvalidInput) {
			s.log.Error().Err(err).Msg("registration failed")
		}
		return AuthResult{}, err
	}

	result, err := s.issue(user)
	s.record("register", err)
	return result, err
}

// Validate is the gate used by every protected route.
func (s *AuthService) Validate(token string) (*security.Claims, error) {
	return s.tokens.Validate(token)
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("issue token failed")
		return AuthResult{}, err
	}
	return AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) record(operation string, err error) {
	switch {
	case err == nil:
		s.metrics.RecordAuth(operation, metrics.OutcomeSuccess)
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAccountExists), errors.Is(err, ErrRegistrationDisabled),
		errors.Is(err, ErrInvalidInput):
		s.metrics.RecordAuth(operation, metrics.OutcomeRejected)
	default:
		s.metrics.RecordAuth(operation, metrics.OutcomeError)
	}
}

func (s *AuthService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("placeholder-password")
		if err != nil {
			s.log.Warn().Err(err).Msg("placeholder hash failed")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
