package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/platform/logger"
	"github.com/phrazzld/physref/internal/store"
)

// Password length bounds. The upper bound is bcrypt's input limit in bytes.
const (
	PasswordMinLength = 6
	PasswordMaxBytes  = 72
)

// RegisterInput holds the registration form fields.
type RegisterInput struct {
	Username        string `form:"username" validate:"required,min=4,max=25"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginInput holds the login form fields.
type LoginInput struct {
	Username string `form:"username" validate:"required,min=4,max=25"`
	Password string `form:"password" validate:"required,min=6"`
}

var messages = map[string]string{
	"username.min":             "Username must be between 4 and 25 characters.",
	"username.max":             "Username must be between 4 and 25 characters.",
	"password.min":             "Password must be at least 6 characters long.",
	"confirm_password.eqfield": "Passwords must match.",
}

var validate = domain.NewValidator()

// Service registers accounts and checks credentials.
type Service struct {
	users  store.UserStore
	hasher PasswordHasher
	logger *slog.Logger

	// dummyHash is compared against when the username is unknown so that
	// both login failure paths cost one bcrypt comparison.
	dummyHash string
}

// NewService creates an auth Service.
// If logger is nil, a default logger will be used.
func NewService(users store.UserStore, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("password hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummy, err := hasher.Hash("physref-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Service{
		users:     users,
		hasher:    hasher,
		logger:    logger.With(slog.String("component", "auth_service")),
		dummyHash: dummy,
	}, nil
}

// Register creates an account. It returns a *domain.ValidationError for bad
// input and domain.ErrUsernameTaken when the name is already registered.
// Uniqueness is decided by the store in a single insert, not by a prior lookup.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.FromValidator(validate.Struct(in), messages); err != nil {
		return nil, err
	}
	if len(in.Password) > PasswordMaxBytes {
		return nil, passwordTooLong()
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, passwordTooLong()
		}
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user, err := domain.NewUser(in.Username, hash)
	if err != nil {
		verr := domain.NewValidationError()
		verr.Add("username", messages["username.min"])
		return nil, verr
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("registration rejected: username taken",
				slog.String("username", in.Username))
			return nil, domain.ErrUsernameTaken
		}
		log.Error("failed to save user",
			slog.String("error", err.Error()),
			slog.String("username", in.Username))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}

// Login checks credentials and returns the matching user. Unknown usernames
// and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.FromValidator(validate.Struct(in), messages); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = s.hasher.Compare(s.dummyHash, in.Password)
			log.Debug("login failed", slog.String("reason", "unknown username"))
			return nil, domain.ErrInvalidCredentials
		}
		log.Error("failed to look up user",
			slog.String("error", err.Error()),
			slog.String("username", in.Username))
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		log.Debug("login failed",
			slog.String("reason", "password mismatch"),
			slog.Int64("user_id", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return user, nil
}

// User returns the account with the given id.
func (s *Service) User(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func passwordTooLong() error {
	verr := domain.NewValidationError()
	verr.Add("password", fmt.Sprintf("Password must be at most %d bytes long.", PasswordMaxBytes))
	return verr
}
