package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/agrilink/internal/client/models"
	"github.com/dmitrijs2005/agrilink/internal/client/state"
	"github.com/dmitrijs2005/agrilink/internal/common"
	"github.com/dmitrijs2005/agrilink/internal/logging"
	"github.com/go-playground/validator/v10"
)

// DefaultGatedSuffix marks the views that require a session.
const DefaultGatedSuffix = "dashboard.html"

// Registration is the input of AuthService.Register.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService manages accounts and the current session.
//
// Register appends a new account and never logs the user in. Login compares
// the password verbatim and stores the session projection. RequireSession
// returns a *common.RedirectError when a gated view is opened without a
// session.
type AuthService interface {
	Register(ctx context.Context, r Registration) error
	Login(ctx context.Context, email, password string) (*models.Session, error)
	RequireSession(ctx context.Context, currentPath string) (*models.Session, error)
	CurrentSession(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// AuthStore is the part of the state store AuthService needs.
type AuthStore interface {
	state.Users
	state.Auth
}

type authService struct {
	store    AuthStore
	validate *validator.Validate
	gated    []string
	logger   logging.Logger

	// guards read-modify-write of the users table
	mu sync.Mutex
}

type AuthOption func(*authService)

// WithGatedSuffixes replaces the list of path suffixes that require a session.
func WithGatedSuffixes(suffixes ...string) AuthOption {
	return func(s *authService) { s.gated = suffixes }
}

func WithAuthLogger(l logging.Logger) AuthOption {
	return func(s *authService) { s.logger = l }
}

func NewAuthService(store AuthStore, opts ...AuthOption) AuthService {
	s := &authService{
		store:    store,
		validate: newValidator(),
		gated:    []string{DefaultGatedSuffix},
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *authService) Register(ctx context.Context, r Registration) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = models.NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Role = strings.TrimSpace(r.Role)

	if err := validateStruct(s.validate, r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.GetUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	for _, u := range users {
		if models.NormalizeEmail(u.Email) == r.Email {
			return common.ErrDuplicateEmail
		}
	}

	users = append(users, models.User{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Role:     r.Role,
		Password: r.Password,
	})

	if err := s.store.SaveUsers(ctx, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}

	s.logger.Info(ctx, "user registered", "email", r.Email, "role", r.Role)
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = models.NormalizeEmail(email)

	users, err := s.store.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	for _, u := range users {
		if models.NormalizeEmail(u.Email) != email || u.Password != password {
			continue
		}

		session := u.Session()
		session.Email = email
		if err := s.store.SetAuth(ctx, session); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
		s.logger.Info(ctx, "user logged in", "email", email)
		return &session, nil
	}

	return nil, common.ErrInvalidCredentials
}

func (s *authService) RequireSession(ctx context.Context, currentPath string) (*models.Session, error) {
	session, err := s.store.GetAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil && s.isGated(currentPath) {
		return nil, &common.RedirectError{Location: common.EntryLogin}
	}
	return session, nil
}

func (s *authService) isGated(path string) bool {
	for _, suffix := range s.gated {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

func (s *authService) CurrentSession(ctx context.Context) (*models.Session, error) {
	return s.store.GetAuth(ctx)
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.store.ClearAuth(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.GetUsers(ctx)
}
