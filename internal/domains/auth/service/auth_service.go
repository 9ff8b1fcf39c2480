package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"gpevim-backend/internal/domains/auth/model"
	"gpevim-backend/internal/domains/auth/repository"
	"gpevim-backend/pkg/jwt"
)

type ServiceInterface interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	SeedAdmin(ctx context.Context, username, password string) error
}

// Credentials is the hardcoded bypass pair. An empty username or password
// disables it.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) enabled() bool {
	return c.Username != "" && c.Password != ""
}

type authService struct {
	repo   repository.RepositoryInterface
	tokens *jwt.Manager
	bypass Credentials
}

// NewAuthService builds the login service. repo may be nil when no durable
// backend is configured; only the bypass pair can log in then.
func NewAuthService(repo repository.RepositoryInterface, tokens *jwt.Manager, bypass Credentials) ServiceInterface {
	return &authService{repo: repo, tokens: tokens, bypass: bypass}
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	// The bypass pair matches exactly, before any trimming.
	if s.bypass.enabled() &&
		req.Username == s.bypass.Username &&
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.bypass.Password)) == 1 {
		return s.success(req.Username)
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.repo == nil {
		return nil, model.ErrInvalidCredentials
	}

	admin, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrAdminNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	legacy := !isBcryptHash(admin.PasswordHash)
	if !passwordMatches(admin.PasswordHash, req.Password) {
		return nil, model.ErrInvalidCredentials
	}

	if legacy {
		s.upgradeHash(ctx, admin.ID, req.Password)
	}

	return s.success(admin.Username)
}

// SeedAdmin creates the configured admin account if it is missing.
func (s *authService) SeedAdmin(ctx context.Context, username, password string) error {
	if s.repo == nil {
		return model.ErrNoCredentialStore
	}
	if username == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	created, err := s.repo.EnsureAdmin(ctx, username, string(hash))
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("username", username).Msg("Seeded admin user")
	}
	return nil
}

func (s *authService) success(username string) (*model.LoginResponse, error) {
	token, err := s.tokens.GenerateAdminToken(username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &model.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
	}, nil
}

// upgradeHash replaces a plaintext password with its bcrypt hash. Failure
// only costs another plaintext comparison next time.
func (s *authService) upgradeHash(ctx context.Context, id int64, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Warn().Err(err).Int64("admin_id", id).Msg("Failed to hash legacy password")
		return
	}
	if err := s.repo.UpdatePasswordHash(ctx, id, string(hash)); err != nil {
		log.Warn().Err(err).Int64("admin_id", id).Msg("Failed to upgrade legacy password")
	}
}

func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}

func passwordMatches(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
