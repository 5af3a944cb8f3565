package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/internal/repository"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

// Service authenticates back-office accounts against the admin_users table.
type Service struct {
	admins repository.AdminRepository
	jwt    *JWTManager
	logger *slog.Logger
}

// NewService creates the admin auth service.
func NewService(admins repository.AdminRepository, jwt *JWTManager, logger *slog.Logger) *Service {
	return &Service{admins: admins, jwt: jwt, logger: logger}
}

// Login verifies the credentials and returns the account with a signed
// session token. Unknown user and wrong password are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.AdminUser, string, error) {
	if username == "" {
		return nil, "", apperrors.InvalidInput("usuario is required")
	}
	if password == "" {
		return nil, "", apperrors.InvalidInput("password is required")
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", apperrors.Unauthorized("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid username or password")
	}

	token, err := s.jwt.Generate(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "admin logged in",
		slog.Int64("admin_id", admin.ID),
		slog.String("usuario", admin.Username),
	)

	return admin, token, nil
}

// Validate checks a session token and returns its claims.
func (s *Service) Validate(token string) (*Claims, error) {
	return s.jwt.Validate(token)
}
