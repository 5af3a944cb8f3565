package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Quino300923/frontera-backend/internal/domain"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	m := NewJWTManager("test-secret")

	token, err := m.Generate(7, "joaquin", "admin")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.AdminID)
	assert.Equal(t, "joaquin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a").Generate(1, "x", "admin")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b").Validate(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret")

	past := time.Now().UTC().Add(-3 * time.Hour)
	claims := &Claims{
		AdminID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(TokenExpiry)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Validate(expired)
	assert.Error(t, err)
}

type stubAdminRepo struct {
	admin *domain.AdminUser
	err   error
}

func (r *stubAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.admin, nil
}

func testService(t *testing.T, password string) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubAdminRepo{admin: &domain.AdminUser{
		ID:           1,
		Username:     "joaquin",
		PasswordHash: string(hash),
		Role:         "admin",
	}}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewService(repo, NewJWTManager("test-secret"), logger)
}

func TestService_Login_Success(t *testing.T) {
	s := testService(t, "hunter2")

	admin, token, err := s.Login(context.Background(), "joaquin", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "joaquin", admin.Username)

	claims, err := s.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.AdminID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	s := testService(t, "hunter2")

	_, _, err := s.Login(context.Background(), "joaquin", "wrong")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.HTTPStatus(err))
}

func TestService_Login_UnknownUser(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s := NewService(&stubAdminRepo{err: apperrors.ErrNotFound}, NewJWTManager("x"), logger)

	_, _, err := s.Login(context.Background(), "ghost", "whatever")
	require.Error(t, err)
	// Unknown user maps to the same 401 as a wrong password.
	assert.Equal(t, 401, apperrors.HTTPStatus(err))
}

func TestService_Login_MissingFields(t *testing.T) {
	s := testService(t, "hunter2")

	_, _, err := s.Login(context.Background(), "", "x")
	assert.Equal(t, 400, apperrors.HTTPStatus(err))

	_, _, err = s.Login(context.Background(), "joaquin", "")
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
}
