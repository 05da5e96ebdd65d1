package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/fyp-coordination-api/internal/models"
	appErrors "github.com/campushq/fyp-coordination-api/pkg/errors"
)

type mockUserRepo struct {
	users map[string]*models.User
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func newAuthFixture(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &mockUserRepo{users: map[string]*models.User{
		"u-s1": {ID: "u-s1", Email: "ayesha@uni.edu", PasswordHash: string(hash), FullName: "Ayesha Khan", Role: models.RoleStudent, Active: true},
		"u-t1": {ID: "u-t1", Email: "nadia@uni.edu", PasswordHash: string(hash), FullName: "Dr. Nadia", Role: models.RoleTeacher, Active: true},
		"u-x1": {ID: "u-x1", Email: "gone@uni.edu", PasswordHash: string(hash), FullName: "Former User", Role: models.RoleTeacher, Active: false},
	}}
	_, students, _ := testDirectory()
	svc := NewAuthService(users, students, validator.New(), zap.NewNop(), AuthConfig{Secret: "test-secret", Expiry: time.Hour})
	return svc, users
}

func TestLoginIssuesStudentClaims(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "ayesha@uni.edu", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-s1", claims.UserID)
	assert.Equal(t, "19F-0255", claims.RollNumber)
	assert.Equal(t, "G-01", claims.GroupID)
}

func TestLoginTeacherHasNoStudentClaims(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "nadia@uni.edu", Password: "s3cret"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.Empty(t, claims.RollNumber)
	assert.Empty(t, claims.GroupID)
}

func TestLoginRejections(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, models.LoginRequest{Email: "nobody@uni.edu", Password: "s3cret"})
	assertErrCode(t, err, appErrors.ErrInvalidCredentials.Code)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ayesha@uni.edu", Password: "wrong"})
	assertErrCode(t, err, appErrors.ErrInvalidCredentials.Code)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "gone@uni.edu", Password: "s3cret"})
	assertErrCode(t, err, appErrors.ErrInactiveAccount.Code)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "not-an-email", Password: "s3cret"})
	assertErrCode(t, err, appErrors.ErrValidation.Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.ValidateToken("not.a.token")
	assertErrCode(t, err, appErrors.ErrUnauthorized.Code)
}
