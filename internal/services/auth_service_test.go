package services

import (
	"testing"

	"ideahub_backend/internal/auth"
	"ideahub_backend/internal/models"
	"ideahub_backend/internal/repositories"
	"ideahub_backend/internal/services/dto"
	"ideahub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_And_Login(t *testing.T) {
	auth.Configure("test-secret", 60)
	db := newTestDB(t)
	svc, _ := newTestServices()

	user, err := svc.AuthService.Register(db, &dto.RegisterRequest{
		Name:     "New User",
		Email:    "new@test.com",
		Password: "super_password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "New User", user.Name)
	assert.False(t, user.IsAdmin)

	resp, err := svc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "new@test.com",
		Password: "super_password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)

	// Логин создает серверную сессию
	var sessions int64
	require.NoError(t, db.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&sessions).Error)
	assert.EqualValues(t, 1, sessions)
}

// TestRegister_DuplicateEmail - второй аккаунт на тот же email не создается
func TestRegister_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestServices()

	_, err := svc.AuthService.Register(db, &dto.RegisterRequest{
		Name:     "First",
		Email:    "dup@test.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.AuthService.Register(db, &dto.RegisterRequest{
		Name:     "Second",
		Email:    "dup@test.com",
		Password: "password456",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "dup@test.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// TestUserCreate_DuplicateMappedFromIndex - дубликат ловится уникальным
// индексом на вставке: проигравшая из двух одновременных регистраций
// получает доменную ошибку, а не сырую ошибку СУБД
func TestUserCreate_DuplicateMappedFromIndex(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository()

	require.NoError(t, repo.Create(db, &models.User{
		Name:         "First",
		Email:        "race@test.com",
		PasswordHash: "hash1",
	}))

	err := repo.Create(db, &models.User{
		Name:         "Second",
		Email:        "race@test.com",
		PasswordHash: "hash2",
	})
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)
}

// TestLogin_GenericError - неизвестный email и неверный пароль дают
// одну и ту же ошибку, без подсказки какой из двух случаев произошел
func TestLogin_GenericError(t *testing.T) {
	auth.Configure("test-secret", 60)
	db := newTestDB(t)
	svc, _ := newTestServices()

	_, err := svc.AuthService.Register(db, &dto.RegisterRequest{
		Name:     "Existing",
		Email:    "existing@test.com",
		Password: "correct_password",
	})
	require.NoError(t, err)

	_, errUnknown := svc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "nobody@test.com",
		Password: "whatever",
	})
	_, errWrongPass := svc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "existing@test.com",
		Password: "wrong_password",
	})

	assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, apperrors.ErrInvalidCredentials)
}

// TestLogin_TokenBoundToSession - access-токен ссылается на серверную сессию,
// и после логаута эта сессия больше не находится
func TestLogin_TokenBoundToSession(t *testing.T) {
	auth.Configure("test-secret", 60)
	db := newTestDB(t)
	svc, _ := newTestServices()

	user, err := svc.AuthService.Register(db, &dto.RegisterRequest{
		Name:     "Bound User",
		Email:    "bound@test.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "bound@test.com",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	require.NotEmpty(t, claims.SessionToken)

	sessionRepo := repositories.NewSessionRepository()
	session, err := sessionRepo.FindByToken(db, claims.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)

	require.NoError(t, svc.AuthService.Logout(db, user.ID))

	_, err = sessionRepo.FindByToken(db, claims.SessionToken)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
}

func TestLogout_RemovesSessions(t *testing.T) {
	auth.Configure("test-secret", 60)
	db := newTestDB(t)
	svc, _ := newTestServices()

	_, err := svc.AuthService.Register(db, &dto.RegisterRequest{
		Name:     "Session User",
		Email:    "session@test.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "session@test.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.AuthService.Logout(db, resp.User.ID))

	var sessions int64
	require.NoError(t, db.Model(&models.Session{}).Where("user_id = ?", resp.User.ID).Count(&sessions).Error)
	assert.EqualValues(t, 0, sessions)
}

func TestChangePassword(t *testing.T) {
	auth.Configure("test-secret", 60)
	db := newTestDB(t)
	svc, _ := newTestServices()

	user, err := svc.AuthService.Register(db, &dto.RegisterRequest{
		Name:     "Changer",
		Email:    "changer@test.com",
		Password: "old_password1",
	})
	require.NoError(t, err)

	// Неверный текущий пароль отклоняется
	err = svc.AuthService.ChangePassword(db, user.ID, "not_the_password", "new_password1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.NoError(t, svc.AuthService.ChangePassword(db, user.ID, "old_password1", "new_password1"))

	_, err = svc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "changer@test.com",
		Password: "old_password1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "changer@test.com",
		Password: "new_password1",
	})
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestServices()

	user, err := svc.AuthService.Register(db, &dto.RegisterRequest{
		Name:     "Before",
		Email:    "profile@test.com",
		Password: "password123",
	})
	require.NoError(t, err)

	newName := "After"
	newBio := "Community gardener"
	updated, err := svc.AuthService.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{
		Name: &newName,
		Bio:  &newBio,
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "Community gardener", updated.Bio)
}
