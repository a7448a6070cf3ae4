package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
	"github.com/yourusername/hunar-api/pkg/auth"
)

func newAuthFixture(t *testing.T) (*AuthService, *MockUserRepo) {
	t.Helper()
	userRepo := new(MockUserRepo)
	moduleRepo := new(MockModuleRepo)
	statusRepo := new(MockStatusRepo)
	jwtService, err := auth.NewJWTService("test-secret", 1)
	require.NoError(t, err)
	// Транзакционный путь регистрации тестируется интеграционно
	svc := NewAuthService(nil, userRepo, moduleRepo, statusRepo, jwtService, &NoopEmailService{})
	return svc, userRepo
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register(RegisterInput{Phone: "79990001122"})

	assert.ErrorIs(t, err, apperrors.ErrValidation, "Регистрация без имени и пароля должна быть отклонена")
	assert.Nil(t, user)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo := newAuthFixture(t)

	stored := &entity.User{Phone: "79990001122", Username: "aliya", Level: entity.LevelUser, Password: "secret123"}
	// BeforeSave в проде хеширует пароль, здесь хешируем вручную
	require.NoError(t, stored.BeforeSave(nil))
	userRepo.On("GetByPhone", "79990001122").Return(stored, nil)

	user, token, err := svc.Login("79990001122", "secret123")

	require.NoError(t, err, "Вход с верным паролем должен быть успешным")
	assert.Equal(t, "aliya", user.Username)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo := newAuthFixture(t)

	stored := &entity.User{Phone: "79990001122", Password: "secret123"}
	require.NoError(t, stored.BeforeSave(nil))
	userRepo.On("GetByPhone", "79990001122").Return(stored, nil)

	user, token, err := svc.Login("79990001122", "wrong")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestAuthService_Login_UnknownPhone(t *testing.T) {
	svc, userRepo := newAuthFixture(t)

	userRepo.On("GetByPhone", "70000000000").Return(nil, apperrors.ErrNotFound)

	_, _, err := svc.Login("70000000000", "secret123")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "Неизвестный телефон не должен раскрываться отдельной ошибкой")
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login("", "")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
