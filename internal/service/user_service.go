package service

import (
	"fmt"
	"log"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// UpdateUserInput — данные для административного обновления пользователя.
// Пустой пароль означает "оставить прежний".
type UpdateUserInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

// UserService предоставляет административные методы для работы с пользователями
type UserService struct {
	userRepo     repository.UserRepository
	responseRepo repository.ResponseRepository
	statusRepo   repository.StatusRepository
	overallRepo  repository.OverallResultRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(
	userRepo repository.UserRepository,
	responseRepo repository.ResponseRepository,
	statusRepo repository.StatusRepository,
	overallRepo repository.OverallResultRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		responseRepo: responseRepo,
		statusRepo:   statusRepo,
		overallRepo:  overallRepo,
	}
}

// List возвращает всех пользователей
func (s *UserService) List() ([]entity.User, error) {
	return s.userRepo.List()
}

// Get возвращает пользователя по телефону
func (s *UserService) Get(phone string) (*entity.User, error) {
	return s.userRepo.GetByPhone(phone)
}

// Update обновляет профиль пользователя. Пустой пароль сохраняет прежний хеш.
func (s *UserService) Update(phone string, input UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Age > 0 {
		user.Age = input.Age
	}
	if input.Password != "" {
		user.Password = input.Password // хешируется в BeforeSave
	}

	if err := s.userRepo.Update(user); err != nil {
		log.Printf("[UserService] Ошибка при обновлении пользователя phone=%s: %v", phone, err)
		return nil, err
	}
	return user, nil
}

// ChangePassword устанавливает новый пароль пользователя
func (s *UserService) ChangePassword(phone, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByPhone(phone)
	if err != nil {
		return err
	}

	user.Password = newPassword // хешируется в BeforeSave
	if err := s.userRepo.Update(user); err != nil {
		log.Printf("[UserService] Ошибка при смене пароля phone=%s: %v", phone, err)
		return err
	}
	return nil
}

// MakeAdmin повышает пользователя до администратора
func (s *UserService) MakeAdmin(phone string) error {
	if err := s.userRepo.UpdateLevel(phone, entity.LevelAdmin); err != nil {
		log.Printf("[UserService] Ошибка при назначении администратора phone=%s: %v", phone, err)
		return err
	}
	return nil
}

// Delete удаляет пользователя вместе с его откликами, статусами и
// сводными результатами. При регистрации каждому пользователю заводятся
// статусы по всем модулям, поэтому зависимые строки удаляются первыми:
// прерванное удаление оставляет аккаунт на месте и допускает повтор.
func (s *UserService) Delete(phone string) error {
	if _, err := s.userRepo.GetByPhone(phone); err != nil {
		return err
	}

	if err := s.responseRepo.DeleteByUser(phone); err != nil {
		log.Printf("[UserService] Ошибка при удалении откликов пользователя phone=%s: %v", phone, err)
		return err
	}
	if err := s.statusRepo.DeleteByUser(phone); err != nil {
		log.Printf("[UserService] Ошибка при удалении статусов пользователя phone=%s: %v", phone, err)
		return err
	}
	if err := s.overallRepo.DeleteByUser(phone); err != nil {
		log.Printf("[UserService] Ошибка при удалении результатов пользователя phone=%s: %v", phone, err)
		return err
	}

	if err := s.userRepo.Delete(phone); err != nil {
		log.Printf("[UserService] Ошибка при удалении пользователя phone=%s: %v", phone, err)
		return err
	}

	log.Printf("[UserService] Удален пользователь phone=%s", phone)
	return nil
}
