package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
	"github.com/yourusername/hunar-api/pkg/auth"
)

// RegisterInput — данные регистрации нового пользователя
type RegisterInput struct {
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Age      int    `json:"age" binding:"required,gt=0"`
}

// AuthService предоставляет методы для регистрации и входа
type AuthService struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	moduleRepo   repository.ModuleRepository
	statusRepo   repository.StatusRepository
	jwtService   *auth.JWTService
	emailService EmailService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	moduleRepo repository.ModuleRepository,
	statusRepo repository.StatusRepository,
	jwtService *auth.JWTService,
	emailService EmailService,
) *AuthService {
	return &AuthService{
		db:           db,
		userRepo:     userRepo,
		moduleRepo:   moduleRepo,
		statusRepo:   statusRepo,
		jwtService:   jwtService,
		emailService: emailService,
	}
}

// Register создает пользователя и заводит статусы прохождения по всем
// модулям. Занятый телефон — ErrConflict.
func (s *AuthService) Register(input RegisterInput) (*entity.User, error) {
	if input.Phone == "" || input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: phone, username and password are required", apperrors.ErrValidation)
	}

	user := &entity.User{
		Phone:    input.Phone,
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password, // хешируется в BeforeSave
		Level:    entity.LevelUser,
		Age:      input.Age,
	}

	moduleIDs, err := s.moduleRepo.ListIDs()
	if err != nil {
		log.Printf("[AuthService] Ошибка при получении списка модулей: %v", err)
		return nil, err
	}

	// Пользователь и его статусы создаются атомарно
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		statuses := make([]entity.TestSkillStatus, 0, len(moduleIDs))
		for _, id := range moduleIDs {
			statuses = append(statuses, entity.TestSkillStatus{
				UserID: user.Phone,
				TestID: id,
			})
		}
		if len(statuses) > 0 {
			if err := tx.Create(&statuses).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolationErr(err) {
			return nil, fmt.Errorf("%w: user with phone %s already exists", apperrors.ErrConflict, input.Phone)
		}
		log.Printf("[AuthService] Ошибка при регистрации пользователя phone=%s: %v", input.Phone, err)
		return nil, err
	}

	// Письмо отправляем вне транзакции и не блокируем ответ
	if user.Email != "" {
		go func(email, username string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.emailService.SendWelcome(ctx, email, username); err != nil {
				log.Printf("[AuthService] Не удалось отправить приветственное письмо на %s: %v", email, err)
			}
		}(user.Email, user.Username)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь phone=%s", user.Phone)
	return user, nil
}

// Login проверяет телефон и пароль и возвращает пользователя с токеном
func (s *AuthService) Login(phone, password string) (*entity.User, string, error) {
	if phone == "" || password == "" {
		return nil, "", fmt.Errorf("%w: phone and password are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByPhone(phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrUnauthorized
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", apperrors.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(user.Phone, user.Username, user.Level)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации токена для phone=%s: %v", phone, err)
		return nil, "", err
	}

	return user, token, nil
}
