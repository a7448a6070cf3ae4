package repository

import (
	"github.com/yourusername/hunar-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByPhone(phone string) (*entity.User, error)
	// List возвращает всех пользователей без хешей паролей
	List() ([]entity.User, error)
	Update(user *entity.User) error
	UpdatePassword(phone, hashedPassword string) error
	UpdateLevel(phone, level string) error
	Delete(phone string) error
}
