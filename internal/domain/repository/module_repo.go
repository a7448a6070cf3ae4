package repository

import (
	"github.com/yourusername/hunar-api/internal/domain/entity"
)

// ModuleRepository определяет методы для работы с модулями
type ModuleRepository interface {
	Create(module *entity.Module) error
	GetByID(id uint) (*entity.Module, error)
	List() ([]entity.Module, error)
	Update(module *entity.Module) error
	Delete(id uint) error
	// ListIDs возвращает идентификаторы всех модулей (для посева статусов)
	ListIDs() ([]uint, error)
}
