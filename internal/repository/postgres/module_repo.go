package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// ModuleRepo реализует repository.ModuleRepository
type ModuleRepo struct {
	db *gorm.DB
}

// NewModuleRepo создает новый репозиторий модулей
func NewModuleRepo(db *gorm.DB) *ModuleRepo {
	return &ModuleRepo{db: db}
}

// Create создает новый модуль
func (r *ModuleRepo) Create(module *entity.Module) error {
	err := r.db.Create(module).Error
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает модуль по ID
func (r *ModuleRepo) GetByID(id uint) (*entity.Module, error) {
	var module entity.Module
	err := r.db.First(&module, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &module, nil
}

// List возвращает все модули
func (r *ModuleRepo) List() ([]entity.Module, error) {
	var modules []entity.Module
	err := r.db.Order("id").Find(&modules).Error
	return modules, err
}

// Update обновляет информацию о модуле
func (r *ModuleRepo) Update(module *entity.Module) error {
	result := r.db.Model(&entity.Module{}).
		Where("id = ?", module.ID).
		Updates(map[string]interface{}{
			"status":          module.Status,
			"instruction":     module.Instruction,
			"no_of_questions": module.NoOfQuestions,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет модуль
func (r *ModuleRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Module{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListIDs возвращает идентификаторы всех модулей
func (r *ModuleRepo) ListIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.Module{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}
