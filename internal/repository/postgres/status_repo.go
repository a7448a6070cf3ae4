package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// StatusRepo реализует repository.StatusRepository
type StatusRepo struct {
	db *gorm.DB
}

// NewStatusRepo создает новый репозиторий статусов тестов
func NewStatusRepo(db *gorm.DB) *StatusRepo {
	return &StatusRepo{db: db}
}

// CreateBatch заводит строки статуса пакетом
func (r *StatusRepo) CreateBatch(statuses []entity.TestSkillStatus) error {
	if len(statuses) == 0 {
		return nil
	}
	err := r.db.Create(&statuses).Error
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// MarkCompleted выставляет признак завершения теста
func (r *StatusRepo) MarkCompleted(userID string, testID uint) error {
	result := r.db.Model(&entity.TestSkillStatus{}).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Update("is_completed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Get возвращает статус пары (пользователь, тест)
func (r *StatusRepo) Get(userID string, testID uint) (*entity.TestSkillStatus, error) {
	var status entity.TestSkillStatus
	err := r.db.Where("user_id = ? AND test_id = ?", userID, testID).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &status, nil
}

// ListByUser возвращает статусы всех тестов пользователя
func (r *StatusRepo) ListByUser(userID string) ([]entity.TestSkillStatus, error) {
	var statuses []entity.TestSkillStatus
	err := r.db.Where("user_id = ?", userID).Order("test_id").Find(&statuses).Error
	return statuses, err
}

// DeleteByTest удаляет статусы всех пользователей по тесту
func (r *StatusRepo) DeleteByTest(testID uint) error {
	return r.db.Where("test_id = ?", testID).Delete(&entity.TestSkillStatus{}).Error
}

// DeleteByUser удаляет все статусы пользователя
func (r *StatusRepo) DeleteByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&entity.TestSkillStatus{}).Error
}
