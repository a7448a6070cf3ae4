package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// MetricsRepo реализует repository.MetricsRepository
type MetricsRepo struct {
	db *gorm.DB
}

// NewMetricsRepo создает новый репозиторий метрик внешних движков
func NewMetricsRepo(db *gorm.DB) *MetricsRepo {
	return &MetricsRepo{db: db}
}

// GetAudioMetrics возвращает JSON-блоб речевых метрик пользователя
func (r *MetricsRepo) GetAudioMetrics(userID string) (string, error) {
	var result entity.AudioResult
	err := r.db.Where("user_id = ?", userID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return result.Metrics, nil
}

// GetPresentationFeedback возвращает JSON-блоб презентационного отзыва
func (r *MetricsRepo) GetPresentationFeedback(userID string) (string, error) {
	var result entity.PresentationResult
	err := r.db.Where("user_id = ?", userID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return result.Feedback, nil
}
