package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// ListByModule возвращает все вопросы модуля
func (r *QuestionRepo) ListByModule(moduleID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("module_id = ?", moduleID).Order("id").Find(&questions).Error
	return questions, err
}

// Update обновляет информацию о вопросе
func (r *QuestionRepo) Update(question *entity.Question) error {
	result := r.db.Model(&entity.Question{}).
		Where("id = ?", question.ID).
		Updates(map[string]interface{}{
			"question_text": question.Text,
			"options":       question.Options,
			"attempt_time":  question.AttemptTime,
			"standard":      question.Standard,
			"tag":           question.Tag,
			"recording_id":  question.RecordingID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetRandomUnanswered возвращает случайный неотвеченный вопрос модуля.
// Исключение отвеченных реализовано подзапросом по responses,
// случайность — ORDER BY RANDOM() (пулы вопросов небольшие).
func (r *QuestionRepo) GetRandomUnanswered(userID string, moduleID uint, filter repository.QuestionFilter) (*entity.Question, error) {
	answered := r.db.Model(&entity.Response{}).
		Select("question_id").
		Where("user_id = ?", userID)

	query := r.db.Where("module_id = ? AND standard = ?", moduleID, filter.Standard).
		Where("id NOT IN (?)", answered)

	if filter.Tag != "" {
		query = query.Where("tag = ?", filter.Tag)
	}
	if filter.RecordingID != nil {
		query = query.Where("recording_id = ?", *filter.RecordingID)
	}

	var question entity.Question
	err := query.Order("RANDOM()").First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetRandomByStandard возвращает случайный вопрос модуля без исключения отвеченных
func (r *QuestionRepo) GetRandomByStandard(moduleID uint, standard string) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Where("module_id = ? AND standard = ?", moduleID, standard).
		Order("RANDOM()").
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// MaxRecordingID возвращает наибольший номер аудиозаписи (0, если записей нет)
func (r *QuestionRepo) MaxRecordingID() (uint, error) {
	var maxID *uint
	err := r.db.Model(&entity.Question{}).
		Select("MAX(recording_id)").
		Where("recording_id IS NOT NULL").
		Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	if maxID == nil {
		return 0, nil
	}
	return *maxID, nil
}

// ListByRecording возвращает вопросы, привязанные к аудиозаписи
func (r *QuestionRepo) ListByRecording(recordingID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("recording_id = ?", recordingID).Order("id").Find(&questions).Error
	return questions, err
}

// ListIDsByModule возвращает идентификаторы вопросов модуля
func (r *QuestionRepo) ListIDsByModule(moduleID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.Question{}).
		Where("module_id = ?", moduleID).
		Pluck("id", &ids).Error
	return ids, err
}
