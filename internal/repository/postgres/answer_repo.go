package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий канонических ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// Create создает канонический ответ вопроса
func (r *AnswerRepo) Create(answer *entity.Answer) error {
	err := r.db.Create(answer).Error
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByQuestionID возвращает канонический ответ вопроса
func (r *AnswerRepo) GetByQuestionID(questionID uint) (*entity.Answer, error) {
	var answer entity.Answer
	err := r.db.Where("question_id = ?", questionID).First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &answer, nil
}

// Update обновляет канонический ответ
func (r *AnswerRepo) Update(answer *entity.Answer) error {
	result := r.db.Model(&entity.Answer{}).
		Where("question_id = ?", answer.QuestionID).
		Updates(map[string]interface{}{
			"value":   answer.Value,
			"weight":  answer.Weight,
			"weights": answer.Weights,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListByQuestionIDs возвращает ответы перечисленных вопросов
func (r *AnswerRepo) ListByQuestionIDs(questionIDs []uint) ([]entity.Answer, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var answers []entity.Answer
	err := r.db.Where("question_id IN ?", questionIDs).Find(&answers).Error
	return answers, err
}

// DeleteByQuestionIDs удаляет ответы перечисленных вопросов
func (r *AnswerRepo) DeleteByQuestionIDs(questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	return r.db.Where("question_id IN ?", questionIDs).Delete(&entity.Answer{}).Error
}
