package repository

import (
	"github.com/yourusername/hunar-api/internal/domain/entity"
)

// AnswerRepository определяет методы для работы с каноническими ответами
type AnswerRepository interface {
	Create(answer *entity.Answer) error
	// GetByQuestionID возвращает ответ вопроса; отсутствие — ErrNotFound
	GetByQuestionID(questionID uint) (*entity.Answer, error)
	Update(answer *entity.Answer) error
	ListByQuestionIDs(questionIDs []uint) ([]entity.Answer, error)
	DeleteByQuestionIDs(questionIDs []uint) error
}
