package repository

import (
	"github.com/yourusername/hunar-api/internal/domain/entity"
)

// QuestionFilter сужает пул вопросов при выборе следующего вопроса
type QuestionFilter struct {
	// Standard — класс/уровень сложности пула (обязателен)
	Standard string

	// Tag — сложность easy/medium/hard (используется языковым модулем)
	Tag string

	// RecordingID — номер аудиозаписи (используется модулем аудирования)
	RecordingID *uint
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	ListByModule(moduleID uint) ([]entity.Question, error)
	Update(question *entity.Question) error
	Delete(id uint) error

	// GetRandomUnanswered возвращает один случайный вопрос модуля,
	// на который пользователь ещё не отвечал. Пустой пул — ErrNotFound.
	GetRandomUnanswered(userID string, moduleID uint, filter QuestionFilter) (*entity.Question, error)

	// GetRandomByStandard возвращает случайный вопрос модуля без учёта
	// уже данных ответов (коммуникация и презентация не пишут отклики).
	GetRandomByStandard(moduleID uint, standard string) (*entity.Question, error)

	// MaxRecordingID возвращает наибольший номер аудиозаписи модуля
	// аудирования (0, если записей нет).
	MaxRecordingID() (uint, error)

	// ListByRecording возвращает вопросы, привязанные к аудиозаписи
	ListByRecording(recordingID uint) ([]entity.Question, error)

	// ListIDsByModule возвращает идентификаторы вопросов модуля
	ListIDsByModule(moduleID uint) ([]uint, error)
}
