package repository

import (
	"github.com/yourusername/hunar-api/internal/domain/entity"
)

// ExactAggregate — агрегат результата exact-модуля.
// MaxMarks считается по отвеченным вопросам, а не по всему банку:
// потолок растёт только с попытками.
type ExactAggregate struct {
	TotalMarks   int
	TotalCorrect int
	MaxMarks     int
}

// WeightedAggregate — агрегат результата weighted-модуля
type WeightedAggregate struct {
	TotalScore    int
	ResponseCount int
}

// ResponseRepository определяет методы для работы с ответами пользователей
type ResponseRepository interface {
	// Create сохраняет отклик; дубликат (user_id, question_id) — ErrConflict
	Create(response *entity.Response) error

	// AggregateExact считает сумму весов правильных ответов, их число
	// и сумму весов всех данных ответов пользователя по модулю.
	AggregateExact(userID string, moduleID uint) (*ExactAggregate, error)

	// AggregateWeighted считает сумму набранных баллов и число откликов
	AggregateWeighted(userID string, moduleID uint) (*WeightedAggregate, error)

	// CorrectCountByTag возвращает число правильных ответов пользователя
	// по каждому тегу сложности модуля (языковой модуль).
	CorrectCountByTag(userID string, moduleID uint) (map[string]int, error)

	// DeleteByQuestionIDs удаляет отклики на перечисленные вопросы
	DeleteByQuestionIDs(questionIDs []uint) error

	// DeleteByUser удаляет все отклики пользователя (удаление аккаунта)
	DeleteByUser(userID string) error
}
