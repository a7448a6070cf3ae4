package repository

import (
	"github.com/yourusername/hunar-api/internal/domain/entity"
)

// StatusRepository определяет методы для работы со статусами прохождения тестов
type StatusRepository interface {
	// CreateBatch заводит строки статуса пакетом (регистрация, создание модуля)
	CreateBatch(statuses []entity.TestSkillStatus) error

	// MarkCompleted выставляет is_completed; отсутствие пары — ErrNotFound
	MarkCompleted(userID string, testID uint) error

	// Get возвращает статус пары (user, test); отсутствие — ErrNotFound
	Get(userID string, testID uint) (*entity.TestSkillStatus, error)

	ListByUser(userID string) ([]entity.TestSkillStatus, error)

	DeleteByTest(testID uint) error

	// DeleteByUser удаляет все статусы пользователя (удаление аккаунта)
	DeleteByUser(userID string) error
}
