package repository

import (
	"github.com/yourusername/hunar-api/internal/domain/entity"
)

// OverallResultRepository определяет методы для работы со сводными результатами
type OverallResultRepository interface {
	// Upsert вставляет или обновляет строку по ключу (user_id, test_id)
	Upsert(result *entity.OverallResult) error

	ListByUser(userID string) ([]entity.OverallResult, error)

	// ListAll возвращает все сводные результаты (экспорт в Excel)
	ListAll() ([]entity.OverallResult, error)

	DeleteByTest(testID uint) error

	// DeleteByUser удаляет все сводные результаты пользователя (удаление аккаунта)
	DeleteByUser(userID string) error
}
