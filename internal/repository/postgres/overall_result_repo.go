package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/hunar-api/internal/domain/entity"
)

// OverallResultRepo реализует repository.OverallResultRepository
type OverallResultRepo struct {
	db *gorm.DB
}

// NewOverallResultRepo создает новый репозиторий сводных результатов
func NewOverallResultRepo(db *gorm.DB) *OverallResultRepo {
	return &OverallResultRepo{db: db}
}

// Upsert вставляет или обновляет сводный результат по ключу (user_id, test_id).
// Повторная оценка того же теста обновляет строку вместо дубликата.
func (r *OverallResultRepo) Upsert(result *entity.OverallResult) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "test_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"test_name", "total_marks", "max_marks", "updated_at",
		}),
	}).Create(result).Error
}

// ListByUser возвращает сводные результаты пользователя
func (r *OverallResultRepo) ListByUser(userID string) ([]entity.OverallResult, error) {
	var results []entity.OverallResult
	err := r.db.Where("user_id = ?", userID).Order("test_id").Find(&results).Error
	return results, err
}

// ListAll возвращает все сводные результаты
func (r *OverallResultRepo) ListAll() ([]entity.OverallResult, error) {
	var results []entity.OverallResult
	err := r.db.Order("user_id, test_id").Find(&results).Error
	return results, err
}

// DeleteByTest удаляет историю результатов по тесту
func (r *OverallResultRepo) DeleteByTest(testID uint) error {
	return r.db.Where("test_id = ?", testID).Delete(&entity.OverallResult{}).Error
}

// DeleteByUser удаляет все сводные результаты пользователя
func (r *OverallResultRepo) DeleteByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&entity.OverallResult{}).Error
}
