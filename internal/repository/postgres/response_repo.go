package postgres

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// ResponseRepo реализует repository.ResponseRepository
type ResponseRepo struct {
	db *gorm.DB
}

// NewResponseRepo создает новый репозиторий откликов
func NewResponseRepo(db *gorm.DB) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// Create сохраняет отклик пользователя.
// Повторный ответ на тот же вопрос упирается в уникальный индекс
// (user_id, question_id) и возвращается как ErrConflict.
func (r *ResponseRepo) Create(response *entity.Response) error {
	err := r.db.Create(response).Error
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// AggregateExact считает итог exact-модуля одним проходом:
// сумма весов и число правильных ответов плюс сумма весов всех ответов.
// Потолок (max_marks) складывается только из отвеченных вопросов.
func (r *ResponseRepo) AggregateExact(userID string, moduleID uint) (*repository.ExactAggregate, error) {
	var row struct {
		TotalMarks   sql.NullInt64
		TotalCorrect sql.NullInt64
		MaxMarks     sql.NullInt64
	}

	err := r.db.Table("responses r").
		Select(`
			COALESCE(SUM(a.weight) FILTER (WHERE r.is_correct), 0) AS total_marks,
			COUNT(*) FILTER (WHERE r.is_correct) AS total_correct,
			COALESCE(SUM(a.weight), 0) AS max_marks`).
		Joins("JOIN answers a ON a.question_id = r.question_id").
		Joins("JOIN questions q ON q.id = r.question_id").
		Where("r.user_id = ? AND q.module_id = ?", userID, moduleID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &repository.ExactAggregate{
		TotalMarks:   int(row.TotalMarks.Int64),
		TotalCorrect: int(row.TotalCorrect.Int64),
		MaxMarks:     int(row.MaxMarks.Int64),
	}, nil
}

// AggregateWeighted считает сумму набранных баллов и число откликов weighted-модуля
func (r *ResponseRepo) AggregateWeighted(userID string, moduleID uint) (*repository.WeightedAggregate, error) {
	var row struct {
		TotalScore    sql.NullInt64
		ResponseCount sql.NullInt64
	}

	err := r.db.Table("responses r").
		Select("COALESCE(SUM(r.weight_scored), 0) AS total_score, COUNT(*) AS response_count").
		Joins("JOIN questions q ON q.id = r.question_id").
		Where("r.user_id = ? AND q.module_id = ?", userID, moduleID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &repository.WeightedAggregate{
		TotalScore:    int(row.TotalScore.Int64),
		ResponseCount: int(row.ResponseCount.Int64),
	}, nil
}

// CorrectCountByTag возвращает число правильных ответов по каждому тегу сложности
func (r *ResponseRepo) CorrectCountByTag(userID string, moduleID uint) (map[string]int, error) {
	var rows []struct {
		Tag   string
		Count int
	}

	err := r.db.Table("responses r").
		Select("q.tag AS tag, COUNT(*) AS count").
		Joins("JOIN questions q ON q.id = r.question_id").
		Where("r.user_id = ? AND q.module_id = ? AND r.is_correct", userID, moduleID).
		Group("q.tag").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Tag] = row.Count
	}
	return counts, nil
}

// DeleteByQuestionIDs удаляет отклики на перечисленные вопросы
func (r *ResponseRepo) DeleteByQuestionIDs(questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	return r.db.Where("question_id IN ?", questionIDs).Delete(&entity.Response{}).Error
}

// DeleteByUser удаляет все отклики пользователя
func (r *ResponseRepo) DeleteByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&entity.Response{}).Error
}
