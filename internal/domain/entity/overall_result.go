package entity

import "time"

// OverallResult — сводная строка результата пользователя по одному модулю.
// Ключ (user_id, test_id) уникален: повторная оценка обновляет строку,
// а не добавляет дубликат.
type OverallResult struct {
	ID         uint    `gorm:"primaryKey" json:"-"`
	UserID     string  `gorm:"size:20;not null;uniqueIndex:idx_overall_user_test;index" json:"user_id"`
	TestID     uint    `gorm:"not null;uniqueIndex:idx_overall_user_test" json:"test_id"`
	TestName   string  `gorm:"size:100;not null" json:"test_name"`
	TotalMarks float64 `gorm:"not null;default:0" json:"total_marks"`
	MaxMarks   int     `gorm:"not null;default:0" json:"max_marks"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (OverallResult) TableName() string {
	return "overall_results"
}
