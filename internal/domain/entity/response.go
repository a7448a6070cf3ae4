package entity

import "time"

// Response представляет зафиксированный ответ пользователя на вопрос.
// Уникальный индекс (user_id, question_id) не даёт ответить на тот же
// вопрос дважды: повторная отправка завершается конфликтом.
type Response struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     string `gorm:"size:20;not null;uniqueIndex:idx_responses_user_question;index" json:"user_id"`
	QuestionID uint   `gorm:"not null;uniqueIndex:idx_responses_user_question" json:"question_id"`

	// IsCorrect заполняется exact-модулями.
	IsCorrect bool `gorm:"not null;default:false" json:"is_correct"`

	// WeightScored заполняется weighted-модулями: балл выбранного варианта.
	WeightScored int `gorm:"not null;default:0" json:"weight_scored"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Response) TableName() string {
	return "responses"
}
