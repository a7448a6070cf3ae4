package entity

// AudioResult хранит метрики речи пользователя по коммуникационному модулю.
// Строки пишет внешний движок оценки речи; бэкенд их только читает.
// Metrics — JSON-блоб вида {"overall_score": {"value": 87.5, ...}, ...}.
type AudioResult struct {
	UserID  string `gorm:"primaryKey;size:20" json:"user_id"`
	Metrics string `gorm:"type:text;not null" json:"metrics"`
}

// TableName определяет имя таблицы для GORM
func (AudioResult) TableName() string {
	return "audio_results"
}

// PresentationResult хранит отзыв по презентационному модулю.
// Feedback — JSON-блоб, среди полей которого "Overall Score": "7.5/10".
type PresentationResult struct {
	UserID   string `gorm:"primaryKey;size:20" json:"user_id"`
	Feedback string `gorm:"type:text;not null" json:"feedback"`
}

// TableName определяет имя таблицы для GORM
func (PresentationResult) TableName() string {
	return "presentation_results"
}
