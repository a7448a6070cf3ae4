package entity

// TestSkillStatus хранит признак завершения модуля пользователем.
// Строки заводятся при регистрации (для каждого модуля) и при создании
// модуля (для каждого пользователя).
type TestSkillStatus struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	UserID      string `gorm:"size:20;not null;uniqueIndex:idx_status_user_test;index" json:"user_id"`
	TestID      uint   `gorm:"not null;uniqueIndex:idx_status_user_test" json:"test_id"`
	IsCompleted bool   `gorm:"not null;default:false" json:"is_completed"`
}

// TableName определяет имя таблицы для GORM
func (TestSkillStatus) TableName() string {
	return "test_skill_status"
}
