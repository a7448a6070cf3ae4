package entity

import "time"

// Стратегии подсчёта очков модуля
const (
	// ScoringExact — ответ сравнивается с каноническим значением,
	// фиксируется признак правильности.
	ScoringExact = "exact"

	// ScoringWeighted — ответ 1..5 (шкала Ликерта), фиксируется вес
	// выбранного варианта из массива весов вопроса.
	ScoringWeighted = "weighted"
)

// Идентификаторы встроенных модулей. Модули 1-7 защищены от удаления.
const (
	ModuleCommunication  uint = 1
	ModuleListening      uint = 2
	ModulePresentation   uint = 3
	ModuleTimeManagement uint = 4
	ModuleEtiquette      uint = 5
	ModuleLanguage       uint = 6
	ModuleTeamLeadership uint = 7

	// MaxProtectedModuleID — последний защищённый ID
	MaxProtectedModuleID uint = 7
)

// Module представляет один навыковый модуль (категорию теста).
// Вопросы, ответы и отклики всех модулей лежат в общих таблицах
// и различаются по module_id.
type Module struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Status        string `gorm:"size:20;not null;default:'active'" json:"status"`
	Instruction   string `gorm:"type:text;not null;default:''" json:"instruction"`
	NoOfQuestions int    `gorm:"not null;default:0" json:"no_of_questions"`
	Scoring       string `gorm:"size:20;not null;default:'exact'" json:"scoring"` // "exact" или "weighted"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Module) TableName() string {
	return "modules"
}

// IsProtected возвращает true для встроенных модулей, которые нельзя удалять
func (m *Module) IsProtected() bool {
	return m.ID >= 1 && m.ID <= MaxProtectedModuleID
}

// IsWeighted возвращает true для модулей со взвешенной шкалой ответов
func (m *Module) IsWeighted() bool {
	return m.Scoring == ScoringWeighted
}
