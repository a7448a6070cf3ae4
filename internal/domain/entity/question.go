package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Теги сложности вопросов языкового модуля
const (
	TagEasy   = "easy"
	TagMedium = "medium"
	TagHard   = "hard"
)

// DefaultStandard — класс по умолчанию для новых вопросов
const DefaultStandard = "12th"

// DefaultAttemptTime — время на ответ по умолчанию, секунд
const DefaultAttemptTime = 60

// Question представляет вопрос модуля. Вопросы всех модулей хранятся
// в одной таблице и различаются по module_id.
type Question struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ModuleID uint `gorm:"not null;index" json:"module_id"`

	// RecordingID заполняется только для вопросов модуля аудирования:
	// это номер аудиозаписи, к которой относится вопрос.
	RecordingID *uint `gorm:"index" json:"recording_id,omitempty"`

	Text        string      `gorm:"column:question_text;type:text;not null" json:"question_text"`
	Options     StringArray `gorm:"type:jsonb;not null" json:"options"`
	AttemptTime int         `gorm:"not null;default:60" json:"attempt_time"`
	Standard    string      `gorm:"size:45;not null;default:'12th'" json:"standard"`

	// Tag — сложность вопроса (easy/medium/hard), используется языковым модулем.
	Tag string `gorm:"size:20;not null;default:''" json:"tag,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}
