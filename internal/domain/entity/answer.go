package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// IntArray - пользовательский тип для JSONB-массива целых (весов шкалы)
type IntArray []int

// Scan реализует интерфейс sql.Scanner для IntArray
func (o *IntArray) Scan(value interface{}) error {
	if value == nil {
		*o = IntArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = IntArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для IntArray
func (o IntArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Границы допустимого варианта ответа для взвешенных модулей (шкала Ликерта)
const (
	MinWeightedOption = 1
	MaxWeightedOption = 5
)

// Answer представляет канонический ответ вопроса. Связь с вопросом
// один-к-одному: первичный ключ совпадает с id вопроса.
// Для exact-модулей заполняются Value и Weight, для weighted — Weights.
type Answer struct {
	QuestionID uint `gorm:"primaryKey" json:"id"`

	// Value — номер правильного варианта (exact-модули).
	Value int `gorm:"not null;default:0" json:"answer"`

	// Weight — ценность вопроса в баллах (exact-модули).
	Weight int `gorm:"not null;default:1" json:"weight"`

	// Weights — баллы каждого из пяти вариантов шкалы (weighted-модули).
	Weights IntArray `gorm:"type:jsonb;not null;default:'[]'" json:"weights,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answers"
}

// Matches проверяет, совпадает ли присланный ответ с каноническим
func (a *Answer) Matches(submitted int) bool {
	return submitted == a.Value
}

// WeightFor возвращает вес выбранного варианта шкалы 1..5.
// Второе значение false, если вариант вне диапазона или весов не хватает.
func (a *Answer) WeightFor(option int) (int, bool) {
	if option < MinWeightedOption || option > MaxWeightedOption {
		return 0, false
	}
	if option > len(a.Weights) {
		return 0, false
	}
	return a.Weights[option-1], true
}
