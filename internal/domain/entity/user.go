package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Уровни доступа пользователя
const (
	LevelAdmin = "admin"
	LevelUser  = "user"
)

// User представляет пользователя в системе.
// Телефон служит внешним идентификатором: на него ссылаются ответы,
// статусы тестов и итоговые результаты.
type User struct {
	Phone    string `gorm:"primaryKey;size:20" json:"phone"`
	Email    string `gorm:"size:100;not null;default:''" json:"email"`
	Username string `gorm:"size:50;not null" json:"username"`
	Password string `gorm:"size:100;not null" json:"-"`
	Level    string `gorm:"size:20;not null;default:'user'" json:"level"` // "user" или "admin"
	Age      int    `gorm:"not null;default:0" json:"age"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin возвращает true для администратора
func (u *User) IsAdmin() bool {
	return u.Level == LevelAdmin
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	// Хешируем пароль только если он:
	// 1. Не пустой
	// 2. Не является уже bcrypt-хешем (начинается с "$2a$", "$2b$" или "$2y$")
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для phone=%s: %v", u.Phone, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
