package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	user := &User{Phone: "79990001122", Password: "secret123"}

	err := user.BeforeSave(nil)

	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password, "Пароль должен быть захеширован")
	assert.True(t, strings.HasPrefix(user.Password, "$2a$"), "Хеш должен быть в формате bcrypt")
}

func TestUser_BeforeSave_SkipsExistingHash(t *testing.T) {
	user := &User{Phone: "79990001122", Password: "secret123"}
	require.NoError(t, user.BeforeSave(nil))
	hashed := user.Password

	// Повторное сохранение не должно хешировать хеш
	require.NoError(t, user.BeforeSave(nil))
	assert.Equal(t, hashed, user.Password)
}

func TestUser_CheckPassword(t *testing.T) {
	user := &User{Phone: "79990001122", Password: "secret123"}
	require.NoError(t, user.BeforeSave(nil))

	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Level: LevelAdmin}).IsAdmin())
	assert.False(t, (&User{Level: LevelUser}).IsAdmin())
}
