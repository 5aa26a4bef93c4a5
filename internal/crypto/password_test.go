package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("field-agent-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "field-agent-secret", hash)

	// Правильный пароль проходит
	assert.NoError(t, CheckPassword(hash, "field-agent-secret"))

	// Неправильный — типизированная ошибка
	err = CheckPassword(hash, "wrong")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_Unique(t *testing.T) {
	// bcrypt использует случайную соль — хеши различаются
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
